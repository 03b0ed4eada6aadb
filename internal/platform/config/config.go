package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	DBMaxConns    int32
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	LogLevel      slog.Level

	// Exchange rate provider
	RatesAPIURL       string
	BaseCurrency      string
	RatesCacheTTL     time.Duration
	RatesFetchTimeout time.Duration
	RedisURL          string // optional; shares live snapshots between replicas

	ContributeTimeout  time.Duration

	// Monthly automatic savings
	RecurringEnabled  bool
	RecurringSchedule string         // robfig/cron five-field spec
	RecurringLocation *time.Location // decides which calendar day a run credits
	RecurringTimeout  time.Duration

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RATES_API_URL", "https://api.exchangerate-api.com/v4/latest")
	viper.SetDefault("RATES_BASE_CURRENCY", "RSD")
	viper.SetDefault("RATES_CACHE_TTL", "1h")
	viper.SetDefault("RATES_FETCH_TIMEOUT", "5s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CONTRIBUTE_TIMEOUT", "10s")
	viper.SetDefault("RECURRING_ENABLED", true)
	viper.SetDefault("RECURRING_SCHEDULE", "0 6 * * *")
	viper.SetDefault("RECURRING_TIMEZONE", "UTC")
	viper.SetDefault("RECURRING_TIMEOUT", "5m")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory storage.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", viper.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.RatesAPIURL = strings.TrimRight(viper.GetString("RATES_API_URL"), "/")
	cfg.BaseCurrency = strings.ToUpper(viper.GetString("RATES_BASE_CURRENCY"))
	cfg.RatesCacheTTL = durationOrDefault("RATES_CACHE_TTL", time.Hour)
	cfg.RatesFetchTimeout = durationOrDefault("RATES_FETCH_TIMEOUT", 5*time.Second)
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.ContributeTimeout = durationOrDefault("CONTRIBUTE_TIMEOUT", 10*time.Second)
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.RecurringEnabled = viper.GetBool("RECURRING_ENABLED")
	cfg.RecurringSchedule = strings.TrimSpace(viper.GetString("RECURRING_SCHEDULE"))
	cfg.RecurringTimeout = durationOrDefault("RECURRING_TIMEOUT", 5*time.Minute)
	loc, err := time.LoadLocation(viper.GetString("RECURRING_TIMEZONE"))
	if err != nil {
		log.Printf("Warning: Invalid value for RECURRING_TIMEZONE ('%s'). Defaulting to UTC.\n", viper.GetString("RECURRING_TIMEZONE"))
		loc = time.UTC
	}
	cfg.RecurringLocation = loc

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	if cfg.DBMaxConns <= 0 {
		log.Printf("Warning: Invalid value for DB_MAX_CONNS (%d). Defaulting to 10.\n", cfg.DBMaxConns)
		cfg.DBMaxConns = 10
	}

	return cfg, nil
}

// durationOrDefault parses a duration setting (e.g. "60m", "1h"), falling back on bad or non-positive values.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
