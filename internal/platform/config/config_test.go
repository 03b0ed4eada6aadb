package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "RSD", cfg.BaseCurrency)
	assert.Equal(t, time.Hour, cfg.RatesCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.RatesFetchTimeout)
	assert.Equal(t, 10*time.Second, cfg.ContributeTimeout)
	assert.Equal(t, "https://api.exchangerate-api.com/v4/latest", cfg.RatesAPIURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.RecurringEnabled)
	assert.Equal(t, "0 6 * * *", cfg.RecurringSchedule)
	assert.Equal(t, time.UTC, cfg.RecurringLocation)
	assert.Equal(t, 5*time.Minute, cfg.RecurringTimeout)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("RATES_CACHE_TTL", "15m")
	t.Setenv("RATES_FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("RATES_BASE_CURRENCY", "eur")
	t.Setenv("RATES_API_URL", "http://rates.local/v4/latest/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.RatesCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.RatesFetchTimeout, "invalid durations fall back to the default")
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.Equal(t, "http://rates.local/v4/latest", cfg.RatesAPIURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_RecurringSettings(t *testing.T) {
	t.Setenv("RECURRING_ENABLED", "false")
	t.Setenv("RECURRING_SCHEDULE", " 30 5 * * * ")
	t.Setenv("RECURRING_TIMEZONE", "Not/AZone")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.RecurringEnabled)
	assert.Equal(t, "30 5 * * *", cfg.RecurringSchedule)
	assert.Equal(t, time.UTC, cfg.RecurringLocation, "unknown zones fall back to UTC")
}
