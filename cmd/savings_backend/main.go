package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/savings_ledger/internal/adapters/cache"
	"github.com/SscSPs/savings_ledger/internal/adapters/ratesapi"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/savings_ledger/internal/core/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/handlers"
	"github.com/SscSPs/savings_ledger/internal/metrics"
	"github.com/SscSPs/savings_ledger/internal/middleware"
	"github.com/SscSPs/savings_ledger/internal/platform/config"
	"github.com/SscSPs/savings_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/savings_ledger/internal/repositories/memory"
	"github.com/SscSPs/savings_ledger/internal/scheduler"
	"github.com/SscSPs/savings_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title Savings Ledger API
// @version 1.0
// @description Savings goals with multi-currency contributions.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	repos := portsrepo.RepositoryProvider{
		RateFetcher: ratesapi.NewClient(cfg.RatesAPIURL),
	}

	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, database.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: 5 * time.Minute,
			CheckConnection: cfg.EnableDBCheck,
		})
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations")
		if err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}

		repos.SavingsRepo = pgsql.NewSavingsRepository(dbPool)
	} else {
		logger.Warn("PGSQL_URL not set, savings are kept in memory and lost on restart")
		repos.SavingsRepo = memory.NewSavingsRepository()
	}

	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		store, err := cache.NewRedisSnapshotStoreFromURL(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			// Rates still work per replica without the shared store.
			logger.Warn("Redis unavailable, exchange rates will not be shared", slog.String("error", err.Error()))
		} else {
			defer store.Close()
			repos.SnapshotStore = store
			logger.Info("Sharing exchange rates through redis")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry)

	serviceContainer := services.NewServiceContainer(cfg, repos, appMetrics)

	if cfg.RecurringEnabled {
		jobs := scheduler.NewScheduler(serviceContainer.Recurring,
			scheduler.WithLocation(cfg.RecurringLocation),
			scheduler.WithRunTimeout(cfg.RecurringTimeout),
			scheduler.WithLogger(logger),
		)
		if err := jobs.RegisterRecurring(cfg.RecurringSchedule); err != nil {
			logger.Error("Failed to schedule recurring savings", slog.String("error", err.Error()))
			os.Exit(1)
		}
		jobs.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.RecurringTimeout)
			defer cancel()
			jobs.Stop(ctx)
		}()
	} else {
		logger.Info("Recurring savings are disabled")
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		appMetrics.GinMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, registry, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("base_currency", cfg.BaseCurrency))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
