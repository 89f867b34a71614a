package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/car_market_app/internal/core/services"
	"github.com/SscSPs/car_market_app/internal/events"
	"github.com/SscSPs/car_market_app/internal/handlers"
	"github.com/SscSPs/car_market_app/internal/metrics"
	"github.com/SscSPs/car_market_app/internal/middleware"
	"github.com/SscSPs/car_market_app/internal/platform/config"
	"github.com/SscSPs/car_market_app/internal/pricing"
	"github.com/SscSPs/car_market_app/internal/repositories/blobstore"
	"github.com/SscSPs/car_market_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/car_market_app/internal/repositories/presence"
	"github.com/SscSPs/car_market_app/internal/utils"
	"github.com/SscSPs/car_market_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Car Market API
// @version 1.0
// @description Backend for an Iraqi car classifieds marketplace.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// --- Infrastructure ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	blobs, err := blobstore.NewOsFileStore(cfg.MediaRoot, cfg.MediaBaseURL)
	if err != nil {
		logger.Error("Failed to prepare media storage", slog.String("error", err.Error()), slog.String("root", cfg.MediaRoot))
		os.Exit(1)
	}

	hub := events.NewHub(events.DefaultBuffer)
	publisher := events.Fanout{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("Error closing kafka writer", slog.String("error", err.Error()))
			}
		}()
		publisher = append(publisher, kafkaPublisher)
		logger.Info("Kafka event publishing enabled", slog.String("topic", cfg.KafkaTopic))
	}

	infra := services.Infrastructure{
		Blobs:    blobs,
		Events:   publisher,
		Metrics:  appMetrics,
		RateBook: pricing.NewRateBook(defaultRate(cfg, logger)),
	}

	if cfg.RedisAddr != "" {
		client, err := presence.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("Redis unavailable, counting online visitors from page views", slog.String("error", err.Error()))
		} else {
			defer closeRedis(client, logger)
			infra.Presence = presence.NewRedisTracker(client, presence.DefaultKey)
			logger.Info("Redis presence tracking enabled", slog.String("addr", cfg.RedisAddr))
		}
	}

	serviceContainer, settingsService, err := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), infra)
	if err != nil {
		logger.Error("Failed to create services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := settingsService.RefreshRate(ctx); err != nil {
		logger.Warn("Could not load exchange rate, using default", slog.String("error", err.Error()))
	}
	go settingsService.RunRefresher(ctx, cfg.RateRefreshInterval)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogHost, logger)
	defer posthogClient.Close()

	loginLimiter, err := middleware.NewIPLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Invalid LOGIN_RATE_LIMIT", slog.String("value", cfg.LoginRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// --- HTTP ---
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
		appMetrics.Middleware(),
		middleware.PosthogMiddleware(posthogClient),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.Dependencies{
		Events:       hub,
		Gatherer:     registry,
		MediaFS:      blobs.Fs(),
		LoginLimiter: loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams never finish on their own; end them so Shutdown does not wait.
	srv.RegisterOnShutdown(hub.Close)

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func defaultRate(cfg *config.Config, logger *slog.Logger) pricing.Rate {
	rate, err := pricing.ParseRate(cfg.DefaultExchangeRate)
	if err != nil {
		logger.Warn("Invalid DEFAULT_EXCHANGE_RATE, using built-in default", slog.String("error", err.Error()))
		return pricing.DefaultRate
	}
	return rate
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID"}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

func closeRedis(client *redis.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("Error closing redis client", slog.String("error", err.Error()))
	}
}
