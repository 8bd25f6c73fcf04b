package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtside/platform/internal/app"
	"github.com/courtside/platform/internal/auth"
	"github.com/courtside/platform/internal/cache"
	"github.com/courtside/platform/internal/infra"
	"github.com/courtside/platform/internal/metrics"
	"github.com/courtside/platform/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	// Migrations
	if cfg.MigrateOnStart {
		if err := infra.RunMigrations(cfg.DSN(), cfg.MigrationsDir, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to Postgres
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	m := metrics.New()

	// Optional Redis cache
	var accessor *cache.Accessor
	redisClient, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts := []cache.Option{cache.WithMetrics(m)}
		if cfg.CacheCoalesce {
			opts = append(opts, cache.WithCoalescing())
		}
		accessor = cache.New(cache.NewRedisStore(redisClient), logger, opts...)
		logger.Info("connected to redis", "users_cache_ttl", cfg.UsersCacheTTL, "coalesce", cfg.CacheCoalesce)
	} else {
		logger.Info("redis not configured, cache disabled")
	}

	// Identity
	resolver, err := auth.NewJWTResolver(auth.JWTConfig{
		PublicKeyPEM:      cfg.ClerkJWTKey,
		Secret:            cfg.JWTSecret,
		Issuer:            cfg.ClerkIssuer,
		AuthorizedParties: cfg.AuthorizedParties(),
		Leeway:            5 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init identity resolver: %w", err)
	}

	// Events
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()
	var events service.EventPublisher
	if producer.Enabled() {
		events = producer
	}

	trustedProxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return fmt.Errorf("parse trusted proxies: %w", err)
	}

	r := app.NewRouter(app.RouterDeps{
		DB:                 pool,
		DBHealth:           pool,
		Cache:              accessor,
		Resolver:           resolver,
		Events:             events,
		Metrics:            m,
		Logger:             logger,
		UsersCacheTTL:      cfg.UsersCacheTTL,
		CORSAllowedOrigins: cfg.AllowedOrigins(),
		CreateRateLimit:    cfg.CreateRateLimit,
		TrustedProxies:     trustedProxies,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
