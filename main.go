package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"propcalc/config"
	httpLayer "propcalc/http"
	"propcalc/observability"
	"propcalc/repository"
	"propcalc/resilience"
	"propcalc/service"
)

func main() {
	_ = config.LoadDotEnv(".env")
	cfg := config.Load()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("store_backend", cfg.StoreBackend),
		zap.Duration("snapshot_ttl", cfg.SnapshotTTL),
		zap.Int("rate_limit_capacity", cfg.RateLimitCapacity),
		zap.Duration("rate_limit_refill", cfg.RateLimitRefill),
	)

	defaults, err := config.LoadDefaults(cfg.DefaultsFile)
	if err != nil {
		logger.Fatal("failed to load default inputs", zap.Error(err))
	}

	observability.InitPropagation()
	metrics := observability.NewMetrics()

	var (
		snapshotRepo repository.SnapshotRepository
		ready        func(context.Context) error
	)
	switch cfg.StoreBackend {
	case config.StoreRedis:
		redisRepo := repository.NewRedisSnapshotRepository(repository.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SnapshotTTL,
			Timeout:  cfg.StoreTimeout,
			Retry: resilience.Config{
				MaxRetries:     cfg.MaxRetries,
				InitialBackoff: cfg.InitialBackoff,
			},
		})
		defer redisRepo.Close()
		snapshotRepo = redisRepo
		ready = redisRepo.Ping
		logger.Info("using redis snapshot store", zap.String("redis_addr", cfg.RedisAddr))
	case config.StoreNoop:
		snapshotRepo = repository.NewNoopSnapshotRepository()
		logger.Warn("snapshot persistence disabled")
	default:
		snapshotRepo = repository.NewSnapshotRepositoryMemory()
		logger.Info("using in-memory snapshot store")
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitRefill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Services{
		Calculator: service.NewCalculatorService(metrics, logger),
		Listings:   service.NewListingExtractor(metrics, logger),
		Snapshots:  service.NewSnapshotService(snapshotRepo, metrics, logger),
		Defaults:   defaults,
		Limiter:    rateLimiter,
		Ready:      ready,
	}, metrics, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
