package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"engdata-admin/internal/common/auth"
	"engdata-admin/internal/common/config"
	"engdata-admin/internal/common/database"
	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/logger"
	"engdata-admin/internal/common/observability"
	"engdata-admin/internal/server"
	"engdata-admin/pkg/registry"
)

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			return serve(cfg)
		},
	}
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func serve(cfg *config.Config) error {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	zapLog.Info("Starting admin gateway",
		zap.String("version", version),
		zap.String("downstream", cfg.Downstream.BaseURL),
		zap.String("server", cfg.Server.String()),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("OpenTelemetry exporter unavailable, continuing with Prometheus counters only", zap.Error(err))
	}
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]server.Pinger{}

	// --- Token cache (optional) ---
	var cache auth.Cache
	if cfg.Database.Redis.Address != "" {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection")
		if err != nil {
			return err
		}
		defer redis.Close()
		cache = redis
		checks["redis"] = redis
		zapLog.Info("Redis connected successfully")
	}

	tokens := auth.NewTokenProvider(auth.ProviderOptions{
		TokenURL:     cfg.Downstream.Auth.TokenURL,
		ClientID:     cfg.Downstream.Auth.ClientID,
		ClientSecret: cfg.Downstream.Auth.ClientSecret,
		CacheKey:     cfg.Downstream.Auth.CacheKey,
		StaticToken:  cfg.Downstream.Token,
		Cache:        cache,
		Logger:       log,
	})

	client := downstream.NewClient(cfg.Downstream.BaseURL, config.GetDuration(cfg.Downstream.Timeout),
		downstream.WithTokenSource(tokens),
		downstream.WithLogger(log),
	)

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	router := server.NewRouter(server.Options{
		Config:   cfg,
		Caller:   client,
		Logger:   log,
		Recorder: obs,
		Registry: reg,
		Checks:   checks,
	})
	srv := server.New(cfg.Server, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	zapLog.Info("Admin gateway stopped")
	return nil
}

func loadRegistry(cfg *config.Config) (*registry.OperationRegistry, error) {
	if cfg.Registry.Path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load operation registry: %w", err)
	}
	return reg, nil
}
