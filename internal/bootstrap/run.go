package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/megabox/megabox-web/config"
	httpx "github.com/megabox/megabox-web/internal/http"
)

const shutdownWaitTimeout = 15 * time.Second

// RunConfig contains everything Run needs.
type RunConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// Run wires the server, serves until SIGINT/SIGTERM or a listen error, then drains.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Config == nil {
		return errors.New("run config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	if err := ValidateConfig(appCfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	redisClient, err := connectOptionalRedis(ctx, appCfg, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	obs, err := BuildObservability(ctx, logger, appCfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownWaitTimeout)
		defer cancel()
		if cerr := obs.Close(closeCtx); cerr != nil {
			logger.ErrorContext(ctx, "close observability failed", "error", cerr)
		}
	}()

	services, err := NewServices(ServiceDeps{
		Config:        appCfg,
		RedisClient:   redisClient,
		Observability: obs,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	proxies, err := httpx.ParseTrustedProxies(appCfg.HTTP.TrustedProxies)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	limiter := httpx.NewRateLimiter(httpx.RateLimiterConfig{
		PerMinute:      appCfg.Auth.RateLimitPerMinute,
		Burst:          appCfg.Auth.RateLimitBurst,
		TrustedProxies: proxies,
	})
	limiterDone := make(chan struct{})
	go func() {
		defer close(limiterDone)
		limiter.Run(serviceCtx)
	}()

	handler, err := BuildHTTPHandler(&HTTPServerConfig{
		Config:      appCfg,
		Services:    services,
		RedisClient: redisClient,
		RateLimiter: limiter,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(logger, handler, appCfg.HTTP.Addr, errCh)

	return waitForShutdown(shutdownConfig{
		ctx:         ctx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  server,
		services:    services,
		logger:      logger,
		backgrounds: []backgroundHandle{{name: "rate limiter", done: limiterDone}},
	})
}

//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func connectOptionalRedis(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if !cfg.RedisRequired() {
		logger.InfoContext(ctx, "redis not configured; using in-memory cache")
		return nil, nil
	}
	client, err := ConnectRedis(ctx, RedisConfig{Redis: cfg.Redis, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

type backgroundHandle struct {
	name string
	done <-chan struct{}
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	services    ServiceContainer
	logger      *slog.Logger
	backgrounds []backgroundHandle
}

// waitForShutdown waits for shutdown signal or server error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down...")
		return gracefulStop(cfg)
	case <-cfg.ctx.Done():
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("server error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains in-flight requests, then stops background work.
func gracefulStop(cfg shutdownConfig) error {
	err := ShutdownHTTPServer(context.WithoutCancel(cfg.ctx), cfg.httpServer, cfg.logger)
	cfg.cancel()

	if cfg.services.Cache != nil {
		cfg.services.Cache.Wait()
	}
	for _, bg := range cfg.backgrounds {
		waitForBackground(bg, cfg.logger)
	}
	return err
}

func waitForBackground(bg backgroundHandle, logger *slog.Logger) {
	if bg.done == nil {
		return
	}
	select {
	case <-bg.done:
		logger.Info(bg.name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + bg.name + " to stop")
	}
}
