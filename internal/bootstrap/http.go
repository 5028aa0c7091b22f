package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/megabox/megabox-web/config"
	httpx "github.com/megabox/megabox-web/internal/http"
	"github.com/megabox/megabox-web/internal/i18n"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	// RateLimiter throttles auth POSTs; the caller runs its eviction loop.
	RateLimiter *httpx.RateLimiter
	Logger      *slog.Logger
}

// BuildHTTPHandler assembles the router from the wired services.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	catalog, err := i18n.NewCatalog(appCfg.I18n.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	health := map[string]httpx.HealthCheck{}
	if cfg.RedisClient != nil {
		health["redis"] = RedisHealthCheck(cfg.RedisClient)
	}

	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
	}

	return httpx.NewRouter(httpx.RouterServices{
		Auth:          cfg.Services.Auth,
		Files:         cfg.Services.Files,
		Earnings:      cfg.Services.Earnings,
		Notifications: cfg.Services.Notifications,
		Account:       cfg.Services.Account,
		Owner:         cfg.Services.Owner,
		Sessions: httpx.NewCookieSessionStore(httpx.SessionStoreOptions{
			CookieName: appCfg.Auth.Session.CookieName,
			Domain:     appCfg.HTTP.CookieDomain,
			TTL:        appCfg.Auth.Session.TTL,
		}),
		Catalog: catalog,
		OAuth: httpx.OAuthOptions{
			Mode:        string(appCfg.Auth.OAuthMode),
			StartURL:    appCfg.Backend.OAuthStartURL,
			CallbackURL: appCfg.HTTP.BaseURL + "/oauth/callback",
			Claims:      cfg.Services.Claims,
		},
		RateLimiter: cfg.RateLimiter,
		Compression: httpx.CompressionConfig{
			Enabled: appCfg.HTTP.CompressionEnabled,
			Level:   appCfg.HTTP.CompressionLevel,
		},
		Health:  health,
		BaseURL: appCfg.HTTP.BaseURL,
		IsDev:   appCfg.IsDev,
		Logger:  logger,
	})
}

// StartHTTPServer starts serving handler on addr in the background. Listen errors
// are sent on errCh.
func StartHTTPServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Uploads stream through the request body, so no ReadTimeout.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
