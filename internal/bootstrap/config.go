package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/megabox/megabox-web/config"
	httpx "github.com/megabox/megabox-web/internal/http"
)

// logLevel backs the default logger so LOG_LEVEL can be applied after config loads.
var logLevel = new(slog.LevelVar)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// SetLogLevel applies a LOG_LEVEL value; unknown values keep info.
func SetLogLevel(level string) slog.Level {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logLevel.Set(l)
	return l
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// ValidateConfig rejects combinations the server cannot start with.
func ValidateConfig(cfg *config.AppConfig) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cfg.Backend.BaseURL == "" {
		return errors.New("BACKEND_BASE_URL is required")
	}
	if cfg.HTTP.BaseURL == "" {
		return errors.New("APP_BASE_URL is required")
	}
	if _, err := httpx.ParseTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
	}
	switch cfg.Auth.OAuthMode {
	case config.OAuthModeOIDC:
		o := cfg.Auth.OAuth
		if o.ClientID == "" || o.ClientSecret == "" || o.DiscoveryURL == "" {
			return errors.New("oidc mode requires OAUTH_CLIENT_ID, OAUTH_CLIENT_SECRET and OAUTH_DISCOVERY_URL")
		}
	case config.OAuthModeMock:
		if !cfg.IsDev {
			return errors.New("mock oauth mode is only allowed with DEV=true")
		}
		if strings.TrimSpace(cfg.Auth.DevToken) == "" {
			return errors.New("mock oauth mode requires DEV_AUTH_TOKEN")
		}
	}
	return nil
}
