package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/megabox/megabox-web/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validConfig() config.AppConfig {
	cfg := config.AppConfig{
		Backend: config.BackendConfig{BaseURL: "http://api.megabox.test"},
		HTTP:    config.HTTPConfig{BaseURL: "http://megabox.test"},
	}
	cfg.Sanitize()
	return cfg
}

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, SetLogLevel(in), in)
		assert.Equal(t, want, logLevel.Level(), in)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.AppConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.AppConfig) {}},
		{
			name:    "missing backend",
			mutate:  func(c *config.AppConfig) { c.Backend.BaseURL = "" },
			wantErr: "BACKEND_BASE_URL",
		},
		{
			name:    "bad trusted proxy",
			mutate:  func(c *config.AppConfig) { c.HTTP.TrustedProxies = []string{"10.0.0.0/8", "proxy.local"} },
			wantErr: "HTTP_TRUSTED_PROXIES",
		},
		{
			name:   "trusted proxies",
			mutate: func(c *config.AppConfig) { c.HTTP.TrustedProxies = []string{"10.0.0.0/8", "::1"} },
		},
		{
			name:    "oidc without client",
			mutate:  func(c *config.AppConfig) { c.Auth.OAuthMode = config.OAuthModeOIDC },
			wantErr: "OAUTH_CLIENT_ID",
		},
		{
			name: "mock outside dev",
			mutate: func(c *config.AppConfig) {
				c.Auth.OAuthMode = config.OAuthModeMock
				c.Auth.DevToken = "tok"
			},
			wantErr: "DEV=true",
		},
		{
			name: "mock in dev without token",
			mutate: func(c *config.AppConfig) {
				c.IsDev = true
				c.Auth.OAuthMode = config.OAuthModeMock
			},
			wantErr: "DEV_AUTH_TOKEN",
		},
		{
			name: "mock in dev",
			mutate: func(c *config.AppConfig) {
				c.IsDev = true
				c.Auth.OAuthMode = config.OAuthModeMock
				c.Auth.DevToken = "tok"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}

	assert.Error(t, ValidateConfig(nil))
}
