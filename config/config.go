package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: session cookie and OAuth configuration
//   - backend.go: REST backend client configuration
//   - cache.go: Redis, query cache and idempotency configuration
//   - http.go: HTTP server configuration
//   - observability.go: metrics and tracing
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, verbose errors).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Auth    AuthConfig
	Backend BackendConfig `envPrefix:"BACKEND_"`
	HTTP    HTTPConfig
	Redis   RedisConfig `envPrefix:"REDIS_"`
	Cache   CacheConfig
	I18n    I18nConfig

	Observability ObservabilityConfig
}

// I18nConfig controls locale negotiation.
type I18nConfig struct {
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Backend.Sanitize()
	c.HTTP.Sanitize()
	c.Cache.Sanitize()
	c.Observability.Sanitize()

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.I18n.DefaultLocale = strings.TrimSpace(c.I18n.DefaultLocale); c.I18n.DefaultLocale == "" {
		c.I18n.DefaultLocale = "en"
	}

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// RedisRequired reports whether any enabled component needs a Redis connection.
func (c *AppConfig) RedisRequired() bool {
	return c.Cache.Backend == CacheBackendRedis || c.Cache.IdempotencyBackend == CacheBackendRedis
}
