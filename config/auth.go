package config

import (
	"fmt"
	"strings"
	"time"
)

// OAuthMode selects how the third-party sign-in redirect is handled.
type OAuthMode string

const (
	// OAuthModeBackend delegates the provider dance to the backend, which redirects
	// back with the platform token in the query string or fragment.
	OAuthModeBackend OAuthMode = "backend"
	// OAuthModeOIDC runs the authorization-code flow here and exchanges the
	// verified ID token with the backend.
	OAuthModeOIDC OAuthMode = "oidc"
	// OAuthModeMock short-circuits to a configured token (development only).
	OAuthModeMock OAuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for OAuthMode.
func (m *OAuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "backend", "oidc", "mock":
		*m = OAuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid OAuthMode: %q (valid options: backend, oidc, mock)", v)
	}
}

// OAuthConfig contains OIDC client configuration (used when mode=oidc).
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/oauth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// SessionConfig controls the single session cookie.
type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"MegaBox"`
	TTL        time.Duration `env:"SESSION_TTL"         envDefault:"168h"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	Session SessionConfig

	// OAuthMode determines how /oauth/start and /oauth/callback behave.
	OAuthMode OAuthMode `env:"AUTH_OAUTH_MODE" envDefault:"backend"`

	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevToken is returned by the mock OAuth provider.
	DevToken string `env:"DEV_AUTH_TOKEN"`

	// RateLimitPerMinute bounds auth form submissions per client IP.
	RateLimitPerMinute int `env:"RATE_LIMIT_AUTH_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int `env:"RATE_LIMIT_AUTH_BURST"      envDefault:"5"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if strings.TrimSpace(a.Session.CookieName) == "" {
		a.Session.CookieName = "MegaBox"
	}
	if a.Session.TTL <= 0 {
		a.Session.TTL = 7 * 24 * time.Hour
	}
	if a.OAuthMode == "" {
		a.OAuthMode = OAuthModeBackend
	}
	if a.RateLimitPerMinute < 0 {
		a.RateLimitPerMinute = 0
	}
	if a.RateLimitBurst < 1 {
		a.RateLimitBurst = 1
	}
}
