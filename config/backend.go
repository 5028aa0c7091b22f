package config

import (
	"strings"
	"time"
)

// BackendConfig describes the REST backend that owns all business state.
type BackendConfig struct {
	// BaseURL is the API root, e.g. "https://api.megabox.example/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds every backend request except uploads.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// UploadTimeout bounds a streamed upload, body included.
	UploadTimeout time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"1h"`

	// OAuthStartURL is where /oauth/start sends the browser in backend OAuth mode.
	OAuthStartURL string `env:"OAUTH_START_URL"`

	// UploadMaxBytes caps a single upload streamed through to the backend.
	UploadMaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"2147483648"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
	if b.UploadTimeout <= 0 {
		b.UploadTimeout = time.Hour
	}
	if b.UploadMaxBytes <= 0 {
		b.UploadMaxBytes = 2 << 30
	}
	if b.OAuthStartURL == "" && b.BaseURL != "" {
		b.OAuthStartURL = b.BaseURL + "/auth/oauth/google"
	}
}
