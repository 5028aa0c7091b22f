package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megabox/megabox-web/config"
)

func TestBuildAuthService_Modes(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	tests := []struct {
		name      string
		auth      config.AuthConfig
		wantErr   string
		wantOAuth bool
	}{
		{
			name: "backend mode needs no provider",
			auth: config.AuthConfig{OAuthMode: config.OAuthModeBackend},
		},
		{
			name:      "mock mode",
			auth:      config.AuthConfig{OAuthMode: config.OAuthModeMock, DevToken: "dev-token"},
			wantOAuth: true,
		},
		{
			name:    "mock mode without token",
			auth:    config.AuthConfig{OAuthMode: config.OAuthModeMock},
			wantErr: "DEV_AUTH_TOKEN",
		},
		{
			name: "oidc discovery failure",
			auth: config.AuthConfig{
				OAuthMode: config.OAuthModeOIDC,
				OAuth: config.OAuthConfig{
					ClientID:     "megabox-web",
					ClientSecret: "secret",
					RedirectURL:  "http://localhost:8080/oauth/callback",
					DiscoveryURL: broken.URL,
				},
			},
			wantErr: "build oidc provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := BuildAuthService(AuthDeps{Auth: tt.auth, Logger: discardLogger()})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.Equal(t, tt.wantOAuth, svc.OAuthEnabled())
		})
	}
}
