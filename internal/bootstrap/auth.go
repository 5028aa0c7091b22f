package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/megabox/megabox-web/config"
	"github.com/megabox/megabox-web/internal/adapters/authroles"
	"github.com/megabox/megabox-web/internal/adapters/devauth"
	"github.com/megabox/megabox-web/internal/adapters/oidc"
	"github.com/megabox/megabox-web/internal/ports"
	"github.com/megabox/megabox-web/internal/service"
)

// AuthDeps contains dependencies for the auth service.
type AuthDeps struct {
	Auth    config.AuthConfig
	API     ports.AuthAPI
	Account ports.AccountAPI
	Cache   *service.QueryCache
	Logger  *slog.Logger
}

// BuildAuthService creates an auth service for the configured OAuth mode.
// Backend mode has no provider: the backend runs the redirect and hands back a token.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	prov, err := buildAuthProvider(deps.Auth)
	if err != nil {
		return nil, err
	}
	if deps.Logger != nil {
		deps.Logger.Info("auth configured", "oauth_mode", deps.Auth.OAuthMode)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		API:      deps.API,
		Account:  deps.Account,
		Claims:   authroles.NewJWTClaims(),
		Provider: prov,
		Cache:    deps.Cache,
		Logger:   deps.Logger,
	}), nil
}

//nolint:ireturn // the provider is chosen by mode at runtime.
func buildAuthProvider(cfg config.AuthConfig) (ports.AuthProvider, error) {
	switch cfg.OAuthMode {
	case config.OAuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{Token: cfg.DevToken})
		if err != nil {
			return nil, fmt.Errorf("build mock oauth provider: %w", err)
		}
		return prov, nil

	case config.OAuthModeOIDC:
		o := cfg.OAuth
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     o.ClientID,
			ClientSecret: o.ClientSecret,
			RedirectURL:  o.RedirectURL,
			Scope:        o.Scope,
			DiscoveryURL: o.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc provider: %w", err)
		}
		return prov, nil

	default:
		return nil, nil
	}
}
