// Package devauth is the mock OAuth provider used in development. It skips the
// identity provider entirely and hands back a configured platform token.
package devauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/megabox/megabox-web/internal/ports"
)

// Config controls the mock provider.
type Config struct {
	// Token is the platform bearer token returned on every sign-in.
	Token string
	// Email is reported as the signed-in address.
	Email string
	// CallbackPath is where Begin sends the browser. Defaults to /oauth/callback.
	CallbackPath string
}

// Provider implements ports.AuthProvider without any network calls.
type Provider struct {
	token    string
	email    string
	callback string
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider validates cfg.
func NewProvider(cfg Config) (*Provider, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("mock oauth: token is required (set DEV_AUTH_TOKEN)")
	}
	cb := cfg.CallbackPath
	if cb == "" {
		cb = "/oauth/callback"
	}
	email := cfg.Email
	if email == "" {
		email = "dev@megabox.local"
	}
	return &Provider{token: token, email: email, callback: cb}, nil
}

// Begin returns a same-origin callback URL with fresh state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	q := url.Values{"code": {"mock"}, "state": {state}}
	return p.callback + "?" + q.Encode(), state, nonce, nil
}

// Exchange ignores the code; state and nonce are checked by the caller.
func (p *Provider) Exchange(_ context.Context, in ports.ExchangeInput) (ports.ExternalIdentity, error) {
	if in.Code == "" {
		return ports.ExternalIdentity{}, errors.New("mock oauth: missing code")
	}
	return ports.ExternalIdentity{
		Subject:     "mock-user",
		Email:       p.email,
		AccessToken: p.token,
	}, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
