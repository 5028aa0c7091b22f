package oidc

// Package oidc runs the OpenID Connect authorization-code flow for the "oidc" OAuth mode.
// The verified ID token is later exchanged with the backend for a platform token.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/megabox/megabox-web/internal/ports"
)

// Provider implements ports.AuthProvider on top of go-oidc.
type Provider struct {
	config     *oauth2.Config
	httpClient *http.Client
	verifier   *gooidc.IDTokenVerifier
}

var _ ports.AuthProvider = (*Provider)(nil)

// ProviderConfig holds the client registration.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	DiscoveryURL string
	HTTPClient   *http.Client
}

func (c ProviderConfig) validate() error {
	switch {
	case c.ClientID == "":
		return errors.New("client ID is required")
	case c.ClientSecret == "":
		return errors.New("client secret is required")
	case c.RedirectURL == "":
		return errors.New("redirect URL is required")
	case c.DiscoveryURL == "":
		return errors.New("discovery URL is required")
	}
	return nil
}

// NewProvider fetches the discovery document once and builds the verifier.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	scopes := strings.Fields(cfg.Scope)
	if !slices.Contains(scopes, gooidc.ScopeOpenID) {
		scopes = append([]string{gooidc.ScopeOpenID}, scopes...)
	}

	ctx := gooidc.ClientContext(context.Background(), hc)
	op, err := gooidc.NewProvider(ctx, issuerFromDiscovery(cfg.DiscoveryURL))
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
		httpClient: hc,
		verifier:   op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func issuerFromDiscovery(u string) string {
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, "/.well-known/openid-configuration")
	return strings.TrimSuffix(u, "/")
}

// Begin returns the provider authorization URL along with fresh state and nonce.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}
	state, err := randomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	authURL := p.config.AuthCodeURL(state,
		gooidc.Nonce(nonce),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return authURL, state, nonce, nil
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
}

// Exchange redeems the code, verifies the ID token and its nonce, and returns the identity.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.ExternalIdentity, error) {
	switch {
	case in.Code == "":
		return ports.ExternalIdentity{}, errors.New("authorization code is required")
	case in.State == "":
		return ports.ExternalIdentity{}, errors.New("state is required")
	case in.Nonce == "":
		return ports.ExternalIdentity{}, errors.New("nonce is required")
	}

	ctx = gooidc.ClientContext(ctx, p.httpClient)
	tok, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return ports.ExternalIdentity{}, fmt.Errorf("exchange code for token: %w", err)
	}
	rawID, err := idTokenFrom(tok)
	if err != nil {
		return ports.ExternalIdentity{}, err
	}
	idTok, err := p.verifier.Verify(ctx, rawID)
	if err != nil {
		return ports.ExternalIdentity{}, fmt.Errorf("verify id_token: %w", err)
	}
	if idTok.Nonce != in.Nonce {
		return ports.ExternalIdentity{}, errors.New("invalid nonce")
	}

	var claims idClaims
	if err := idTok.Claims(&claims); err != nil {
		return ports.ExternalIdentity{}, fmt.Errorf("parse id_token claims: %w", err)
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return ports.ExternalIdentity{}, errors.New("email address is not verified")
	}

	return ports.ExternalIdentity{
		Subject: idTok.Subject,
		Email:   claims.Email,
		IDToken: rawID,
	}, nil
}

func idTokenFrom(tok *oauth2.Token) (string, error) {
	if tok == nil {
		return "", errors.New("nil token")
	}
	s, ok := tok.Extra("id_token").(string)
	if !ok || s == "" {
		return "", errors.New("missing id_token in token response")
	}
	return s, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
