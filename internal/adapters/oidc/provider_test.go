package oidc

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/megabox/megabox-web/internal/ports"
)

const testClientID = "megabox-web"

// fakeIssuer serves discovery, JWKS and a token endpoint that returns a signed ID token.
type fakeIssuer struct {
	srv   *httptest.Server
	key   *rsa.PrivateKey
	nonce string
	email string
}

func newFakeIssuer(t *testing.T) *fakeIssuer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fi := &fakeIssuer{key: key, email: "promoter@example.com"}
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                                fi.srv.URL,
			"authorization_endpoint":                fi.srv.URL + "/authorize",
			"token_endpoint":                        fi.srv.URL + "/token",
			"jwks_uri":                              fi.srv.URL + "/jwks",
			"id_token_signing_alg_values_supported": []string{"RS256"},
		})
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"keys": []map[string]string{{
			"kty": "RSA",
			"kid": "k1",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "good-code", r.PostForm.Get("code"))

		tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
			"iss":   fi.srv.URL,
			"aud":   testClientID,
			"sub":   "google-123",
			"email": fi.email,
			"nonce": fi.nonce,
			"iat":   time.Now().Unix(),
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		tok.Header["kid"] = "k1"
		signed, err := tok.SignedString(key)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     signed,
		})
	})
	fi.srv = httptest.NewServer(mux)
	t.Cleanup(fi.srv.Close)
	return fi
}

func (fi *fakeIssuer) provider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(ProviderConfig{
		ClientID:     testClientID,
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/oauth/callback",
		Scope:        "profile email",
		DiscoveryURL: fi.srv.URL + "/.well-known/openid-configuration",
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config ProviderConfig
		errMsg string
	}{
		{"missing client ID", ProviderConfig{ClientSecret: "s", RedirectURL: "r", DiscoveryURL: "d"}, "client ID is required"},
		{"missing client secret", ProviderConfig{ClientID: "c", RedirectURL: "r", DiscoveryURL: "d"}, "client secret is required"},
		{"missing redirect URL", ProviderConfig{ClientID: "c", ClientSecret: "s", DiscoveryURL: "d"}, "redirect URL is required"},
		{"missing discovery URL", ProviderConfig{ClientID: "c", ClientSecret: "s", RedirectURL: "r"}, "discovery URL is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProvider(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestIssuerFromDiscovery(t *testing.T) {
	assert.Equal(t, "https://accounts.example.com", issuerFromDiscovery("https://accounts.example.com/.well-known/openid-configuration"))
	assert.Equal(t, "https://accounts.example.com", issuerFromDiscovery("https://accounts.example.com/"))
}

func TestProvider_Begin(t *testing.T) {
	p := newFakeIssuer(t).provider(t)

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "/oauth/callback"})
	require.NoError(t, err)
	assert.Len(t, state, 32)
	assert.Len(t, nonce, 32)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "/authorize", u.Path)
	assert.Equal(t, testClientID, q.Get("client_id"))
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, nonce, q.Get("nonce"))
	assert.Equal(t, "openid profile email", q.Get("scope"))

	_, _, _, err = p.Begin(context.Background(), ports.BeginInput{})
	require.Error(t, err)
}

func TestProvider_ExchangeVerifiesIDToken(t *testing.T) {
	fi := newFakeIssuer(t)
	p := fi.provider(t)
	fi.nonce = "expected-nonce"

	id, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "good-code", State: "s", Nonce: "expected-nonce"})
	require.NoError(t, err)
	assert.Equal(t, "google-123", id.Subject)
	assert.Equal(t, "promoter@example.com", id.Email)
	assert.NotEmpty(t, id.IDToken)
	assert.Empty(t, id.AccessToken)
}

func TestProvider_ExchangeRejectsNonceMismatch(t *testing.T) {
	fi := newFakeIssuer(t)
	p := fi.provider(t)
	fi.nonce = "other"

	_, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "good-code", State: "s", Nonce: "expected-nonce"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid nonce")
}

func TestProvider_ExchangeValidationErrors(t *testing.T) {
	p := newFakeIssuer(t).provider(t)
	tests := []struct {
		in     ports.ExchangeInput
		errMsg string
	}{
		{ports.ExchangeInput{State: "s", Nonce: "n"}, "authorization code is required"},
		{ports.ExchangeInput{Code: "c", Nonce: "n"}, "state is required"},
		{ports.ExchangeInput{Code: "c", State: "s"}, "nonce is required"},
	}
	for _, tt := range tests {
		_, err := p.Exchange(context.Background(), tt.in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.errMsg)
	}
}

func TestIDTokenFrom(t *testing.T) {
	s, err := idTokenFrom((&oauth2.Token{}).WithExtra(map[string]any{"id_token": "a.b.c"}))
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", s)

	_, err = idTokenFrom((&oauth2.Token{}).WithExtra(map[string]any{"x": "y"}))
	require.ErrorContains(t, err, "missing id_token")

	_, err = idTokenFrom(nil)
	require.ErrorContains(t, err, "nil token")
}
