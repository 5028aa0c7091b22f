package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.TokenClaims  = StaticTokenClaims{}
)

// ErrUnknownState is returned by MockAuthProvider when Exchange sees a state it never issued.
var ErrUnknownState = errors.New("unknown state")

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (ports.ExternalIdentity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	Identity    ports.ExternalIdentity

	mu        sync.Mutex
	callCount int
	issued    map[string]string
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		Identity: ports.ExternalIdentity{
			Subject: "mock-user-1",
			Email:   "mock.user@example.com",
			IDToken: "mock-id-token",
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++

	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)
	if m.issued == nil {
		m.issued = make(map[string]string)
	}
	m.issued[state] = nonce
	return authURL, state, nonce, nil
}

// Exchange returns Identity once per issued state. A reused or foreign state fails.
func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (ports.ExternalIdentity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	nonce, ok := m.issued[in.State]
	if !ok || nonce != in.Nonce {
		return ports.ExternalIdentity{}, ErrUnknownState
	}
	delete(m.issued, in.State)
	return m.Identity, nil
}

// StaticTokenClaims maps known tokens to roles.
type StaticTokenClaims map[string]domainauth.Role

func (c StaticTokenClaims) Role(token string) (domainauth.Role, error) {
	r, ok := c[token]
	if !ok {
		return domainauth.RoleNone, errors.New("token carries no role")
	}
	return r, nil
}
