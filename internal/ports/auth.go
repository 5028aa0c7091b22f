package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExternalIdentity is what a third-party identity provider asserts after a successful flow.
type ExternalIdentity struct {
	Subject string
	Email   string
	IDToken string
	// AccessToken is set when the provider already holds a platform bearer token,
	// in which case no backend exchange is needed.
	AccessToken string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the verified identity.
	Exchange(ctx context.Context, in ExchangeInput) (ExternalIdentity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// TokenClaims reads presentation hints from an opaque bearer token.
// Implementations do not verify signatures; results only drive redirects.
type TokenClaims interface {
	Role(token string) (domainauth.Role, error)
}

// SignupRequest is a new account registration.
type SignupRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// ResetPasswordRequest completes a forgotten-password flow.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// AuthAPI is the backend's unauthenticated account surface.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	Signup(ctx context.Context, req SignupRequest) error
	ConfirmOneTimeCode(ctx context.Context, email, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	Logout(ctx context.Context, token string) error
	ExchangeOAuth(ctx context.Context, idToken string) (token string, err error)
}
