package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/ports"
)

var tokenSelectors = []string{"token", "accessToken", "access_token", "user.token"}

type tokenResponse struct {
	Token string
}

// UnmarshalJSON keeps string payloads and ignores anything else.
func (t *tokenResponse) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.Token = strings.TrimSpace(s)
	}
	return nil
}

func (c *Client) fetchToken(ctx context.Context, cl call) (string, error) {
	var tr tokenResponse
	cl.selectors = tokenSelectors
	cl.out = &tr
	if err := c.do(ctx, cl); err != nil {
		return "", err
	}
	if tr.Token == "" {
		return "", apperrors.Upstream(http.StatusBadGateway, "The server did not return a session token.")
	}
	return tr.Token, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.fetchToken(ctx, call{
		endpoint: "auth.login",
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     map[string]string{"email": email, "password": password},
	})
}

// Signup registers a new account. A confirmation code is sent by e-mail.
func (c *Client) Signup(ctx context.Context, req ports.SignupRequest) error {
	return c.do(ctx, call{
		endpoint: "auth.signup",
		method:   http.MethodPost,
		path:     "/auth/signup",
		body:     req,
	})
}

// ConfirmOneTimeCode verifies the e-mailed signup code.
func (c *Client) ConfirmOneTimeCode(ctx context.Context, email, code string) error {
	return c.do(ctx, call{
		endpoint: "auth.confirm",
		method:   http.MethodPost,
		path:     "/auth/confirm",
		body:     map[string]string{"email": email, "otp": code},
	})
}

// ForgotPassword asks the backend to e-mail a reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, call{
		endpoint: "auth.forgot_password",
		method:   http.MethodPost,
		path:     "/auth/forgot-password",
		body:     map[string]string{"email": email},
	})
}

// ResetPassword sets a new password using the e-mailed code.
func (c *Client) ResetPassword(ctx context.Context, req ports.ResetPasswordRequest) error {
	return c.do(ctx, call{
		endpoint: "auth.reset_password",
		method:   http.MethodPost,
		path:     "/auth/reset-password",
		body:     req,
	})
}

// Logout revokes the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, call{
		endpoint: "auth.logout",
		method:   http.MethodPost,
		path:     "/auth/logout",
		token:    token,
	})
}

// ExchangeOAuth trades a verified identity-provider ID token for a platform token.
func (c *Client) ExchangeOAuth(ctx context.Context, idToken string) (string, error) {
	return c.fetchToken(ctx, call{
		endpoint: "auth.oauth_exchange",
		method:   http.MethodPost,
		path:     "/auth/oauth/exchange",
		body:     map[string]string{"idToken": idToken},
	})
}
