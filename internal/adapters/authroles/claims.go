// Package authroles reads the role hint carried in the platform bearer token.
package authroles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/ports"
)

// roleClaims covers the claim shapes the backend has issued over time.
type roleClaims struct {
	Role  string   `json:"role"`
	Roles []string `json:"roles"`
	User  struct {
		Role string `json:"role"`
	} `json:"user"`
	jwt.RegisteredClaims
}

// JWTClaims decodes tokens without verifying the signature. The backend re-checks
// every request, so the decoded role only picks a redirect target.
type JWTClaims struct {
	parser *jwt.Parser
}

var _ ports.TokenClaims = JWTClaims{}

// NewJWTClaims returns a claims reader.
func NewJWTClaims() JWTClaims {
	return JWTClaims{parser: jwt.NewParser()}
}

// Role returns the role claim, or RoleNone with an error when the token is opaque.
func (c JWTClaims) Role(token string) (domainauth.Role, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainauth.RoleNone, errors.New("empty token")
	}
	p := c.parser
	if p == nil {
		p = jwt.NewParser()
	}

	var claims roleClaims
	if _, _, err := p.ParseUnverified(token, &claims); err != nil {
		return domainauth.RoleNone, fmt.Errorf("decode token claims: %w", err)
	}

	for _, raw := range append([]string{claims.Role, claims.User.Role}, claims.Roles...) {
		if r := domainauth.ParseRole(raw); r != domainauth.RoleNone {
			return r, nil
		}
	}
	return domainauth.RoleNone, errors.New("token carries no role claim")
}
