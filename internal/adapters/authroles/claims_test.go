package authroles

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return s
}

func TestJWTClaims_Role(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   domainauth.Role
	}{
		{"top-level role", jwt.MapClaims{"role": "Owner"}, domainauth.RoleOwner},
		{"lowercase role", jwt.MapClaims{"role": "promoter"}, domainauth.RolePromoter},
		{"nested user role", jwt.MapClaims{"user": map[string]any{"role": "User"}}, domainauth.RoleUser},
		{"roles array", jwt.MapClaims{"roles": []string{"unknown", "Promoter"}}, domainauth.RolePromoter},
		{"admin alias", jwt.MapClaims{"role": "admin"}, domainauth.RoleOwner},
	}
	reader := NewJWTClaims()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reader.Role(signed(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWTClaims_RoleIgnoresSignatureAndExpiry(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"role": "User", "exp": 1})
	got, err := JWTClaims{}.Role(tok)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleUser, got)
}

func TestJWTClaims_RoleErrors(t *testing.T) {
	reader := NewJWTClaims()

	_, err := reader.Role("")
	require.Error(t, err)

	_, err = reader.Role("opaque-session-token")
	require.Error(t, err)

	r, err := reader.Role(signed(t, jwt.MapClaims{"sub": "u1"}))
	require.Error(t, err)
	assert.Equal(t, domainauth.RoleNone, r)
}
