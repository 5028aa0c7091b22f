package testutil

import (
	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
)

// RoleToken returns an HS256 token whose "role" claim is role. The signature uses a
// throwaway key: the application never verifies it.
func RoleToken(t TestingTB, role domainauth.Role) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-" + string(role),
		"role": string(role),
	}).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return s
}
