// Package auth contains domain-level types for sessions and identities.
// It is pure and free of framework/adapter concerns.
package auth

import "strings"

// Role represents a platform role as reported by the backend.
type Role string

const (
	RoleNone     Role = ""
	RoleUser     Role = "User"
	RolePromoter Role = "Promoter"
	RoleOwner    Role = "Owner"
)

// ParseRole normalises a backend or token role string. Unknown values map to RoleNone.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser
	case "promoter":
		return RolePromoter
	case "owner", "admin":
		return RoleOwner
	default:
		return RoleNone
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RolePromoter || r == RoleOwner
}

// HomePath is the landing page after sign-in for the role.
func (r Role) HomePath() string {
	switch r {
	case RoleUser:
		return "/dashboard"
	case RolePromoter:
		return "/Promoter"
	case RoleOwner:
		return "/Owner/profile"
	default:
		return "/"
	}
}

// PlansPath is where a role is sent when a plan-gated page needs an active plan.
func (r Role) PlansPath() string {
	switch r {
	case RolePromoter:
		return "/Promoter/plans"
	case RoleUser:
		return "/dashboard/plans"
	default:
		return r.HomePath()
	}
}

// Session is the browser-held credential: an opaque bearer token.
// The zero value is the anonymous session.
type Session struct {
	Token string
}

// Present reports whether a token is held.
func (s Session) Present() bool { return s.Token != "" }

// Identity is the principal as described by the backend for the current token.
// It is re-fetched per page and never trusted beyond presentation decisions.
type Identity struct {
	ID                 string `json:"id"`
	Role               Role   `json:"role"`
	Email              string `json:"email"`
	Username           string `json:"username"`
	DownloadPlanActive bool   `json:"downloadPlanActive"`
	WatchPlanActive    bool   `json:"watchPlanActive"`
	ReferralCode       string `json:"referralCode,omitempty"`
}

// HasActivePlan reports whether any subscription plan is active.
func (i Identity) HasActivePlan() bool {
	return i.DownloadPlanActive || i.WatchPlanActive
}

// DisplayName returns the username, falling back to the email.
func (i Identity) DisplayName() string {
	if i.Username != "" {
		return i.Username
	}
	return i.Email
}
