// Package route holds the pure access decision applied to every page before it renders.
package route

import "github.com/megabox/megabox-web/internal/domain/auth"

// Permission is attached statically to a route node and never mutated at runtime.
type Permission struct {
	RequiredLogin bool
	RequiredRole  auth.Role
	RequiredPlan  bool
}

// Public is the permission of pages anyone may open.
var Public = Permission{}

// Requires returns a permission that needs a session and, when role is set, that role.
func Requires(role auth.Role) Permission {
	return Permission{RequiredLogin: true, RequiredRole: role}
}

// WithPlan returns a copy of p that also requires an active plan.
func (p Permission) WithPlan() Permission {
	p.RequiredLogin = true
	p.RequiredPlan = true
	return p
}

// NeedsIdentity reports whether evaluating p requires the backend identity.
func (p Permission) NeedsIdentity() bool {
	return p.RequiredRole != auth.RoleNone || p.RequiredPlan
}

// Merge combines an enclosing permission with a nested one. A nested node can only tighten.
func (p Permission) Merge(inner Permission) Permission {
	out := p
	out.RequiredLogin = p.RequiredLogin || inner.RequiredLogin || inner.NeedsIdentity()
	if inner.RequiredRole != auth.RoleNone {
		out.RequiredRole = inner.RequiredRole
	}
	out.RequiredPlan = p.RequiredPlan || inner.RequiredPlan
	return out
}

// Subject is what a gate knows about the caller.
type Subject struct {
	Session  auth.Session
	Identity *auth.Identity
}

// Outcome is the result of evaluating a permission.
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	Forbidden
	PlanRequired
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case Forbidden:
		return "forbidden"
	case PlanRequired:
		return "plan_required"
	default:
		return "unknown"
	}
}

// Evaluate decides whether s may open a page guarded by p.
// Checks run login, then role, then plan; the first failure wins.
// A missing identity fails any check that needs one.
func Evaluate(s Subject, p Permission) Outcome {
	if (p.RequiredLogin || p.NeedsIdentity()) && !s.Session.Present() {
		return RedirectLogin
	}
	if p.RequiredRole != auth.RoleNone {
		if s.Identity == nil || s.Identity.Role != p.RequiredRole {
			return Forbidden
		}
	}
	if p.RequiredPlan {
		if s.Identity == nil || !s.Identity.HasActivePlan() {
			return PlanRequired
		}
	}
	return Allow
}
