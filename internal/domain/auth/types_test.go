package auth

import "testing"

func TestParseRole(t *testing.T) {
	tests := map[string]Role{
		"user":      RoleUser,
		"User":      RoleUser,
		" PROMOTER": RolePromoter,
		"owner":     RoleOwner,
		"admin":     RoleOwner,
		"":          RoleNone,
		"guest":     RoleNone,
	}
	for in, want := range tests {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRole_HomePath(t *testing.T) {
	tests := map[Role]string{
		RoleUser:     "/dashboard",
		RolePromoter: "/Promoter",
		RoleOwner:    "/Owner/profile",
		RoleNone:     "/",
	}
	for role, want := range tests {
		if got := role.HomePath(); got != want {
			t.Fatalf("%q.HomePath() = %q, want %q", role, got, want)
		}
	}
}

func TestRole_PlansPath(t *testing.T) {
	if RolePromoter.PlansPath() != "/Promoter/plans" {
		t.Fatalf("unexpected promoter plans path")
	}
	if RoleOwner.PlansPath() != "/Owner/profile" {
		t.Fatalf("owner has no plans page and should fall back to home")
	}
}

func TestIdentity_HasActivePlan(t *testing.T) {
	if (Identity{}).HasActivePlan() {
		t.Fatalf("zero identity should not have a plan")
	}
	if !(Identity{WatchPlanActive: true}).HasActivePlan() {
		t.Fatalf("watch plan should count")
	}
	if !(Identity{DownloadPlanActive: true}).HasActivePlan() {
		t.Fatalf("download plan should count")
	}
}

func TestSession_Present(t *testing.T) {
	if (Session{}).Present() {
		t.Fatalf("empty session should be absent")
	}
	if !(Session{Token: "t"}).Present() {
		t.Fatalf("token session should be present")
	}
}

func TestIdentity_DisplayName(t *testing.T) {
	if got := (Identity{Email: "a@b.co"}).DisplayName(); got != "a@b.co" {
		t.Fatalf("DisplayName() = %q", got)
	}
	if got := (Identity{Email: "a@b.co", Username: "ahmed"}).DisplayName(); got != "ahmed" {
		t.Fatalf("DisplayName() = %q", got)
	}
}
