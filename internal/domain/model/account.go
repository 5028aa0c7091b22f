//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// Notification is one entry in the user's feed.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifications is the feed returned by the backend.
type Notifications []Notification

// UnreadCount returns how many notifications are unread.
func (n Notifications) UnreadCount() int {
	c := 0
	for _, item := range n {
		if !item.Read {
			c++
		}
	}
	return c
}

// ReferralSummary describes the caller's referral program state.
type ReferralSummary struct {
	Code          string         `json:"referralCode"`
	TotalEarnings Amount         `json:"totalEarnings"`
	Referred      []ReferredUser `json:"referredUsers"`
}

// ReferredUser is a signup attributed to the caller.
type ReferredUser struct {
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
	Earned   Amount    `json:"earned"`
	Active   bool      `json:"active"`
}

// ReferralLink builds the shareable signup link for a code.
func ReferralLink(baseURL, code string) string {
	if code == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/ref/" + code
}

// PlanKind distinguishes subscription entitlements.
type PlanKind string

const (
	PlanDownload PlanKind = "download"
	PlanWatch    PlanKind = "watch"
)

// Plan is a purchasable subscription.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Kind         PlanKind `json:"type"`
	Price        Amount   `json:"price"`
	Currency     string   `json:"currency"`
	DurationDays int      `json:"durationDays"`
	Features     []string `json:"features"`
	CheckoutURL  string   `json:"checkoutUrl,omitempty"`
}

// Profile is the editable part of the account.
type Profile struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// PasswordChange is a signed-in password update.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AdminUser is a platform account as listed to the owner.
type AdminUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlatformStats is the owner's platform-wide overview.
type PlatformStats struct {
	TotalUsers         int64  `json:"totalUsers"`
	TotalPromoters     int64  `json:"totalPromoters"`
	TotalFiles         int64  `json:"totalFiles"`
	StorageBytes       int64  `json:"storageBytes"`
	TotalRevenue       Amount `json:"totalRevenue"`
	PendingWithdrawals int64  `json:"pendingWithdrawals"`
}
