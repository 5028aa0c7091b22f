package backend

import (
	"context"
	"net/http"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/model"
)

type identityWire struct {
	ID                 string `json:"id"`
	MongoID            string `json:"_id"`
	Role               string `json:"role"`
	Email              string `json:"email"`
	Username           string `json:"username"`
	DownloadPlanActive bool   `json:"downloadPlanActive"`
	WatchPlanActive    bool   `json:"watchPlanActive"`
	ReferralCode       string `json:"referralCode"`
	Plans              *struct {
		Download bool `json:"download"`
		Watch    bool `json:"watch"`
	} `json:"plans"`
}

func (w identityWire) toDomain() domainauth.Identity {
	id := domainauth.Identity{
		ID:                 w.ID,
		Role:               domainauth.ParseRole(w.Role),
		Email:              w.Email,
		Username:           w.Username,
		DownloadPlanActive: w.DownloadPlanActive,
		WatchPlanActive:    w.WatchPlanActive,
		ReferralCode:       w.ReferralCode,
	}
	if id.ID == "" {
		id.ID = w.MongoID
	}
	if w.Plans != nil {
		id.DownloadPlanActive = id.DownloadPlanActive || w.Plans.Download
		id.WatchPlanActive = id.WatchPlanActive || w.Plans.Watch
	}
	return id
}

// UserInfo returns the identity behind token.
func (c *Client) UserInfo(ctx context.Context, token string) (domainauth.Identity, error) {
	var w identityWire
	err := c.do(ctx, call{
		endpoint:  "user.info",
		method:    http.MethodGet,
		path:      "/user/info",
		token:     token,
		selectors: []string{"user"},
		out:       &w,
	})
	if err != nil {
		return domainauth.Identity{}, err
	}
	return w.toDomain(), nil
}

// Profile returns the editable profile.
func (c *Client) Profile(ctx context.Context, token string) (model.Profile, error) {
	var p model.Profile
	err := c.do(ctx, call{
		endpoint:  "user.profile",
		method:    http.MethodGet,
		path:      "/user/profile",
		token:     token,
		selectors: []string{"profile", "user"},
		out:       &p,
	})
	return p, err
}

// UpdateProfile saves profile changes.
func (c *Client) UpdateProfile(ctx context.Context, token string, p model.Profile) error {
	return c.do(ctx, call{
		endpoint: "user.profile_update",
		method:   http.MethodPut,
		path:     "/user/profile",
		token:    token,
		body:     map[string]string{"username": p.Username},
	})
}

// ChangePassword updates the password of the signed-in user.
func (c *Client) ChangePassword(ctx context.Context, token string, req model.PasswordChange) error {
	return c.do(ctx, call{
		endpoint: "user.password",
		method:   http.MethodPost,
		path:     "/user/password",
		token:    token,
		body:     req,
	})
}

// Referrals returns the caller's referral code and referred users.
func (c *Client) Referrals(ctx context.Context, token string) (model.ReferralSummary, error) {
	var r model.ReferralSummary
	err := c.do(ctx, call{
		endpoint:  "referrals.list",
		method:    http.MethodGet,
		path:      "/referrals",
		token:     token,
		selectors: []string{"referrals"},
		out:       &r,
	})
	return r, err
}

// Plans lists purchasable subscription plans.
func (c *Client) Plans(ctx context.Context, token string) ([]model.Plan, error) {
	var plans []model.Plan
	err := c.do(ctx, call{
		endpoint:  "plans.list",
		method:    http.MethodGet,
		path:      "/plans",
		token:     token,
		selectors: []string{"plans", "items"},
		out:       &plans,
	})
	return plans, err
}
