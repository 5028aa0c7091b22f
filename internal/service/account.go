package service

import (
	"context"
	"strings"

	"github.com/megabox/megabox-web/internal/domain/model"
	"github.com/megabox/megabox-web/internal/ports"
	"github.com/megabox/megabox-web/internal/validation"
)

const (
	queryProfile   = "profile"
	queryReferrals = "referrals"
	queryPlans     = "plans"
)

// AccountService manages the signed-in user's profile, referrals and plans.
type AccountService struct {
	api   ports.AccountAPI
	cache *QueryCache
}

// NewAccountService constructs an AccountService.
func NewAccountService(api ports.AccountAPI, cache *QueryCache) *AccountService {
	return &AccountService{api: api, cache: cache}
}

// Profile returns the editable profile.
func (s *AccountService) Profile(ctx context.Context, token string) (model.Profile, error) {
	return Fetch(ctx, s.cache, token, Query[model.Profile]{
		Key:   queryProfile,
		Fetch: func(ctx context.Context) (model.Profile, error) { return s.api.Profile(ctx, token) },
	})
}

// UpdateProfile saves a new username and drops the cached profile and identity.
func (s *AccountService) UpdateProfile(ctx context.Context, token string, username string) error {
	username = strings.TrimSpace(username)
	err := validation.New().
		Validate("username", username, validation.RequiredRange("Username", 3, 32), validation.Pattern("Username", usernamePattern)).
		Err()
	if err != nil {
		return err
	}
	if err := s.api.UpdateProfile(ctx, token, model.Profile{Username: username}); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, token, queryProfile, queryUserInfo)
	return nil
}

// ChangePasswordInput is the signed-in password form.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ChangePassword validates the form locally before calling the backend.
func (s *AccountService) ChangePassword(ctx context.Context, token string, in ChangePasswordInput) error {
	err := validation.New().
		Validate("confirmPassword", in.ConfirmPassword, validation.Matches(in.NewPassword, MsgPasswordsMustMatch)).
		Validate("currentPassword", in.CurrentPassword, validation.Required("Current password", 256)).
		Validate("newPassword", in.NewPassword, validation.Password("Password", minPasswordLen)).
		Err()
	if err != nil {
		return err
	}
	return s.api.ChangePassword(ctx, token, model.PasswordChange{
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
	})
}

// Referrals returns the referral code and referred users.
func (s *AccountService) Referrals(ctx context.Context, token string) (model.ReferralSummary, error) {
	return Fetch(ctx, s.cache, token, Query[model.ReferralSummary]{
		Key:   queryReferrals,
		Fetch: func(ctx context.Context) (model.ReferralSummary, error) { return s.api.Referrals(ctx, token) },
	})
}

// Plans lists purchasable plans.
func (s *AccountService) Plans(ctx context.Context, token string) ([]model.Plan, error) {
	return Fetch(ctx, s.cache, token, Query[[]model.Plan]{
		Key:   queryPlans,
		Fetch: func(ctx context.Context) ([]model.Plan, error) { return s.api.Plans(ctx, token) },
	})
}
