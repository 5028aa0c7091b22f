package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/mocks"
)

func TestAccountService_UpdateProfileDropsIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	qc := newTestCache(t, nil)
	auth := NewAuthService(AuthServiceOptions{Account: api, Cache: qc})
	svc := NewAccountService(api, qc)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().UserInfo(gomock.Any(), "tok").Return(domainauth.Identity{Username: "old", Role: domainauth.RoleUser}, nil),
		api.EXPECT().UpdateProfile(gomock.Any(), "tok", model.Profile{Username: "new_name"}).Return(nil),
		api.EXPECT().UserInfo(gomock.Any(), "tok").Return(domainauth.Identity{Username: "new_name", Role: domainauth.RoleUser}, nil),
	)

	id, err := auth.ResolveIdentity(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "old", id.Username)

	require.NoError(t, svc.UpdateProfile(ctx, "tok", " new_name "))

	id, err = auth.ResolveIdentity(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "new_name", id.Username)
}

func TestAccountService_UpdateProfileValidation(t *testing.T) {
	svc := NewAccountService(mocks.NewMockAccountAPI(gomock.NewController(t)), nil)

	err := svc.UpdateProfile(context.Background(), "tok", "a b")
	require.Error(t, err)
	assert.Equal(t, "username", apperrors.GetField(err))
}

func TestAccountService_ChangePassword(t *testing.T) {
	api := mocks.NewMockAccountAPI(gomock.NewController(t))
	svc := NewAccountService(api, nil)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "tok", ChangePasswordInput{CurrentPassword: "old-pass1", NewPassword: "new-pass1", ConfirmPassword: "new-pass2"})
	assert.Equal(t, MsgPasswordsMustMatch, apperrors.UserMessage(err))

	api.EXPECT().ChangePassword(gomock.Any(), "tok", model.PasswordChange{CurrentPassword: "old-pass1", NewPassword: "new-pass1"}).Return(nil)
	require.NoError(t, svc.ChangePassword(ctx, "tok", ChangePasswordInput{CurrentPassword: "old-pass1", NewPassword: "new-pass1", ConfirmPassword: "new-pass1"}))
}

func TestAccountService_ReferralsAndPlansCached(t *testing.T) {
	api := mocks.NewMockAccountAPI(gomock.NewController(t))
	svc := NewAccountService(api, newTestCache(t, nil))
	ctx := context.Background()
	api.EXPECT().Referrals(gomock.Any(), "tok").Return(model.ReferralSummary{Code: "ABC"}, nil).Times(1)
	api.EXPECT().Plans(gomock.Any(), "tok").Return([]model.Plan{{ID: "p1", Kind: model.PlanDownload}}, nil).Times(1)

	for range 2 {
		r, err := svc.Referrals(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "ABC", r.Code)
		plans, err := svc.Plans(ctx, "tok")
		require.NoError(t, err)
		assert.Len(t, plans, 1)
	}
}
