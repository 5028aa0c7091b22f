package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/megabox/megabox-web/internal/adapters/authroles"
	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/mocks"
	mockauth "github.com/megabox/megabox-web/internal/mocks/auth"
	"github.com/megabox/megabox-web/internal/ports"
	"github.com/megabox/megabox-web/internal/testutil"
)

type authFixture struct {
	api     *mocks.MockAuthAPI
	account *mocks.MockAccountAPI
	svc     *AuthService
}

func newAuthFixture(t *testing.T, provider ports.AuthProvider) authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := authFixture{
		api:     mocks.NewMockAuthAPI(ctrl),
		account: mocks.NewMockAccountAPI(ctrl),
	}
	f.svc = NewAuthService(AuthServiceOptions{
		API:      f.api,
		Account:  f.account,
		Claims:   authroles.NewJWTClaims(),
		Provider: provider,
		Cache:    newTestCache(t, nil),
	})
	return f
}

func TestAuthService_Login_RoleFromToken(t *testing.T) {
	tests := []struct {
		role domainauth.Role
		home string
	}{
		{domainauth.RoleUser, "/dashboard"},
		{domainauth.RolePromoter, "/Promoter"},
		{domainauth.RoleOwner, "/Owner/profile"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			f := newAuthFixture(t, nil)
			token := testutil.RoleToken(t, tt.role)
			f.api.EXPECT().Login(gomock.Any(), "a@b.co", "secret123").Return(token, nil)

			res, err := f.svc.Login(context.Background(), " a@b.co ", "secret123")
			require.NoError(t, err)
			assert.Equal(t, token, res.Token)
			assert.Equal(t, tt.role, res.Role)
			assert.Equal(t, tt.home, res.HomePath())
		})
	}
}

func TestAuthService_Login_FallsBackToIdentity(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return("opaque-token", nil)
	f.account.EXPECT().UserInfo(gomock.Any(), "opaque-token").
		Return(domainauth.Identity{ID: "u1", Role: domainauth.RolePromoter}, nil)

	res, err := f.svc.Login(context.Background(), "a@b.co", "secret123")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RolePromoter, res.Role)
}

func TestAuthService_Login_InvalidInputSkipsBackend(t *testing.T) {
	f := newAuthFixture(t, nil)

	_, err := f.svc.Login(context.Background(), "not-an-email", "pw")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAuthService_Login_BackendRejection(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", apperrors.Upstream(401, "Invalid email or password."))

	res, err := f.svc.Login(context.Background(), "a@b.co", "wrongpass")
	require.Error(t, err)
	assert.Empty(t, res.Token)
	assert.Equal(t, "Invalid email or password.", apperrors.UserMessage(err))
}

func TestAuthService_Signup_PasswordMismatch(t *testing.T) {
	f := newAuthFixture(t, nil)

	err := f.svc.Signup(context.Background(), SignupInput{
		Username:        "promo",
		Email:           "a@b.co",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})
	require.Error(t, err)
	assert.Equal(t, MsgPasswordsMustMatch, apperrors.UserMessage(err))
}

func TestAuthService_SignupWithReferral(t *testing.T) {
	f := newAuthFixture(t, nil)
	in := SignupInput{Username: "promo", Email: "a@b.co", Password: "secret123", ConfirmPassword: "secret123"}
	f.api.EXPECT().Signup(gomock.Any(), ports.SignupRequest{
		Username:     "promo",
		Email:        "a@b.co",
		Password:     "secret123",
		ReferralCode: "ABC123",
	}).Return(nil)

	require.NoError(t, f.svc.SignupWithReferral(context.Background(), in, "ABC123"))

	err := f.svc.SignupWithReferral(context.Background(), in, "bad code!")
	assert.Equal(t, "ref", apperrors.GetField(err))
}

func TestAuthService_ConfirmOneTimeCode(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.api.EXPECT().ConfirmOneTimeCode(gomock.Any(), "a@b.co", "123456").Return(nil)

	require.NoError(t, f.svc.ConfirmOneTimeCode(context.Background(), " 123456 ", "a@b.co"))
	assert.Error(t, f.svc.ConfirmOneTimeCode(context.Background(), "12", "a@b.co"))
}

func TestAuthService_ResetPassword_MismatchNeverReachesBackend(t *testing.T) {
	f := newAuthFixture(t, nil)

	err := f.svc.ResetPassword(context.Background(), ResetPasswordInput{
		Email:           "",
		Code:            "",
		NewPassword:     "secret123",
		ConfirmPassword: "other",
	})
	require.Error(t, err)
	assert.Equal(t, MsgPasswordsMustMatch, apperrors.UserMessage(err))
}

func TestAuthService_ResetPassword(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.api.EXPECT().ResetPassword(gomock.Any(), ports.ResetPasswordRequest{
		Email: "a@b.co", Code: "123456", NewPassword: "secret123",
	}).Return(nil)

	err := f.svc.ResetPassword(context.Background(), ResetPasswordInput{
		Email: "a@b.co", Code: "123456", NewPassword: "secret123", ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
}

func TestAuthService_Logout_IgnoresBackendFailure(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.api.EXPECT().Logout(gomock.Any(), "tok").Return(apperrors.Upstream(500, "down"))

	f.svc.Logout(context.Background(), "tok")
	f.svc.Logout(context.Background(), "")
}

func TestAuthService_ResolveIdentity_Cached(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.account.EXPECT().UserInfo(gomock.Any(), "tok").
		Return(domainauth.Identity{ID: "u1", Role: domainauth.RoleUser}, nil).Times(1)
	ctx := context.Background()

	for range 3 {
		id, err := f.svc.ResolveIdentity(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "u1", id.ID)
	}

	_, err := f.svc.ResolveIdentity(ctx, "")
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_ResolveIdentity_IgnoresTokenRoleClaim(t *testing.T) {
	f := newAuthFixture(t, nil)
	token := testutil.RoleToken(t, domainauth.RoleOwner)
	f.account.EXPECT().UserInfo(gomock.Any(), token).Return(domainauth.Identity{ID: "o1"}, nil)

	id, err := f.svc.ResolveIdentity(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, id.Role)
	assert.False(t, id.Role.Valid())
}

func TestAuthService_OAuth_ExchangesIDToken(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	f := newAuthFixture(t, provider)
	ctx := context.Background()
	token := testutil.RoleToken(t, domainauth.RoleUser)
	f.api.EXPECT().ExchangeOAuth(gomock.Any(), "mock-id-token").Return(token, nil)

	begin, err := f.svc.BeginOAuth(ctx, "http://localhost/auth/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", begin.AuthURL)

	res, err := f.svc.CompleteOAuth(ctx, CompleteOAuthInput{Code: "c", State: begin.State, Nonce: begin.Nonce})
	require.NoError(t, err)
	assert.Equal(t, token, res.Token)
	assert.Equal(t, domainauth.RoleUser, res.Role)

	_, err = f.svc.CompleteOAuth(ctx, CompleteOAuthInput{Code: "c", State: begin.State, Nonce: begin.Nonce})
	assert.True(t, apperrors.IsUnauthorized(err), "state is consumed once")
}

func TestAuthService_OAuth_ProviderIssuedToken(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	token := testutil.RoleToken(t, domainauth.RolePromoter)
	provider.Identity.AccessToken = token
	f := newAuthFixture(t, provider)
	ctx := context.Background()

	begin, err := f.svc.BeginOAuth(ctx, "")
	require.NoError(t, err)
	res, err := f.svc.CompleteOAuth(ctx, CompleteOAuthInput{Code: "c", State: begin.State, Nonce: begin.Nonce})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RolePromoter, res.Role)
}

func TestAuthService_OAuth_Disabled(t *testing.T) {
	f := newAuthFixture(t, nil)
	assert.False(t, f.svc.OAuthEnabled())

	_, err := f.svc.BeginOAuth(context.Background(), "")
	assert.ErrorIs(t, err, errOAuthDisabled)
}

func TestAuthService_AcceptToken(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.account.EXPECT().UserInfo(gomock.Any(), "backend-token").
		Return(domainauth.Identity{ID: "u1", Role: domainauth.RoleUser}, nil)
	f.account.EXPECT().UserInfo(gomock.Any(), "forged").
		Return(domainauth.Identity{}, apperrors.Upstream(401, "expired"))

	res, err := f.svc.AcceptToken(context.Background(), "backend-token")
	require.NoError(t, err)
	assert.Equal(t, "backend-token", res.Token)

	res, err = f.svc.AcceptToken(context.Background(), "forged")
	require.Error(t, err)
	assert.Empty(t, res.Token)
}
