package httpx

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/ports"
)

func TestLogin_RoleClaimPicksHome(t *testing.T) {
	tests := []struct {
		role domainauth.Role
		want string
	}{
		{domainauth.RoleUser, "/dashboard"},
		{domainauth.RolePromoter, "/Promoter"},
		{domainauth.RoleOwner, "/Owner/profile"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			env := newTestEnv(t)
			token := roleToken(t, tt.role)
			env.auth.EXPECT().Login(gomock.Any(), "sam@example.com", "s3cret-pass").Return(token, nil)

			rec := env.post("/", url.Values{"email": {"sam@example.com"}, "password": {"s3cret-pass"}})

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))

			c := responseCookie(rec, DefaultSessionCookieName)
			require.NotNil(t, c, "session cookie must be set")
			assert.Equal(t, token, c.Value)
			assert.True(t, c.HttpOnly)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.Positive(t, c.MaxAge)
		})
	}
}

func TestLogin_HTMXUsesClientRedirect(t *testing.T) {
	env := newTestEnv(t)
	token := roleToken(t, domainauth.RoleUser)
	env.auth.EXPECT().Login(gomock.Any(), "sam@example.com", "s3cret-pass").Return(token, nil)

	rec := env.post("/", url.Values{"email": {"sam@example.com"}, "password": {"s3cret-pass"}}, asHTMX())

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Hx-Redirect"))
	assert.NotNil(t, responseCookie(rec, DefaultSessionCookieName))
}

func TestLogin_RejectedCredentialsKeepNoCookie(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().Login(gomock.Any(), "sam@example.com", "wrong-pass").
		Return("", apperrors.Unauthorized("Invalid email or password."))

	rec := env.post("/", url.Values{"email": {"sam@example.com"}, "password": {"wrong-pass"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
	assert.Contains(t, rec.Body.String(), `value="sam@example.com"`)
	assert.Nil(t, responseCookie(rec, DefaultSessionCookieName))
}

func TestLogin_InvalidEmailNeverReachesBackend(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post("/", url.Values{"email": {"not-an-email"}, "password": {"x"}}, asHTMX())

	assert.Equal(t, http.StatusOK, rec.Code, "htmx only swaps 2xx responses")
	assert.Contains(t, rec.Body.String(), "field-error")
}

func TestLoginPage_SignedInGoesHome(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(domainauth.RoleOwner, false)

	rec := env.get("/", withToken(token))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/Owner/profile", rec.Header().Get("Location"))
}

func TestLoginPage_NoticeFlags(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/?confirmed=1&email=sam%40example.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "alert-success")
	assert.Contains(t, body, `value="sam@example.com"`)
}

func TestResetPassword_MismatchNeverReachesBackend(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post("/reset-password", url.Values{
		"email":           {"sam@example.com"},
		"code":            {"123456"},
		"newPassword":     {"new-password-1"},
		"confirmPassword": {"new-password-2"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords must match.")
}

func TestResetPassword_Success(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().ResetPassword(gomock.Any(), ports.ResetPasswordRequest{
		Email: "sam@example.com", Code: "123456", NewPassword: "new-password-1",
	}).Return(nil)

	rec := env.post("/reset-password", url.Values{
		"email":           {"sam@example.com"},
		"code":            {"123456"},
		"newPassword":     {"new-password-1"},
		"confirmPassword": {"new-password-1"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?reset=1&email=sam%40example.com", rec.Header().Get("Location"))
}

func TestSignup_ReferralCodeIsForwarded(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().Signup(gomock.Any(), ports.SignupRequest{
		Username:     "sammy",
		Email:        "sam@example.com",
		Password:     "long-enough-1",
		ReferralCode: "ABC123",
	}).Return(nil)

	rec := env.post("/signup", url.Values{
		"username":        {"sammy"},
		"email":           {"sam@example.com"},
		"password":        {"long-enough-1"},
		"confirmPassword": {"long-enough-1"},
		"ref":             {"ABC123"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/confirm?email=sam%40example.com", rec.Header().Get("Location"))
	assert.Nil(t, responseCookie(rec, DefaultSessionCookieName), "signup never signs in")
}

func TestReferralLanding(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/ref/ABC123")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signup?ref=ABC123", rec.Header().Get("Location"))
}

func TestConfirm_BackendRejection(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().ConfirmOneTimeCode(gomock.Any(), "sam@example.com", "123456").
		Return(apperrors.Upstream(http.StatusBadRequest, "Code expired."))

	rec := env.post("/confirm", url.Values{"email": {"sam@example.com"}, "code": {"123456"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Code expired.")
}

func TestLogout_ClearsCookieEvenWhenBackendFails(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().Logout(gomock.Any(), "tok").Return(apperrors.Unauthorized("expired"))

	rec := env.post("/logout", nil, withToken("tok"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?signed_out=1", rec.Header().Get("Location"))
	c := responseCookie(rec, DefaultSessionCookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestSetLanguage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post("/lang", url.Values{"lang": {"ar"}, "next": {"/about"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/about", rec.Header().Get("Location"))
	c := responseCookie(rec, "lang")
	require.NotNil(t, c)
	assert.Equal(t, "ar", c.Value)

	rec = env.post("/lang", url.Values{"lang": {"en"}, "next": {"//evil.example"}},
		withHeader("Referer", "https://evil.example/phish"))
	assert.Equal(t, "/", rec.Header().Get("Location"), "off-site targets are ignored")

	rec = env.post("/lang", url.Values{"lang": {"fr"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArabicPagesAreRightToLeft(t *testing.T) {
	env := newTestEnv(t)
	rec := env.get("/about", withCookie(&http.Cookie{Name: "lang", Value: "ar"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dir="rtl"`)
}

func TestAuthStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.get("/auth/status", withHeader("Accept", "application/json"))
	assert.JSONEq(t, `{"authenticated":false,"hasActivePlan":false}`, rec.Body.String())

	token := env.signIn(domainauth.RolePromoter, true)
	rec = env.get("/auth/status", withToken(token), withHeader("Accept", "application/json"))
	require.Equal(t, http.StatusOK, rec.Code)

	var got authStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Authenticated)
	assert.Equal(t, "Promoter", got.Role)
	assert.True(t, got.HasActivePlan)
	assert.Equal(t, "/Promoter", got.Home)
	assert.NotContains(t, rec.Body.String(), token)
}

func TestRateLimiter_ThrottlesCredentialPosts(t *testing.T) {
	env := newTestEnv(t, func(_ *testEnv, s *RouterServices) {
		s.RateLimiter = NewRateLimiter(RateLimiterConfig{PerMinute: 1, Burst: 1})
	})
	env.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", apperrors.Unauthorized("Invalid email or password.")).Times(1)

	form := url.Values{"email": {"sam@example.com"}, "password": {"x"}}
	first := env.post("/", form)
	assert.Equal(t, http.StatusUnprocessableEntity, first.Code)

	second := env.post("/", url.Values{"email": {"sam@example.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	// Displaying the form is never throttled.
	assert.Equal(t, http.StatusOK, env.get("/").Code)
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeers(t *testing.T) {
	env := newTestEnv(t, func(_ *testEnv, s *RouterServices) {
		s.RateLimiter = NewRateLimiter(RateLimiterConfig{PerMinute: 1, Burst: 1})
	})
	env.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", apperrors.Unauthorized("Invalid email or password.")).Times(1)

	form := func() url.Values { return url.Values{"email": {"sam@example.com"}, "password": {"x"}} }
	first := env.post("/", form(), withHeader("X-Forwarded-For", "198.51.100.1"))
	assert.Equal(t, http.StatusUnprocessableEntity, first.Code)

	second := env.post("/", form(), withHeader("X-Forwarded-For", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
