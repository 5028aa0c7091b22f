package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var (
	metaLogin          = PageMeta{Title: "page.login", PageTitle: "page.login", CurrentPage: PageLogin}
	metaSignup         = PageMeta{Title: "page.signup", PageTitle: "page.signup", CurrentPage: PageSignup}
	metaConfirm        = PageMeta{Title: "page.confirm", PageTitle: "page.confirm", CurrentPage: PageConfirm}
	metaForgotPassword = PageMeta{Title: "page.forgot_password", PageTitle: "page.forgot_password", CurrentPage: PageForgotPassword}
	metaResetPassword  = PageMeta{Title: "page.reset_password", PageTitle: "page.reset_password", CurrentPage: PageResetPassword}
)

// loginNotices maps query flags set by earlier steps of the auth flow to banners.
//
//nolint:gochecknoglobals // static read-only lookup
var loginNotices = map[string]string{
	"confirmed":  "auth.notice.confirmed",
	"reset":      "auth.notice.password_reset",
	"signed_out": "auth.notice.signed_out",
	"expired":    "auth.notice.expired",
}

// oauthAvailable reports whether the sign-in pages offer the provider button.
func (h *UIHandlers) oauthAvailable() bool {
	switch h.OAuth.Mode {
	case OAuthModeBackend:
		return h.OAuth.StartURL != ""
	case OAuthModeOIDC, OAuthModeMock:
		return h.Auth != nil && h.Auth.OAuthEnabled()
	default:
		return false
	}
}

func (h *UIHandlers) authPage(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return h.page(r, meta).With("OAuthEnabled", h.oauthAvailable())
}

// LoginPage renders the landing sign-in form. A caller whose token the backend still
// accepts goes straight to their home.
// GET /.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if s, ok := GetSessionFromContext(r.Context()); ok && h.Auth != nil {
		id, err := h.Auth.ResolveIdentity(r.Context(), s.Token)
		switch {
		case err == nil && id.Role.Valid():
			http.Redirect(w, r, id.Role.HomePath(), http.StatusSeeOther)
			return
		case apperrors.IsUnauthorized(err):
			h.Sessions.Clear(w, r)
		case err != nil:
			h.logger().WarnContext(r.Context(), "resolve identity on landing failed", "error", err)
		}
	}

	b := h.authPage(r, metaLogin).WithForm(map[string]string{"email": r.URL.Query().Get("email")})
	for flag, key := range loginNotices {
		if r.URL.Query().Get(flag) == "1" {
			b.WithSuccess(key)
			break
		}
	}
	h.render(w, r, http.StatusOK, b.Build())
}

// Login exchanges credentials for a token. The cookie is written only after the backend
// accepted the credentials, then the browser goes to the role's home.
// POST /.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	email := formValue(r, "email")
	res, err := h.Auth.Login(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		h.logger().InfoContext(r.Context(), "login rejected", "error", err, "code", apperrors.GetCode(err))
		h.formError(w, r, metaLogin, err, map[string]any{
			"Form":         map[string]string{"email": email},
			"OAuthEnabled": h.oauthAvailable(),
		})
		return
	}
	h.Sessions.Set(w, r, res.Token, 0)
	finish(w, r, res.HomePath(), "")
}

// SignupPage renders registration. ?ref= pre-fills the referral code.
// GET /signup.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.authPage(r, metaSignup).
		WithForm(map[string]string{"ref": strings.TrimSpace(r.URL.Query().Get("ref"))}).
		Build())
}

// Signup registers an account. It never signs the caller in; the next step is the
// one-time code sent by email.
// POST /signup.
func (h *UIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	in := service.SignupInput{
		Username:        formValue(r, "username"),
		Email:           formValue(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	ref := formValue(r, "ref")

	var err error
	if ref != "" {
		err = h.Auth.SignupWithReferral(r.Context(), in, ref)
	} else {
		err = h.Auth.Signup(r.Context(), in)
	}
	if err != nil {
		h.formError(w, r, metaSignup, err, map[string]any{
			"Form":         map[string]string{"username": in.Username, "email": in.Email, "ref": ref},
			"OAuthEnabled": h.oauthAvailable(),
		})
		return
	}
	finish(w, r, "/confirm?email="+url.QueryEscape(in.Email), "auth.toast.code_sent")
}

// ReferralLanding forwards a shared referral link to signup.
// GET /ref/{code}.
func (h *UIHandlers) ReferralLanding(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	target := "/signup"
	if code != "" {
		target += "?ref=" + url.QueryEscape(code)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ConfirmPage renders the one-time code form.
// GET /confirm.
func (h *UIHandlers) ConfirmPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.page(r, metaConfirm).
		WithForm(map[string]string{"email": r.URL.Query().Get("email")}).
		Build())
}

// Confirm verifies the one-time code and sends the caller to sign in.
// POST /confirm.
func (h *UIHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	email, code := formValue(r, "email"), formValue(r, "code")
	if err := h.Auth.ConfirmOneTimeCode(r.Context(), code, email); err != nil {
		h.formError(w, r, metaConfirm, err, map[string]any{
			"Form": map[string]string{"email": email},
		})
		return
	}
	finish(w, r, "/?confirmed=1&email="+url.QueryEscape(email), "auth.notice.confirmed")
}

// ForgotPasswordPage renders the reset request form.
// GET /forgot-password.
func (h *UIHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.page(r, metaForgotPassword).Build())
}

// ForgotPassword asks the backend to email a reset code.
// POST /forgot-password.
func (h *UIHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := formValue(r, "email")
	if err := h.Auth.RequestPasswordReset(r.Context(), email); err != nil {
		h.formError(w, r, metaForgotPassword, err, map[string]any{
			"Form": map[string]string{"email": email},
		})
		return
	}
	finish(w, r, "/reset-password?email="+url.QueryEscape(email), "auth.toast.code_sent")
}

// ResetPasswordPage renders the new-password form.
// GET /reset-password.
func (h *UIHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.page(r, metaResetPassword).
		WithForm(map[string]string{"email": r.URL.Query().Get("email")}).
		Build())
}

// ResetPassword sets a new password. A mismatched confirmation is rejected by the
// service before any backend call.
// POST /reset-password.
func (h *UIHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	in := service.ResetPasswordInput{
		Email:           formValue(r, "email"),
		Code:            formValue(r, "code"),
		NewPassword:     r.PostFormValue("newPassword"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	if err := h.Auth.ResetPassword(r.Context(), in); err != nil {
		h.formError(w, r, metaResetPassword, err, map[string]any{
			"Form": map[string]string{"email": in.Email, "code": in.Code},
		})
		return
	}
	finish(w, r, "/?reset=1&email="+url.QueryEscape(in.Email), "auth.notice.password_reset")
}
