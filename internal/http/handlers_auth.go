package httpx

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/service"
)

const (
	oauthStateCookie  = "oauth_state"
	oauthNonceCookie  = "oauth_nonce"
	oauthCookieMaxAge = 10 * time.Minute

	defaultOAuthClaimTTL = 24 * time.Hour
	oauthClaimPrefix     = "oauth-callback:"
)

//nolint:gochecknoglobals // static page metadata
var metaOAuthFragment = PageMeta{Title: "page.signing_in", PageTitle: "page.signing_in", CurrentPage: PageOAuthFragment}

// OAuthStart sends the browser to the provider.
// GET /oauth/start.
func (h *UIHandlers) OAuthStart(w http.ResponseWriter, r *http.Request) {
	switch h.OAuth.Mode {
	case OAuthModeBackend:
		if h.OAuth.StartURL == "" {
			h.NotFound(w, r)
			return
		}
		target, err := url.Parse(h.OAuth.StartURL)
		if err != nil {
			h.logger().ErrorContext(r.Context(), "invalid oauth start url", "error", err)
			h.renderErrorPage(w, r, http.StatusInternalServerError, "auth.error.oauth_unavailable")
			return
		}
		if h.OAuth.CallbackURL != "" {
			q := target.Query()
			q.Set("redirect_uri", h.OAuth.CallbackURL)
			target.RawQuery = q.Encode()
		}
		http.Redirect(w, r, target.String(), http.StatusFound)

	case OAuthModeOIDC, OAuthModeMock:
		res, err := h.Auth.BeginOAuth(r.Context(), h.OAuth.CallbackURL)
		if err != nil {
			h.logger().ErrorContext(r.Context(), "begin oauth failed", "error", err)
			h.renderErrorPage(w, r, http.StatusBadGateway, "auth.error.oauth_unavailable")
			return
		}
		h.setOAuthCookie(w, r, oauthStateCookie, res.State)
		h.setOAuthCookie(w, r, oauthNonceCookie, res.Nonce)
		http.Redirect(w, r, res.AuthURL, http.StatusFound)

	default:
		h.NotFound(w, r)
	}
}

// OAuthCallback finishes the provider flow and stores the session. The token never
// appears in the response; the browser is sent on with a 303 so the URL is scrubbed.
// GET|POST /oauth/callback.
func (h *UIHandlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	var (
		res service.LoginResult
		err error
	)
	if h.OAuth.Mode == OAuthModeBackend {
		res, err = h.acceptBackendToken(r)
	} else {
		res, err = h.completeProviderFlow(w, r)
	}
	if err != nil {
		h.logger().InfoContext(r.Context(), "oauth callback rejected",
			"error", err, "mode", h.OAuth.Mode, "code", apperrors.GetCode(err))
		h.render(w, r, http.StatusBadRequest, h.authPage(r, metaLogin).WithError(apperrors.UserMessage(err)).Build())
		return
	}
	h.Sessions.Set(w, r, res.Token, 0)
	http.Redirect(w, r, res.HomePath(), http.StatusSeeOther)
}

// acceptBackendToken handles ?token= (or access_token) from the backend redirect, or the
// token field posted by the fragment page. Each token is accepted at most once.
func (h *UIHandlers) acceptBackendToken(r *http.Request) (service.LoginResult, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.URL.Query().Get("access_token")
	}
	if token == "" && r.Method == http.MethodPost {
		token = r.PostFormValue("token")
		if token == "" {
			token = r.PostFormValue("access_token")
		}
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return service.LoginResult{}, apperrors.Validation("Sign-in link is incomplete. Please try again.")
	}

	if h.OAuth.Claims != nil {
		ttl := h.OAuth.ClaimTTL
		if ttl <= 0 {
			ttl = defaultOAuthClaimTTL
		}
		claimed, err := h.OAuth.Claims.Claim(r.Context(), oauthClaimKey(token), ttl)
		if err != nil {
			return service.LoginResult{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "Sign-in is unavailable right now. Please try again.")
		}
		if !claimed {
			return service.LoginResult{}, apperrors.Conflict("This sign-in link was already used. Please sign in again.")
		}
	}
	return h.Auth.AcceptToken(r.Context(), token)
}

// oauthClaimKey never stores the raw token.
func oauthClaimKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return oauthClaimPrefix + hex.EncodeToString(sum[:])
}

// completeProviderFlow checks state against the pinned cookie and exchanges the code.
// The state and nonce cookies are cleared whatever the outcome.
func (h *UIHandlers) completeProviderFlow(w http.ResponseWriter, r *http.Request) (service.LoginResult, error) {
	defer func() {
		h.clearOAuthCookie(w, r, oauthStateCookie)
		h.clearOAuthCookie(w, r, oauthNonceCookie)
	}()

	if msg := r.URL.Query().Get("error"); msg != "" {
		return service.LoginResult{}, apperrors.Unauthorized("Sign-in was cancelled.")
	}
	state := r.URL.Query().Get("state")
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || stateCookie.Value != state {
		return service.LoginResult{}, apperrors.Validation("Sign-in session expired. Please try again.")
	}
	nonceCookie, err := r.Cookie(oauthNonceCookie)
	if err != nil {
		return service.LoginResult{}, apperrors.Validation("Sign-in session expired. Please try again.")
	}
	return h.Auth.CompleteOAuth(r.Context(), service.CompleteOAuthInput{
		Code:  r.URL.Query().Get("code"),
		State: state,
		Nonce: nonceCookie.Value,
	})
}

// OAuthFragment serves the page that moves a token delivered in the URL fragment into
// a POST to /oauth/callback and replaces the history entry.
// GET /oauth/fragment.
func (h *UIHandlers) OAuthFragment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Referrer-Policy", "no-referrer")
	h.render(w, r, http.StatusOK, h.page(r, metaOAuthFragment).Build())
}

func (h *UIHandlers) setOAuthCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/oauth",
		Domain:   h.Sessions.Domain(),
		MaxAge:   int(oauthCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		// Lax so the cookie survives the top-level redirect back from the provider.
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UIHandlers) clearOAuthCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/oauth",
		Domain:   h.Sessions.Domain(),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Logout revokes the token on a best-effort basis and always clears the cookie.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := GetSessionFromContext(r.Context()); ok {
		h.Auth.Logout(r.Context(), s.Token)
		h.Auth.ForgetIdentity(r.Context(), s.Token)
	}
	h.Sessions.Clear(w, r)
	finish(w, r, "/?signed_out=1", "")
}

type authStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Username      string `json:"username,omitempty"`
	Email         string `json:"email,omitempty"`
	HasActivePlan bool   `json:"hasActivePlan"`
	Home          string `json:"home,omitempty"`
}

// AuthStatus reports the caller's session for client scripts. It never returns the token.
// GET /auth/status.
func (h *UIHandlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	s, ok := GetSessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, authStatusResponse{})
		return
	}
	id, err := h.Auth.ResolveIdentity(r.Context(), s.Token)
	switch {
	case apperrors.IsUnauthorized(err):
		h.Sessions.Clear(w, r)
		WriteJSON(w, http.StatusOK, authStatusResponse{})
	case err != nil:
		WriteAppError(w, err)
	default:
		WriteJSON(w, http.StatusOK, authStatusResponse{
			Authenticated: true,
			Role:          string(id.Role),
			Username:      id.Username,
			Email:         id.Email,
			HasActivePlan: id.HasActivePlan(),
			Home:          id.Role.HomePath(),
		})
	}
}
