package httpx

import (
	"net/http"
	"time"

	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/i18n"
)

const langCookieMaxAge = 365 * 24 * time.Hour

// About renders the marketing page.
func (h *UIHandlers) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.page(r, PageMeta{
		Title: "page.about", PageTitle: "page.about", CurrentPage: PageAbout,
	}).Build())
}

// Terms renders the terms of service.
func (h *UIHandlers) Terms(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.page(r, PageMeta{
		Title: "page.terms", PageTitle: "page.terms", CurrentPage: PageTerms,
	}).Build())
}

// Privacy renders the privacy policy.
func (h *UIHandlers) Privacy(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.page(r, PageMeta{
		Title: "page.privacy", PageTitle: "page.privacy", CurrentPage: PagePrivacy,
	}).Build())
}

// SetLanguage stores the visitor's language choice and returns to the page they were on.
// POST /lang.
func (h *UIHandlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	code := formValue(r, "lang")
	if h.Catalog == nil || !h.Catalog.Supported(code) {
		http.Error(w, "unsupported language", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    code,
		Path:     "/",
		Domain:   h.Sessions.Domain(),
		MaxAge:   int(langCookieMaxAge.Seconds()),
		Expires:  time.Now().Add(langCookieMaxAge),
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})

	target := safeRedirectPath(formValue(r, "next"))
	if target == "" {
		target = sameOriginReferer(r)
	}
	if target == "" {
		target = "/"
	}
	if IsHTMX(r) {
		// The whole document changes language and direction.
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// sameOriginReferer returns the Referer path when it points back at this host.
func sameOriginReferer(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return ""
	}
	if u := safeRedirectFromURL(ref); u != "" {
		if abs, err := r.URL.Parse(ref); err == nil && abs.IsAbs() && abs.Host != r.Host {
			return ""
		}
		return u
	}
	return ""
}

// NotFound handles unknown routes and missing backend resources. Browsers get the
// not-found page, everything else a JSON 404.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: string(apperrors.ErrCodeNotFound),
			Err:     apperrors.NotFound("Not found."),
		})
		return
	}
	h.render(w, r, http.StatusNotFound, h.page(r, PageMeta{
		Title: "page.not_found", PageTitle: "page.not_found", CurrentPage: PageNotFound,
	}).With("HomePath", homeFor(r)).Build())
}

// Forbidden renders the access-denied page with a link back to the caller's own area.
// Gates call it before any page handler runs, so no protected content is ever fetched.
func (h *UIHandlers) Forbidden(w http.ResponseWriter, r *http.Request) {
	status := http.StatusForbidden
	if IsHTMX(r) {
		status = http.StatusOK
		SetHXRetarget(w, "#main-content")
		SetHXReswap(w, "innerHTML")
	}
	h.render(w, r, status, h.page(r, PageMeta{
		Title: "page.forbidden", PageTitle: "page.forbidden", CurrentPage: PageForbidden,
	}).With("HomePath", homeFor(r)).Build())
}

// homeFor is the caller's own landing page, or the sign-in page when anonymous.
func homeFor(r *http.Request) string {
	if id := GetIdentityFromContext(r.Context()); id != nil && id.Role.Valid() {
		return id.Role.HomePath()
	}
	return "/"
}
