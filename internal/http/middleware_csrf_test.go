package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfTestHandler(cfg CSRFConfig) http.Handler {
	return CSRFProtection(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))
}

func issuedCSRFToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	res := rec.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	for _, c := range res.Cookies() {
		if c.Name == DefaultCSRFCookieName {
			assert.False(t, c.HttpOnly, "htmx must be able to read the token")
			assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
			require.NotEmpty(t, c.Value)
			return c.Value
		}
	}
	t.Fatal("csrf cookie not set")
	return ""
}

func TestCSRFProtection_GetIssuesTokenInContext(t *testing.T) {
	h := csrfTestHandler(CSRFConfig{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestCSRFProtection_ExistingCookieIsReused(t *testing.T) {
	h := csrfTestHandler(CSRFConfig{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "abc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestCSRFProtection_Validation(t *testing.T) {
	h := csrfTestHandler(CSRFConfig{Exempt: []string{"/oauth/callback"}})
	token := issuedCSRFToken(t, h)

	form := url.Values{DefaultCSRFCookieName: {token}}.Encode()

	tests := []struct {
		name   string
		path   string
		header string
		ctype  string
		body   string
		want   int
	}{
		{name: "missing token", path: "/login", want: http.StatusForbidden},
		{name: "header token", path: "/login", header: token, want: http.StatusOK},
		{name: "wrong header token", path: "/login", header: "nope", want: http.StatusForbidden},
		{name: "form token", path: "/login", ctype: "application/x-www-form-urlencoded", body: form, want: http.StatusOK},
		{name: "multipart needs header", path: "/dashboard/files", ctype: "multipart/form-data; boundary=x", body: form, want: http.StatusForbidden},
		{name: "exempt path", path: "/oauth/callback", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			if tt.header != "" {
				req.Header.Set(DefaultCSRFHeaderName, tt.header)
			}
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCSRFProtection_HTMXRejectionShowsToast(t *testing.T) {
	h := csrfTestHandler(CSRFConfig{})
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Hx-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "showToast")
}

func TestIsForwardedHTTPS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, isForwardedHTTPS(req))
	req.Header.Set("X-Forwarded-Proto", "http, HTTPS")
	assert.True(t, isForwardedHTTPS(req))
}
