package httpx

import (
	"net/http"
	"strings"
	"time"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
)

const (
	// DefaultSessionCookieName is the single cookie that carries the bearer token.
	DefaultSessionCookieName = "MegaBox"
	// DefaultSessionTTL is how long the browser keeps the token.
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// SessionStoreOptions configures CookieSessionStore.
type SessionStoreOptions struct {
	CookieName string
	Domain     string
	TTL        time.Duration
}

// CookieSessionStore keeps the opaque backend token in one HttpOnly cookie.
// None of its operations fail: an absent or unreadable cookie is the anonymous session.
type CookieSessionStore struct {
	name   string
	domain string
	ttl    time.Duration
}

// NewCookieSessionStore applies defaults to opts.
func NewCookieSessionStore(opts SessionStoreOptions) *CookieSessionStore {
	name := strings.TrimSpace(opts.CookieName)
	if name == "" {
		name = DefaultSessionCookieName
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &CookieSessionStore{name: name, domain: opts.Domain, ttl: ttl}
}

// Name returns the cookie name.
func (s *CookieSessionStore) Name() string { return s.name }

// Domain returns the cookie domain; empty means host-only. Safe on a nil store.
func (s *CookieSessionStore) Domain() string {
	if s == nil {
		return ""
	}
	return s.domain
}

// TTL returns the cookie lifetime.
func (s *CookieSessionStore) TTL() time.Duration { return s.ttl }

// Get returns the session held by the request, if any.
func (s *CookieSessionStore) Get(r *http.Request) (domainauth.Session, bool) {
	c, err := r.Cookie(s.name)
	if err != nil {
		return domainauth.Session{}, false
	}
	token := strings.TrimSpace(c.Value)
	if token == "" {
		return domainauth.Session{}, false
	}
	return domainauth.Session{Token: token}, true
}

// Set stores token for ttl, or for the store default when ttl is not positive.
func (s *CookieSessionStore) Set(w http.ResponseWriter, r *http.Request, token string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		Domain:   s.domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl).UTC(),
	})
}

// Clear expires the cookie using the same attributes it was written with.
func (s *CookieSessionStore) Clear(w http.ResponseWriter, r *http.Request) {
	clearCookie(w, r, cookieOpts{Name: s.name, Domain: s.domain})
}

// cookieOpts names a cookie to expire.
type cookieOpts struct {
	Name   string
	Domain string
}

// clearCookie mirrors Secure, Path, Domain and SameSite of the original cookie so
// every browser accepts the deletion.
func clearCookie(w http.ResponseWriter, r *http.Request, o cookieOpts) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.Name,
		Value:    "",
		Path:     "/",
		Domain:   o.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || isForwardedHTTPS(r)
}
