package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/route"
	apperrors "github.com/megabox/megabox-web/internal/errors"
)

// IdentityResolver fetches the backend identity behind a token.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (domainauth.Identity, error)
	ForgetIdentity(ctx context.Context, token string)
}

// Gates enforces route permissions before a page handler runs.
type Gates struct {
	Sessions *CookieSessionStore
	Identity IdentityResolver
	// OnForbidden renders the access-denied page. A plain 403 is written when nil.
	OnForbidden func(w http.ResponseWriter, r *http.Request)
	Logger      *slog.Logger
}

// LoginGate requires a session.
func (g *Gates) LoginGate() func(http.Handler) http.Handler {
	return g.Guard(route.Requires(domainauth.RoleNone))
}

// RoleGate requires a session whose backend identity has role.
func (g *Gates) RoleGate(role domainauth.Role) func(http.Handler) http.Handler {
	return g.Guard(route.Requires(role))
}

// PlanGate requires a session whose identity has an active plan.
func (g *Gates) PlanGate() func(http.Handler) http.Handler {
	return g.Guard(route.Permission{}.WithPlan())
}

// Guard evaluates p for every request and only calls next on Allow.
func (g *Gates) Guard(p route.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, r, err := g.subject(w, r, p.NeedsIdentity())
			if err != nil {
				g.logger().ErrorContext(r.Context(), "resolve identity failed",
					"error", err, "path", r.URL.Path)
				writeGateUnavailable(w, r, err)
				return
			}

			switch route.Evaluate(subject, p) {
			case route.Allow:
				next.ServeHTTP(w, r)
			case route.RedirectLogin:
				redirectToLogin(w, r)
			case route.Forbidden:
				g.forbid(w, r)
			case route.PlanRequired:
				redirectToPlans(w, r, subject.Identity)
			}
		})
	}
}

// subject builds what the gate knows about the caller. The identity is fetched at most
// once per request and cached in the returned request's context. A backend 401 drops the
// session so the caller is treated as anonymous.
func (g *Gates) subject(w http.ResponseWriter, r *http.Request, needIdentity bool) (route.Subject, *http.Request, error) {
	session, ok := GetSessionFromContext(r.Context())
	if !ok && g.Sessions != nil {
		if session, ok = g.Sessions.Get(r); ok {
			r = r.WithContext(SetSessionInContext(r.Context(), session))
		}
	}
	if !ok {
		return route.Subject{}, r, nil
	}

	if id := GetIdentityFromContext(r.Context()); id != nil || !needIdentity || g.Identity == nil {
		return route.Subject{Session: session, Identity: id}, r, nil
	}

	id, err := g.Identity.ResolveIdentity(r.Context(), session.Token)
	switch {
	case err == nil:
		r = r.WithContext(SetIdentityInContext(r.Context(), &id))
		return route.Subject{Session: session, Identity: &id}, r, nil
	case apperrors.IsUnauthorized(err):
		g.dropSession(w, r, session)
		return route.Subject{}, r, nil
	default:
		return route.Subject{}, r, err
	}
}

func (g *Gates) dropSession(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	g.Identity.ForgetIdentity(r.Context(), s.Token)
	if g.Sessions != nil {
		g.Sessions.Clear(w, r)
	}
	g.logger().InfoContext(r.Context(), "session rejected by backend", "path", r.URL.Path)
}

func (g *Gates) forbid(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: string(apperrors.ErrCodeForbidden),
			Err: apperrors.Forbidden("You do not have access to this page.")})
		return
	}
	if g.OnForbidden != nil {
		g.OnForbidden(w, r)
		return
	}
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

func (g *Gates) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// redirectToLogin sends the caller to the sign-in page. Browsers get a 303, htmx
// requests an HX-Redirect so the whole page navigates, API callers a 401.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: string(apperrors.ErrCodeUnauthorized),
			Err: apperrors.Unauthorized("Sign in to continue.")})
		return
	}
	navigate(w, r, "/")
}

func redirectToPlans(w http.ResponseWriter, r *http.Request, id *domainauth.Identity) {
	role := domainauth.RoleNone
	if id != nil {
		role = id.Role
	}
	target := role.PlansPath() + "?required=1"
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusPaymentRequired, ErrCode: string(apperrors.ErrCodePaymentRequired),
			Err: apperrors.Forbidden("An active plan is required.")})
		return
	}
	navigate(w, r, target)
}

// navigate performs a full-page redirect that also works for htmx swaps.
func navigate(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeGateUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	if IsBrowserRequest(r) && !IsHTMX(r) {
		http.Error(w, apperrors.UserMessage(err), http.StatusBadGateway)
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: string(apperrors.ErrCodeUnavailable),
		Err: apperrors.Wrap(err, apperrors.ErrCodeUnavailable, apperrors.UserMessage(err))})
}

// safeRedirectPath keeps redirects on this site: only absolute paths without a host.
func safeRedirectPath(p string) string {
	if p == "" || p[0] != '/' || (len(p) > 1 && (p[1] == '/' || p[1] == '\\')) {
		return ""
	}
	u, err := url.Parse(p)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return p
}

// safeRedirectFromURL reduces an absolute or relative URL to a local path.
func safeRedirectFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Host != "" && !u.IsAbs() {
		return ""
	}
	if u.IsAbs() {
		return safeRedirectPath(u.RequestURI())
	}
	return safeRedirectPath(raw)
}
