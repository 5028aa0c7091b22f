package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	megabox "github.com/megabox/megabox-web"
	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/route"
	httpassets "github.com/megabox/megabox-web/internal/http/assets"
	"github.com/megabox/megabox-web/internal/i18n"
)

// CompressionConfig controls response compression.
type CompressionConfig struct {
	Enabled bool
	Level   int
}

// RouterServices holds the dependencies for NewRouter.
type RouterServices struct {
	Auth          AuthUIService
	Files         FilesUIService
	Earnings      EarningsUIService
	Notifications NotificationsUIService
	Account       AccountUIService
	Owner         OwnerUIService

	Sessions *CookieSessionStore
	Catalog  *i18n.Catalog
	OAuth    OAuthOptions
	CSRF     CSRFConfig
	// RateLimiter throttles the credential-bearing POSTs. Optional.
	RateLimiter *RateLimiter
	Compression CompressionConfig
	// Health lists readiness checks reported by /healthz.
	Health map[string]HealthCheck

	BaseURL string
	IsDev   bool
	Logger  *slog.Logger

	// Renderer overrides the template renderer built from the embedded or on-disk templates.
	Renderer *TemplateRenderer
}

// routeNode is one entry of the declarative route tree. A node's permission guards its
// own handlers and every descendant; descendants add to it.
type routeNode struct {
	Path string
	Perm route.Permission
	// Index redirects the node's own path when it has no page of its own.
	Index    string
	Get      http.HandlerFunc
	Post     http.HandlerFunc
	Use      []func(http.Handler) http.Handler
	Children []routeNode
}

// RouteInfo describes one registered endpoint and the permission that guards it.
type RouteInfo struct {
	Method     string
	Pattern    string
	Permission route.Permission
}

// NewRouter builds the site: global middleware, the guarded route tree, static assets
// and health.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h, err := setupUIHandlers(services, logger)
	if err != nil {
		return nil, err
	}
	gates := &Gates{
		Sessions:    services.Sessions,
		Identity:    services.Auth,
		OnForbidden: h.Forbidden,
		Logger:      logger,
	}

	csrf := services.CSRF
	csrf.CookieDomain = services.Sessions.Domain()
	csrf.Exempt = append(csrf.Exempt, "/oauth/callback")

	r := chi.NewRouter()
	r.Use(Recover(logger))
	r.Use(RequestID())
	r.Use(Logging(logger))
	if services.Compression.Enabled {
		r.Use(middleware.Compress(services.Compression.Level,
			"text/html", "text/css", "application/javascript", "application/json", "image/svg+xml"))
	}
	r.Use(Language(services.Catalog))
	r.Use(CSRFProtection(csrf))
	r.Use(LoadSession(services.Sessions))

	r.Method(http.MethodGet, "/healthz", &HealthHandler{Checks: services.Health})
	r.Method(http.MethodHead, "/healthz", &HealthHandler{Checks: services.Health})
	r.Handle("/static/*", staticWithFallback(services.IsDev))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, ErrorParams{Code: http.StatusMethodNotAllowed, ErrCode: "method_not_allowed"})
	})

	mountRoute(r, gates, routeTree(h, services.RateLimiter), route.Public)
	return r, nil
}

// Routes flattens the route tree into its endpoints, sorted by pattern.
func Routes() []RouteInfo {
	var out []RouteInfo
	collectRoutes(routeTree(&UIHandlers{}, nil), "", route.Public, &out)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pattern == out[j].Pattern {
			return out[i].Method < out[j].Method
		}
		return out[i].Pattern < out[j].Pattern
	})
	return out
}

func collectRoutes(n routeNode, prefix string, parent route.Permission, out *[]RouteInfo) {
	full := joinRoutePath(prefix, n.Path)
	perm := parent.Merge(n.Perm)
	if n.Index != "" || n.Get != nil {
		*out = append(*out, RouteInfo{Method: http.MethodGet, Pattern: full, Permission: perm})
	}
	if n.Post != nil {
		*out = append(*out, RouteInfo{Method: http.MethodPost, Pattern: full, Permission: perm})
	}
	for _, c := range n.Children {
		collectRoutes(c, full, perm, out)
	}
}

func joinRoutePath(prefix, p string) string {
	if p == "" || p == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return path.Join("/", prefix, p)
}

// mountRoute registers n on r. Nodes with children become sub-routers guarded by the
// node's permission; leaves are registered with the guard inline.
func mountRoute(r chi.Router, g *Gates, n routeNode, parent route.Permission) {
	guards := n.Use
	if n.Perm != route.Public {
		guards = append([]func(http.Handler) http.Handler{g.Guard(n.Perm)}, guards...)
	}
	perm := parent.Merge(n.Perm)

	if len(n.Children) == 0 {
		registerHandlers(r.With(guards...), n.Path, n)
		return
	}

	if n.Path == "" || n.Path == "/" {
		mountChildren(r, g, n, perm)
		return
	}
	r.Route(n.Path, func(sub chi.Router) {
		sub.Use(guards...)
		mountChildren(sub, g, n, perm)
	})
}

func mountChildren(r chi.Router, g *Gates, n routeNode, perm route.Permission) {
	registerHandlers(r, "/", n)
	for _, c := range n.Children {
		mountRoute(r, g, c, perm)
	}
}

func registerHandlers(r chi.Router, pattern string, n routeNode) {
	if pattern == "" {
		pattern = "/"
	}
	switch {
	case n.Get != nil:
		r.Get(pattern, n.Get)
	case n.Index != "":
		target := n.Index
		r.Get(pattern, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, target, http.StatusFound)
		})
	}
	if n.Post != nil {
		r.Post(pattern, n.Post)
	}
}

// routeTree is the whole site. Only handler method values are taken from h, so an empty
// UIHandlers is enough to inspect the tree.
func routeTree(h *UIHandlers, limiter *RateLimiter) routeNode {
	var throttle []func(http.Handler) http.Handler
	if limiter != nil {
		throttle = append(throttle, postOnly(limiter.Middleware))
	}
	plan := route.Permission{}.WithPlan()

	return routeNode{
		Path: "/",
		Children: []routeNode{
			{Path: "/", Get: h.LoginPage, Post: h.Login, Use: throttle},
			{Path: "/about", Get: h.About},
			{Path: "/terms", Get: h.Terms},
			{Path: "/privacy", Get: h.Privacy},
			{Path: "/f/{id}", Get: h.PublicFile},
			{Path: "/signup", Get: h.SignupPage, Post: h.Signup, Use: throttle},
			{Path: "/ref/{code}", Get: h.ReferralLanding},
			{Path: "/confirm", Get: h.ConfirmPage, Post: h.Confirm, Use: throttle},
			{Path: "/forgot-password", Get: h.ForgotPasswordPage, Post: h.ForgotPassword, Use: throttle},
			{Path: "/reset-password", Get: h.ResetPasswordPage, Post: h.ResetPassword, Use: throttle},
			{Path: "/oauth/start", Get: h.OAuthStart},
			{Path: "/oauth/callback", Get: h.OAuthCallback, Post: h.OAuthCallback, Use: throttle},
			{Path: "/oauth/fragment", Get: h.OAuthFragment},
			{Path: "/logout", Post: h.Logout},
			{Path: "/lang", Post: h.SetLanguage},
			{Path: "/auth/status", Get: h.AuthStatus},
			{
				Path:     "/dashboard",
				Perm:     route.Requires(domainauth.RoleUser),
				Index:    "/dashboard/files",
				Children: sharedPages(h),
			},
			{
				Path:  "/Promoter",
				Perm:  route.Requires(domainauth.RolePromoter),
				Index: "/Promoter/dashboard",
				Children: append([]routeNode{
					{Path: "/dashboard", Perm: plan, Get: h.PromoterDashboard},
					{Path: "/earnings", Perm: plan, Get: h.EarningsPage},
					{Path: "/analytics", Perm: plan, Get: h.AnalyticsPage},
					{Path: "/withdraw", Perm: plan, Get: h.WithdrawPage, Post: h.SubmitWithdrawal},
				}, sharedPages(h)...),
			},
			{
				Path:  "/Owner",
				Perm:  route.Requires(domainauth.RoleOwner),
				Index: "/Owner/profile",
				Children: []routeNode{
					profilePages(h),
					{Path: "/users", Get: h.OwnerUsers},
					{
						Path: "/withdrawals",
						Get:  h.OwnerWithdrawals,
						Children: []routeNode{
							{Path: "/{id}/approve", Post: h.ApproveWithdrawal},
							{Path: "/{id}/reject", Post: h.RejectWithdrawal},
						},
					},
					{Path: "/analytics", Get: h.OwnerAnalytics},
					notificationPages(h),
				},
			},
		},
	}
}

// sharedPages are mounted under both the User and Promoter areas.
func sharedPages(h *UIHandlers) []routeNode {
	return []routeNode{
		{
			Path: "/files",
			Get:  h.FilesPage,
			Children: []routeNode{
				{Path: "/upload", Post: h.UploadFile},
				{Path: "/{id}/delete", Post: h.DeleteFile},
			},
		},
		{Path: "/referrals", Get: h.ReferralsPage},
		profilePages(h),
		notificationPages(h),
		{Path: "/plans", Get: h.PlansPage},
	}
}

func profilePages(h *UIHandlers) routeNode {
	return routeNode{
		Path: "/profile",
		Get:  h.ProfilePage,
		Post: h.UpdateProfile,
		Children: []routeNode{
			{Path: "/password", Post: h.ChangePassword},
		},
	}
}

func notificationPages(h *UIHandlers) routeNode {
	return routeNode{
		Path: "/notifications",
		Get:  h.NotificationsPage,
		Children: []routeNode{
			{Path: "/feed", Get: h.NotificationsFeed},
			{Path: "/read", Post: h.MarkAllNotificationsRead},
			{Path: "/{id}/read", Post: h.MarkNotificationRead},
		},
	}
}

// postOnly applies mw to POST requests and passes everything else straight through.
func postOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// setupDevMode reads templates, critical CSS and the manifest from disk on every start.
func setupDevMode(diskManifestPath string, logger *slog.Logger) (fs.FS, fs.FS, *AssetResolver) {
	templateFS := os.DirFS(TemplatePathFromRoot)
	criticalCSSFS := os.DirFS(StaticPathFromRoot)
	return templateFS, criticalCSSFS, tryDiskManifest(diskManifestPath, logger)
}

// setupProdMode serves everything from the embedded filesystems.
func setupProdMode(diskManifestPath string, logger *slog.Logger) (fs.FS, fs.FS, *AssetResolver) {
	templateFS, err := fs.Sub(megabox.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("embedded templates unavailable; falling back to disk", "error", err)
		templateFS = os.DirFS(TemplatePathFromRoot)
	}

	staticSub, err := fs.Sub(megabox.StaticFS, StaticPathFromRoot)
	if err != nil {
		logger.Warn("embedded static assets unavailable", "error", err)
		return templateFS, nil, tryDiskManifest(diskManifestPath, logger)
	}
	resolver, err := httpassets.NewAssetResolverFromFS(staticSub, "manifest.json")
	if err != nil {
		logger.Warn("failed to load embedded asset manifest", "error", err)
		return templateFS, staticSub, tryDiskManifest(diskManifestPath, logger)
	}
	return templateFS, staticSub, resolver
}

func tryDiskManifest(diskManifestPath string, logger *slog.Logger) *AssetResolver {
	resolver, err := httpassets.NewAssetResolverFromDisk(diskManifestPath)
	if err != nil {
		logger.Warn("failed to load asset manifest; using logical asset names",
			"path", diskManifestPath, "error", err)
	}
	return resolver
}

// setupUIHandlers creates the page handlers. Dev mode loads templates from disk; production
// uses the embedded copies.
func setupUIHandlers(services RouterServices, logger *slog.Logger) (*UIHandlers, error) {
	tr := services.Renderer
	if tr == nil {
		diskManifestPath := filepath.Join(StaticPathFromRoot, "manifest.json")

		var templateFS, criticalCSSFS fs.FS
		var resolver *AssetResolver
		if services.IsDev {
			templateFS, criticalCSSFS, resolver = setupDevMode(diskManifestPath, logger)
		} else {
			templateFS, criticalCSSFS, resolver = setupProdMode(diskManifestPath, logger)
		}
		if resolver == nil {
			resolver = &AssetResolver{}
		}

		var err error
		tr, err = NewTemplateRenderer(TemplateRendererConfig{
			TemplateFS:    templateFS,
			Resolver:      resolver,
			CriticalCSSFS: criticalCSSFS,
			DevMode:       services.IsDev,
			Logger:        logger,
		})
		if err != nil {
			return nil, err
		}
	}

	return &UIHandlers{
		T:             tr,
		Auth:          services.Auth,
		Files:         services.Files,
		Earnings:      services.Earnings,
		Notifications: services.Notifications,
		Account:       services.Account,
		Owner:         services.Owner,
		Sessions:      services.Sessions,
		Catalog:       services.Catalog,
		OAuth:         services.OAuth,
		BaseURL:       strings.TrimRight(services.BaseURL, "/"),
		IsDev:         services.IsDev,
		Logger:        logger,
	}, nil
}

// staticWithFallback serves /static/*: from disk in dev mode, from the embedded FS otherwise.
func staticWithFallback(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))))
	}
	staticSub, err := fs.Sub(megabox.StaticFS, StaticPathFromRoot)
	if err != nil {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(StaticPathFromRoot))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// hashedFilePattern matches content-hashed names such as app.abc12345.js and its .map.
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// staticWithCacheHeaders marks hashed assets immutable and everything else uncacheable.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}
