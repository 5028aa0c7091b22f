package httpx

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/model"
	"github.com/megabox/megabox-web/internal/http/ui/viewmodel"
	"github.com/megabox/megabox-web/internal/i18n"
	"github.com/megabox/megabox-web/internal/ports"
	"github.com/megabox/megabox-web/internal/service"
)

// AuthUIService is the authentication surface used by the auth pages.
type AuthUIService interface {
	IdentityResolver
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
	Signup(ctx context.Context, in service.SignupInput) error
	SignupWithReferral(ctx context.Context, in service.SignupInput, refCode string) error
	ConfirmOneTimeCode(ctx context.Context, code, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in service.ResetPasswordInput) error
	Logout(ctx context.Context, token string)
	OAuthEnabled() bool
	BeginOAuth(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteOAuth(ctx context.Context, in service.CompleteOAuthInput) (service.LoginResult, error)
	AcceptToken(ctx context.Context, token string) (service.LoginResult, error)
}

// FilesUIService is a minimal interface for the files pages.
type FilesUIService interface {
	MaxUploadBytes() int64
	List(ctx context.Context, token string, page int) (model.FileList, error)
	Upload(ctx context.Context, token string, in model.UploadInput) (model.File, error)
	Delete(ctx context.Context, token, id string) error
	Public(ctx context.Context, id string) (model.PublicFile, error)
}

// EarningsUIService is a minimal interface for the promoter pages.
type EarningsUIService interface {
	Earnings(ctx context.Context, token string) (model.Earnings, error)
	Analytics(ctx context.Context, token string, period model.AnalyticsPeriod) (model.Analytics, error)
	Overview(ctx context.Context, token string, period model.AnalyticsPeriod) service.Overview
	WithdrawPage(ctx context.Context, token string) service.WithdrawPage
	SubmitWithdrawal(ctx context.Context, token string, form model.WithdrawalForm, key string) (model.Withdrawal, map[string]string, error)
}

// NotificationsUIService is a minimal interface for the notifications pages.
type NotificationsUIService interface {
	List(ctx context.Context, token string) (model.Notifications, error)
	MarkRead(ctx context.Context, token, id string) error
	MarkAllRead(ctx context.Context, token string) error
}

// AccountUIService is a minimal interface for profile, referrals and plans.
type AccountUIService interface {
	Profile(ctx context.Context, token string) (model.Profile, error)
	UpdateProfile(ctx context.Context, token string, username string) error
	ChangePassword(ctx context.Context, token string, in service.ChangePasswordInput) error
	Referrals(ctx context.Context, token string) (model.ReferralSummary, error)
	Plans(ctx context.Context, token string) ([]model.Plan, error)
}

// OwnerUIService is a minimal interface for the owner pages.
type OwnerUIService interface {
	Users(ctx context.Context, token string) ([]model.AdminUser, error)
	Withdrawals(ctx context.Context, token string, status model.WithdrawalStatus) ([]model.Withdrawal, error)
	Decide(ctx context.Context, token, id string, approve bool, note string) error
	Overview(ctx context.Context, token string) service.OwnerOverview
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthUIService          = (*service.AuthService)(nil)
	_ FilesUIService         = (*service.FilesService)(nil)
	_ EarningsUIService      = (*service.EarningsService)(nil)
	_ NotificationsUIService = (*service.NotificationsService)(nil)
	_ AccountUIService       = (*service.AccountService)(nil)
	_ OwnerUIService         = (*service.OwnerService)(nil)
)

// OAuth modes.
const (
	OAuthModeBackend = "backend"
	OAuthModeOIDC    = "oidc"
	OAuthModeMock    = "mock"
)

// OAuthOptions configures the OAuth entry points.
type OAuthOptions struct {
	Mode string
	// StartURL is the backend-hosted provider entry used in backend mode.
	StartURL string
	// CallbackURL is this server's absolute /oauth/callback URL.
	CallbackURL string
	// Claims makes a backend-mode callback token single-use.
	Claims   ports.IdempotencyStore
	ClaimTTL time.Duration
}

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	Auth          AuthUIService
	Files         FilesUIService
	Earnings      EarningsUIService
	Notifications NotificationsUIService
	Account       AccountUIService
	Owner         OwnerUIService
	Sessions      *CookieSessionStore
	Catalog       *i18n.Catalog
	OAuth         OAuthOptions
	// BaseURL is the public origin used for referral and share links.
	BaseURL string
	IsDev   bool
	Logger  *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering. Title and PageTitle are catalog keys.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// sectionFor is the URL prefix of a role's signed-in area.
func sectionFor(role domainauth.Role) string {
	switch role {
	case domainauth.RoleUser:
		return "/dashboard"
	case domainauth.RolePromoter:
		return "/Promoter"
	case domainauth.RoleOwner:
		return "/Owner"
	default:
		return ""
	}
}

type navEntry struct {
	page, label, path, icon string
}

//nolint:gochecknoglobals // static read-only navigation tables
var navByRole = map[domainauth.Role][]navEntry{
	domainauth.RoleUser: {
		{PageFiles, "nav.files", "/files", "folder"},
		{PageReferrals, "nav.referrals", "/referrals", "users"},
		{PageNotifications, "nav.notifications", "/notifications", "bell"},
		{PagePlans, "nav.plans", "/plans", "star"},
		{PageProfile, "nav.profile", "/profile", "user"},
	},
	domainauth.RolePromoter: {
		{PagePromoterDashboard, "nav.dashboard", "/dashboard", "home"},
		{PageEarnings, "nav.earnings", "/earnings", "wallet"},
		{PageAnalytics, "nav.analytics", "/analytics", "chart"},
		{PageWithdraw, "nav.withdraw", "/withdraw", "send"},
		{PageFiles, "nav.files", "/files", "folder"},
		{PageReferrals, "nav.referrals", "/referrals", "users"},
		{PageNotifications, "nav.notifications", "/notifications", "bell"},
		{PagePlans, "nav.plans", "/plans", "star"},
		{PageProfile, "nav.profile", "/profile", "user"},
	},
	domainauth.RoleOwner: {
		{PageProfile, "nav.profile", "/profile", "user"},
		{PageOwnerUsers, "nav.users", "/users", "users"},
		{PageOwnerWithdrawals, "nav.withdrawals", "/withdrawals", "wallet"},
		{PageOwnerAnalytics, "nav.analytics", "/analytics", "chart"},
		{PageNotifications, "nav.notifications", "/notifications", "bell"},
	},
}

func buildNav(role domainauth.Role, current string, tr *i18n.Translator) []viewmodel.NavItem {
	entries := navByRole[role]
	prefix := sectionFor(role)
	items := make([]viewmodel.NavItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, viewmodel.NavItem{
			Page:   e.page,
			Label:  tr.T(e.label),
			Href:   prefix + e.path,
			Icon:   e.icon,
			Active: e.page == current,
		})
	}
	return items
}

// buildLayout constructs shared layout metadata from the request context.
func (h *UIHandlers) buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	tr := TranslatorFromContext(r.Context())
	layout := viewmodel.Layout{
		Title:       tr.T(meta.Title),
		PageTitle:   tr.T(meta.PageTitle),
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Lang:        tr.Lang(),
		Dir:         tr.Dir(),
	}
	if h != nil && h.Catalog != nil {
		for _, l := range h.Catalog.Locales() {
			layout.Locales = append(layout.Locales, viewmodel.LocaleOption{
				Code: l.Code, Name: l.Name, Current: l.Code == tr.Lang(),
			})
		}
	}

	if _, ok := GetSessionFromContext(r.Context()); ok {
		layout.IsAuthenticated = true
	}
	if id := GetIdentityFromContext(r.Context()); id != nil {
		layout.User = &viewmodel.User{
			Name:          id.DisplayName(),
			Email:         id.Email,
			Role:          string(id.Role),
			HasActivePlan: id.HasActivePlan(),
		}
		layout.Section = sectionFor(id.Role)
		layout.Nav = buildNav(id.Role, meta.CurrentPage, tr)
	}
	return layout
}

// basePageData constructs the common page data map.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	return (*UIHandlers)(nil).pageData(r, meta)
}

func (h *UIHandlers) pageData(r *http.Request, meta PageMeta) map[string]any {
	layout := h.buildLayout(r, meta)
	data := map[string]any{
		"Layout":          layout,
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"CSRFToken":       layout.CSRFToken,
		"Section":         layout.Section,
		"Tr":              TranslatorFromContext(r.Context()),
		"Form":            map[string]string{},
		"Errors":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// page starts a builder that includes locale and navigation chrome.
func (h *UIHandlers) page(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: h.pageData(r, meta), r: r}
}

// render writes a full page, or for htmx the content fragment plus out-of-band title
// updates. status 0 means 200.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if status == 0 {
		status = http.StatusOK
	}
	if !WantsPartial(r) {
		var buf bytes.Buffer
		if err := h.T.Execute(&buf, "layout", data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
			return
		}
		writeHTML(w, status, &buf)
		return
	}

	current, _ := data["CurrentPage"].(string)
	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)

	var buf bytes.Buffer
	buf.WriteString(`<title>` + html.EscapeString(title) + ` · MegaBox</title>`)
	buf.WriteString(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(pageTitle) + `</h1>`)
	if err := h.T.Execute(&buf, ContentTemplateFor(current), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}
	SetHXTrigger(w, "nav:activate", map[string]string{"page": current, "path": r.URL.Path})
	writeHTML(w, status, &buf)
}

// renderFragment executes a single named partial, used for polled and inline swaps.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	var buf bytes.Buffer
	if err := h.T.Execute(&buf, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment "+name)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// formStatus is the status for a re-rendered form with errors. htmx only swaps 2xx
// responses, so partial requests get 200.
func formStatus(r *http.Request) int {
	if IsHTMX(r) {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// logAndRenderTemplateError logs template errors and renders detail in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().ErrorContext(r.Context(), "template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="template-error"><h2>Template Rendering Error</h2><p><strong>Context:</strong> ` +
			html.EscapeString(context) + `</p><pre>` + html.EscapeString(err.Error()) + `</pre></div>`))
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// triggerToast sends a translated showToast event.
func triggerToast(w http.ResponseWriter, r *http.Request, key, kind string) {
	msg := strings.TrimSpace(TranslatorFromContext(r.Context()).T(key))
	if msg == "" {
		return
	}
	HTMX(w).Toast(msg, kind)
}

// finish completes a mutating form post: htmx gets a toast and a client redirect,
// plain forms a 303 (post/redirect/get).
func finish(w http.ResponseWriter, r *http.Request, target, toastKey string) {
	if IsHTMX(r) {
		if toastKey != "" {
			triggerToast(w, r, toastKey, "success")
		}
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// identity returns the identity resolved by the gates. Handlers mounted behind a role
// gate can rely on it being present.
func identity(r *http.Request) domainauth.Identity {
	if id := GetIdentityFromContext(r.Context()); id != nil {
		return *id
	}
	return domainauth.Identity{}
}
