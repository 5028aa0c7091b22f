package httpx

import apperrors "github.com/megabox/megabox-web/internal/errors"

// CurrentPage identifiers used by handlers, navigation and the template map.
const (
	// Public and auth flow.
	PageLogin          = "login"
	PageSignup         = "signup"
	PageConfirm        = "confirm"
	PageForgotPassword = "forgot-password"
	PageResetPassword  = "reset-password"
	PageOAuthFragment  = "oauth-fragment"
	PageAbout          = "about"
	PageTerms          = "terms"
	PagePrivacy        = "privacy"
	PagePublicFile     = "public-file"
	PageNotFound       = "not-found"
	PageForbidden      = "forbidden"

	// Shared signed-in pages.
	PageFiles         = "files"
	PageReferrals     = "referrals"
	PageProfile       = "profile"
	PageNotifications = "notifications"
	PagePlans         = "plans"

	// Promoter.
	PagePromoterDashboard = "promoter-dashboard"
	PageEarnings          = "earnings"
	PageAnalytics         = "analytics"
	PageWithdraw          = "withdraw"

	// Owner.
	PageOwnerUsers       = "owner-users"
	PageOwnerWithdrawals = "owner-withdrawals"
	PageOwnerAnalytics   = "owner-analytics"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
	StaticPathFromTest   = "../../frontend/static"
)

var errRateLimited = &apperrors.AppError{
	Code:    apperrors.ErrCodeUnavailable,
	Message: "Too many attempts. Please wait a minute and try again.",
}

//nolint:gochecknoglobals // static read-only lookup
var contentTemplates = map[string]string{
	PageLogin:             "login-content",
	PageSignup:            "signup-content",
	PageConfirm:           "confirm-content",
	PageForgotPassword:    "forgot-password-content",
	PageResetPassword:     "reset-password-content",
	PageOAuthFragment:     "oauth-fragment-content",
	PageAbout:             "about-content",
	PageTerms:             "terms-content",
	PagePrivacy:           "privacy-content",
	PagePublicFile:        "public-file-content",
	PageNotFound:          "not-found-content",
	PageForbidden:         "forbidden-content",
	PageFiles:             "files-content",
	PageReferrals:         "referrals-content",
	PageProfile:           "profile-content",
	PageNotifications:     "notifications-content",
	PagePlans:             "plans-content",
	PagePromoterDashboard: "promoter-dashboard-content",
	PageEarnings:          "earnings-content",
	PageAnalytics:         "analytics-content",
	PageWithdraw:          "withdraw-content",
	PageOwnerUsers:        "owner-users-content",
	PageOwnerWithdrawals:  "owner-withdrawals-content",
	PageOwnerAnalytics:    "owner-analytics-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for currentPage, or the not-found
// content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "not-found-content"
}
