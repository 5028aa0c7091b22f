package httpx

import (
	"net/http"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var (
	metaProfile   = PageMeta{Title: "page.profile", PageTitle: "page.profile", CurrentPage: PageProfile}
	metaReferrals = PageMeta{Title: "page.referrals", PageTitle: "page.referrals", CurrentPage: PageReferrals}
	metaPlans     = PageMeta{Title: "page.plans", PageTitle: "page.plans", CurrentPage: PagePlans}
)

// ProfilePage shows the account and both profile forms. For the Owner it is also the
// landing page, so the platform overview is loaded alongside.
// GET {section}/profile.
func (h *UIHandlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, http.StatusOK, nil)
}

func (h *UIHandlers) renderProfile(w http.ResponseWriter, r *http.Request, status int, decorate func(*TemplateDataBuilder)) {
	token := TokenFromContext(r.Context())
	profile, err := h.Account.Profile(r.Context(), token)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	b := h.page(r, metaProfile).With("Profile", profile)
	if identity(r).Role == domainauth.RoleOwner && h.Owner != nil {
		ov := h.Owner.Overview(r.Context(), token)
		if apperrors.IsUnauthorized(ov.StatsErr) || apperrors.IsUnauthorized(ov.PendingErr) {
			h.expireSession(w, r)
			return
		}
		b.With("Overview", ownerOverviewView(r, ov))
	}
	if decorate != nil {
		decorate(b)
	}
	h.render(w, r, status, b.Build())
}

// UpdateProfile saves a new username.
// POST {section}/profile.
func (h *UIHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username := formValue(r, "username")
	if err := h.Account.UpdateProfile(r.Context(), TokenFromContext(r.Context()), username); err != nil {
		if apperrors.IsUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		h.profileFormError(w, r, err, "ProfileForm", map[string]string{"username": username})
		return
	}
	finish(w, r, identitySection(r)+"/profile", "profile.toast.updated")
}

// ChangePassword updates the password. The confirmation must match before any call.
// POST {section}/profile/password.
func (h *UIHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	in := service.ChangePasswordInput{
		CurrentPassword: r.PostFormValue("currentPassword"),
		NewPassword:     r.PostFormValue("newPassword"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}
	if err := h.Account.ChangePassword(r.Context(), TokenFromContext(r.Context()), in); err != nil {
		if apperrors.IsUnauthorized(err) && apperrors.GetField(err) == "" {
			h.expireSession(w, r)
			return
		}
		h.profileFormError(w, r, err, "PasswordForm", nil)
		return
	}
	finish(w, r, identitySection(r)+"/profile", "profile.toast.password_changed")
}

// profileFormError re-renders the profile page with errors scoped to one of its forms.
func (h *UIHandlers) profileFormError(w http.ResponseWriter, r *http.Request, err error, form string, values map[string]string) {
	fieldErrors := map[string]string{}
	general := processError(err, &fieldErrors)
	if IsHTMX(r) && general != "" {
		triggerToast(w, r, general, "error")
	}
	h.renderProfile(w, r, formStatus(r), func(b *TemplateDataBuilder) {
		tr := TranslatorFromContext(r.Context())
		scoped := map[string]any{"Values": values}
		if len(fieldErrors) > 0 {
			translated := make(map[string]string, len(fieldErrors))
			for k, v := range fieldErrors {
				translated[k] = tr.T(v)
			}
			scoped["Errors"] = translated
		}
		if general != "" {
			scoped["Error"] = tr.T(general)
		}
		b.With(form, scoped)
	})
}

// ReferralsPage shows the referral code, share link and referred users.
// GET {section}/referrals.
func (h *UIHandlers) ReferralsPage(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Account.Referrals(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	code := summary.Code
	if code == "" {
		code = identity(r).ReferralCode
	}
	h.render(w, r, http.StatusOK, h.page(r, metaReferrals).
		With("Referrals", summary).
		With("ReferralLink", model.ReferralLink(h.BaseURL, code)).
		Build())
}

// PlansPage lists purchasable plans. ?required=1 explains a PlanGate redirect.
// GET {section}/plans.
func (h *UIHandlers) PlansPage(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Account.Plans(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	id := identity(r)
	h.render(w, r, http.StatusOK, h.page(r, metaPlans).
		With("Plans", plans).
		With("PlanRequired", r.URL.Query().Get("required") == "1").
		With("DownloadActive", id.DownloadPlanActive).
		With("WatchActive", id.WatchPlanActive).
		Build())
}
