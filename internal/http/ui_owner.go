package httpx

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/service"
)

//nolint:gochecknoglobals // static page metadata
var (
	metaOwnerUsers       = PageMeta{Title: "page.users", PageTitle: "page.users", CurrentPage: PageOwnerUsers}
	metaOwnerWithdrawals = PageMeta{Title: "page.withdrawals", PageTitle: "page.withdrawals", CurrentPage: PageOwnerWithdrawals}
	metaOwnerAnalytics   = PageMeta{Title: "page.platform_analytics", PageTitle: "page.platform_analytics", CurrentPage: PageOwnerAnalytics}
)

// ownerOverview is the owner landing panel. Each part shows its own error message.
type ownerOverview struct {
	Stats        model.PlatformStats
	StatsError   string
	Pending      []model.Withdrawal
	PendingError string
}

func ownerOverviewView(r *http.Request, ov service.OwnerOverview) ownerOverview {
	return ownerOverview{
		Stats:        ov.Stats,
		StatsError:   partError(r, ov.StatsErr),
		Pending:      ov.Pending,
		PendingError: partError(r, ov.PendingErr),
	}
}

// statusFilter is one tab of the withdrawal queue.
type statusFilter struct {
	Value  model.WithdrawalStatus
	Label  string
	Active bool
}

func withdrawalFilters(r *http.Request, current model.WithdrawalStatus) []statusFilter {
	tr := TranslatorFromContext(r.Context())
	statuses := []model.WithdrawalStatus{model.WithdrawalPending, model.WithdrawalApproved, model.WithdrawalRejected}
	out := make([]statusFilter, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, statusFilter{Value: s, Label: tr.T("status." + string(s)), Active: s == current})
	}
	return out
}

func parseWithdrawalStatus(s string) model.WithdrawalStatus {
	switch model.WithdrawalStatus(s) {
	case model.WithdrawalApproved, model.WithdrawalRejected:
		return model.WithdrawalStatus(s)
	default:
		return model.WithdrawalPending
	}
}

// OwnerUsers lists every platform account.
// GET /Owner/users.
func (h *UIHandlers) OwnerUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Owner.Users(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, h.page(r, metaOwnerUsers).With("Users", users).Build())
}

// OwnerWithdrawals is the payout queue filtered by ?status= (pending by default).
// GET /Owner/withdrawals.
func (h *UIHandlers) OwnerWithdrawals(w http.ResponseWriter, r *http.Request) {
	h.renderOwnerWithdrawals(w, r, http.StatusOK, nil)
}

func (h *UIHandlers) renderOwnerWithdrawals(w http.ResponseWriter, r *http.Request, status int, decideErr error) {
	filter := parseWithdrawalStatus(r.URL.Query().Get("status"))
	if r.Method == http.MethodPost {
		filter = parseWithdrawalStatus(formValue(r, "status"))
	}
	items, err := h.Owner.Withdrawals(r.Context(), TokenFromContext(r.Context()), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	b := h.page(r, metaOwnerWithdrawals).
		With("Withdrawals", items).
		With("Status", filter).
		With("Filters", withdrawalFilters(r, filter))
	if decideErr != nil {
		b.WithError(apperrors.UserMessage(decideErr))
	}
	h.render(w, r, status, b.Build())
}

// ApproveWithdrawal approves a pending payout.
// POST /Owner/withdrawals/{id}/approve.
func (h *UIHandlers) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.decideWithdrawal(w, r, true)
}

// RejectWithdrawal rejects a pending payout. A note is required.
// POST /Owner/withdrawals/{id}/reject.
func (h *UIHandlers) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.decideWithdrawal(w, r, false)
}

func (h *UIHandlers) decideWithdrawal(w http.ResponseWriter, r *http.Request, approve bool) {
	id := chi.URLParam(r, "id")
	note := formValue(r, "note")
	err := h.Owner.Decide(r.Context(), TokenFromContext(r.Context()), id, approve, note)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		if IsHTMX(r) {
			triggerToast(w, r, apperrors.UserMessage(err), "error")
			SetHXReswap(w, "none")
			w.WriteHeader(http.StatusOK)
			return
		}
		status := DetermineErrorStatus(err)
		if status == 0 {
			status = StatusFor(err)
		}
		h.renderOwnerWithdrawals(w, r, status, err)
		return
	}

	toast := "withdrawals.toast.rejected"
	if approve {
		toast = "withdrawals.toast.approved"
	}
	target := "/Owner/withdrawals"
	if s := formValue(r, "status"); s != "" {
		target += "?status=" + url.QueryEscape(string(parseWithdrawalStatus(s)))
	}
	finish(w, r, target, toast)
}

// OwnerAnalytics shows platform-wide totals.
// GET /Owner/analytics.
func (h *UIHandlers) OwnerAnalytics(w http.ResponseWriter, r *http.Request) {
	ov := h.Owner.Overview(r.Context(), TokenFromContext(r.Context()))
	if apperrors.IsUnauthorized(ov.StatsErr) || apperrors.IsUnauthorized(ov.PendingErr) {
		h.expireSession(w, r)
		return
	}
	if ov.StatsErr != nil && ov.PendingErr != nil {
		h.handleServiceError(w, r, ov.StatsErr)
		return
	}
	h.logPartErrors(r, map[string]error{"stats": ov.StatsErr, "pending": ov.PendingErr})
	h.render(w, r, http.StatusOK, h.page(r, metaOwnerAnalytics).
		With("Stats", ov.Stats).
		With("StatsError", partError(r, ov.StatsErr)).
		With("Pending", ov.Pending).
		With("PendingError", partError(r, ov.PendingErr)).
		Build())
}
