package httpx

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
)

//nolint:gochecknoglobals // static page metadata
var (
	metaPromoterDashboard = PageMeta{Title: "page.dashboard", PageTitle: "page.dashboard", CurrentPage: PagePromoterDashboard}
	metaEarnings          = PageMeta{Title: "page.earnings", PageTitle: "page.earnings", CurrentPage: PageEarnings}
	metaAnalytics         = PageMeta{Title: "page.analytics", PageTitle: "page.analytics", CurrentPage: PageAnalytics}
	metaWithdraw          = PageMeta{Title: "page.withdraw", PageTitle: "page.withdraw", CurrentPage: PageWithdraw}
)

// periodOption is one entry of the analytics period switcher.
type periodOption struct {
	Value  model.AnalyticsPeriod
	Label  string
	Active bool
}

func periodOptions(r *http.Request, current model.AnalyticsPeriod) []periodOption {
	tr := TranslatorFromContext(r.Context())
	periods := []model.AnalyticsPeriod{model.PeriodWeek, model.PeriodMonth, model.PeriodYear}
	out := make([]periodOption, 0, len(periods))
	for _, p := range periods {
		out = append(out, periodOption{Value: p, Label: tr.T("period." + string(p)), Active: p == current})
	}
	return out
}

// partError is the translated message for one independently loaded part of a page,
// or "" when it loaded.
func partError(r *http.Request, err error) string {
	if err == nil {
		return ""
	}
	return TranslatorFromContext(r.Context()).T(apperrors.UserMessage(err))
}

// PromoterDashboard shows balance and traffic side by side. Both load concurrently and
// fail independently.
// GET /Promoter/dashboard.
func (h *UIHandlers) PromoterDashboard(w http.ResponseWriter, r *http.Request) {
	period := model.ParseAnalyticsPeriod(r.URL.Query().Get("period"))
	ov := h.Earnings.Overview(r.Context(), TokenFromContext(r.Context()), period)
	if apperrors.IsUnauthorized(ov.EarningsErr) || apperrors.IsUnauthorized(ov.AnalyticsErr) {
		h.expireSession(w, r)
		return
	}
	h.logPartErrors(r, map[string]error{"earnings": ov.EarningsErr, "analytics": ov.AnalyticsErr})

	h.render(w, r, http.StatusOK, h.page(r, metaPromoterDashboard).
		With("Earnings", ov.Earnings).
		With("EarningsError", partError(r, ov.EarningsErr)).
		With("Analytics", ov.Analytics).
		With("AnalyticsError", partError(r, ov.AnalyticsErr)).
		With("Periods", periodOptions(r, period)).
		Build())
}

// EarningsPage shows balances and the credited entries.
// GET /Promoter/earnings.
func (h *UIHandlers) EarningsPage(w http.ResponseWriter, r *http.Request) {
	e, err := h.Earnings.Earnings(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, h.page(r, metaEarnings).With("Earnings", e).Build())
}

// AnalyticsPage shows traffic and revenue for ?period= (7d, 30d or 365d).
// GET /Promoter/analytics.
func (h *UIHandlers) AnalyticsPage(w http.ResponseWriter, r *http.Request) {
	period := model.ParseAnalyticsPeriod(r.URL.Query().Get("period"))
	a, err := h.Earnings.Analytics(r.Context(), TokenFromContext(r.Context()), period)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, h.page(r, metaAnalytics).
		With("Analytics", a).
		With("Periods", periodOptions(r, period)).
		Build())
}

// WithdrawPage renders the payout form with a fresh idempotency key and the history.
// GET /Promoter/withdraw.
func (h *UIHandlers) WithdrawPage(w http.ResponseWriter, r *http.Request) {
	h.renderWithdraw(w, r, http.StatusOK, withdrawFormState{Key: uuid.NewString()})
}

type withdrawFormState struct {
	Key         string
	Values      map[string]string
	FieldErrors map[string]string
	Err         error
}

func (h *UIHandlers) renderWithdraw(w http.ResponseWriter, r *http.Request, status int, st withdrawFormState) {
	p := h.Earnings.WithdrawPage(r.Context(), TokenFromContext(r.Context()))
	if apperrors.IsUnauthorized(p.EarningsErr) || apperrors.IsUnauthorized(p.WithdrawalsErr) {
		h.expireSession(w, r)
		return
	}
	h.logPartErrors(r, map[string]error{"earnings": p.EarningsErr, "withdrawals": p.WithdrawalsErr})

	fieldErrors := st.FieldErrors
	general := processError(st.Err, &fieldErrors)

	b := h.page(r, metaWithdraw).
		With("Earnings", p.Earnings).
		With("EarningsError", partError(r, p.EarningsErr)).
		With("Withdrawals", p.Withdrawals).
		With("WithdrawalsError", partError(r, p.WithdrawalsErr)).
		With("PaymentMethods", model.PaymentMethods()).
		With("IdempotencyKey", st.Key).
		WithForm(st.Values).
		WithFieldErrors(fieldErrors)
	switch {
	case general != "":
		b.WithError(general)
	case len(fieldErrors) > 0:
		b.WithError(errMsgFixBelow)
	}
	h.render(w, r, status, b.Build())
}

// SubmitWithdrawal validates the form against the displayed balance and submits it once.
// POST /Promoter/withdraw.
func (h *UIHandlers) SubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	form := model.WithdrawalForm{
		Amount:        formValue(r, "amount"),
		PaymentMethod: formValue(r, "paymentMethod"),
		ContactNumber: formValue(r, "contactNumber"),
		PayeeDetails:  map[string]string{},
	}
	values := map[string]string{
		"amount":        form.Amount,
		"paymentMethod": form.PaymentMethod,
		"contactNumber": form.ContactNumber,
	}
	for _, m := range model.PaymentMethods() {
		for _, field := range m.PayeeFields() {
			if v := formValue(r, field); v != "" {
				form.PayeeDetails[field] = v
				values[field] = v
			}
		}
	}
	key := formValue(r, "idempotencyKey")

	wd, fieldErrs, err := h.Earnings.SubmitWithdrawal(r.Context(), TokenFromContext(r.Context()), form, key)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		if IsHTMX(r) && !apperrors.IsValidation(err) {
			triggerToast(w, r, apperrors.UserMessage(err), "error")
		}
		if key == "" {
			key = uuid.NewString()
		}
		h.renderWithdraw(w, r, withdrawErrorStatus(r, err), withdrawFormState{
			Key: key, Values: values, FieldErrors: fieldErrs, Err: err,
		})
		return
	}
	h.logger().InfoContext(r.Context(), "withdrawal requested",
		"withdrawal_id", wd.ID, "method", string(wd.PaymentMethod))
	finish(w, r, "/Promoter/withdraw", "withdraw.toast.submitted")
}

func withdrawErrorStatus(r *http.Request, err error) int {
	if IsHTMX(r) {
		return http.StatusOK
	}
	if s := DetermineErrorStatus(err); s != 0 {
		return s
	}
	return http.StatusUnprocessableEntity
}

func (h *UIHandlers) logPartErrors(r *http.Request, parts map[string]error) {
	for name, err := range parts {
		if err != nil {
			h.logger().WarnContext(r.Context(), "page part failed to load",
				"part", name, "path", r.URL.Path, "error", err)
		}
	}
}
