//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/megabox/megabox-web/internal/validation"
)

// PaymentMethod is a supported payout channel.
type PaymentMethod string

const (
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBank         PaymentMethod = "bank"
	PaymentVodafoneCash PaymentMethod = "vodafone_cash"
	PaymentInstaPay     PaymentMethod = "instapay"
)

// PaymentMethods lists the supported channels in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentPayPal, PaymentBank, PaymentVodafoneCash, PaymentInstaPay}
}

// PayeeFields returns the method-specific fields that must be present.
func (m PaymentMethod) PayeeFields() []string {
	switch m {
	case PaymentPayPal:
		return []string{"paypalEmail"}
	case PaymentBank:
		return []string{"bankName", "accountHolder", "accountNumber"}
	case PaymentVodafoneCash:
		return []string{"walletNumber"}
	case PaymentInstaPay:
		return []string{"instapayAddress"}
	default:
		return nil
	}
}

// WithdrawalStatus is the backend-owned processing state.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest is the promoter's payout request. It is immutable once submitted.
type WithdrawalRequest struct {
	Amount        Amount            `json:"amount"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	ContactNumber string            `json:"contactNumber"`
	PayeeDetails  map[string]string `json:"payeeDetails"`
}

// ErrMsgExceedsBalance is shown when the requested amount is above the available balance.
const ErrMsgExceedsBalance = "Amount exceeds your available balance."

var contactPattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// WithdrawalForm is the raw submitted form.
type WithdrawalForm struct {
	Amount        string
	PaymentMethod string
	ContactNumber string
	PayeeDetails  map[string]string
}

// Parse validates the form against the displayed available balance and returns the request.
// No network call is made; a failed check returns a validation error.
func (f WithdrawalForm) Parse(available Amount) (WithdrawalRequest, map[string]string, error) {
	methods := make([]string, 0, 4)
	for _, m := range PaymentMethods() {
		methods = append(methods, string(m))
	}

	fv := validation.New().
		Validate("amount", f.Amount, validation.PositiveAmount("Amount")).
		Validate("paymentMethod", f.PaymentMethod, validation.Required("Payment method", 32), validation.OneOf("Payment method", methods)).
		Validate("contactNumber", f.ContactNumber, validation.Required("Contact number", 20), validation.Pattern("Contact number", contactPattern))

	var amount Amount
	if _, bad := fv.Errors()["amount"]; !bad {
		v, _ := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
		amount = Amount(v)
		fv.Check("amount", amount.Cents() <= available.Cents(), ErrMsgExceedsBalance)
	}

	method := PaymentMethod(strings.ToLower(strings.TrimSpace(f.PaymentMethod)))
	details := make(map[string]string, len(method.PayeeFields()))
	for _, field := range method.PayeeFields() {
		v := strings.TrimSpace(f.PayeeDetails[field])
		fv.Check(field, v != "", "This field is required.")
		details[field] = v
	}

	if err := fv.Err(); err != nil {
		return WithdrawalRequest{}, fv.Errors(), err
	}
	return WithdrawalRequest{
		Amount:        amount,
		PaymentMethod: method,
		ContactNumber: strings.TrimSpace(f.ContactNumber),
		PayeeDetails:  details,
	}, nil, nil
}

// Withdrawal is a submitted request as reported by the backend.
type Withdrawal struct {
	ID            string           `json:"id"`
	Amount        Amount           `json:"amount"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	Status        WithdrawalStatus `json:"status"`
	Note          string           `json:"note,omitempty"`
	RequestedBy   string           `json:"requestedBy,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`
}

// IsPending reports whether the withdrawal still awaits a decision.
func (w Withdrawal) IsPending() bool {
	return w.Status == WithdrawalPending || w.Status == ""
}
