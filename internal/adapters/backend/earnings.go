package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/megabox/megabox-web/internal/domain/model"
)

// IdempotencyHeader carries the client-generated key for non-repeatable submissions.
const IdempotencyHeader = "Idempotency-Key"

// Earnings returns the promoter's balance summary.
func (c *Client) Earnings(ctx context.Context, token string) (model.Earnings, error) {
	var e model.Earnings
	err := c.do(ctx, call{
		endpoint:  "earnings.summary",
		method:    http.MethodGet,
		path:      "/earnings",
		token:     token,
		selectors: []string{"earnings"},
		out:       &e,
	})
	return e, err
}

// Analytics returns traffic and revenue aggregated over period.
func (c *Client) Analytics(ctx context.Context, token string, period model.AnalyticsPeriod) (model.Analytics, error) {
	var a model.Analytics
	err := c.do(ctx, call{
		endpoint:  "earnings.analytics",
		method:    http.MethodGet,
		path:      "/analytics",
		token:     token,
		query:     url.Values{"period": {string(period)}},
		selectors: []string{"analytics"},
		out:       &a,
	})
	if a.Period == "" {
		a.Period = period
	}
	return a, err
}

// Withdrawals lists the promoter's past withdrawal requests.
func (c *Client) Withdrawals(ctx context.Context, token string) ([]model.Withdrawal, error) {
	var out []model.Withdrawal
	err := c.do(ctx, call{
		endpoint:  "withdrawals.list",
		method:    http.MethodGet,
		path:      "/withdrawals",
		token:     token,
		selectors: []string{"withdrawals", "items"},
		out:       &out,
	})
	return out, err
}

// RequestWithdrawal submits a payout request. The key is forwarded so the backend
// can drop a duplicate submission.
func (c *Client) RequestWithdrawal(ctx context.Context, token string, req model.WithdrawalRequest, idempotencyKey string) (model.Withdrawal, error) {
	h := http.Header{}
	if idempotencyKey != "" {
		h.Set(IdempotencyHeader, idempotencyKey)
	}
	var w model.Withdrawal
	err := c.do(ctx, call{
		endpoint:  "withdrawals.create",
		method:    http.MethodPost,
		path:      "/withdrawals",
		token:     token,
		body:      req,
		header:    h,
		selectors: []string{"withdrawal"},
		out:       &w,
	})
	return w, err
}
