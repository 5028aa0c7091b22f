package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/megabox/megabox-web/internal/domain/model"
)

// AdminUsers lists every platform account.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := c.do(ctx, call{
		endpoint:  "admin.users",
		method:    http.MethodGet,
		path:      "/admin/users",
		token:     token,
		selectors: []string{"users", "items"},
		out:       &users,
	})
	return users, err
}

// AdminWithdrawals lists withdrawal requests, optionally filtered by status.
func (c *Client) AdminWithdrawals(ctx context.Context, token string, status model.WithdrawalStatus) ([]model.Withdrawal, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	var out []model.Withdrawal
	err := c.do(ctx, call{
		endpoint:  "admin.withdrawals",
		method:    http.MethodGet,
		path:      "/admin/withdrawals",
		token:     token,
		query:     q,
		selectors: []string{"withdrawals", "items"},
		out:       &out,
	})
	return out, err
}

// DecideWithdrawal approves or rejects a pending withdrawal.
func (c *Client) DecideWithdrawal(ctx context.Context, token, id string, approve bool, note string) error {
	action, endpoint := "reject", "admin.withdrawal_reject"
	if approve {
		action, endpoint = "approve", "admin.withdrawal_approve"
	}
	var body any
	if note != "" {
		body = map[string]string{"note": note}
	}
	return c.do(ctx, call{
		endpoint: endpoint,
		method:   http.MethodPost,
		path:     "/admin/withdrawals/" + url.PathEscape(id) + "/" + action,
		token:    token,
		body:     body,
	})
}

// PlatformStats returns platform-wide totals.
func (c *Client) PlatformStats(ctx context.Context, token string) (model.PlatformStats, error) {
	var s model.PlatformStats
	err := c.do(ctx, call{
		endpoint:  "admin.stats",
		method:    http.MethodGet,
		path:      "/admin/stats",
		token:     token,
		selectors: []string{"stats"},
		out:       &s,
	})
	return s, err
}
