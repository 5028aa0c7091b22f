package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/megabox/megabox-web/internal/domain/model"
)

// Notifications returns the caller's feed, newest first.
func (c *Client) Notifications(ctx context.Context, token string) (model.Notifications, error) {
	var n model.Notifications
	err := c.do(ctx, call{
		endpoint:  "notifications.list",
		method:    http.MethodGet,
		path:      "/notifications",
		token:     token,
		selectors: []string{"notifications", "items"},
		out:       &n,
	})
	return n, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, token, id string) error {
	return c.do(ctx, call{
		endpoint: "notifications.read",
		method:   http.MethodPatch,
		path:     "/notifications/" + url.PathEscape(id) + "/read",
		token:    token,
	})
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string) error {
	return c.do(ctx, call{
		endpoint: "notifications.read_all",
		method:   http.MethodPatch,
		path:     "/notifications/read-all",
		token:    token,
	})
}
