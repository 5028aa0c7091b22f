package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/megabox/megabox-web/internal/errors"
)

//nolint:gochecknoglobals // static page metadata
var metaNotifications = PageMeta{Title: "page.notifications", PageTitle: "page.notifications", CurrentPage: PageNotifications}

// NotificationsPage renders the feed, or its empty state when there is nothing unread
// and nothing to show.
// GET {section}/notifications.
func (h *UIHandlers) NotificationsPage(w http.ResponseWriter, r *http.Request) {
	items, err := h.Notifications.List(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, h.page(r, metaNotifications).
		With("Notifications", items).
		With("UnreadCount", items.UnreadCount()).
		Build())
}

// NotificationsFeed is the fragment polled every 30 seconds by the feed and the bell.
// GET {section}/notifications/feed.
func (h *UIHandlers) NotificationsFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.Notifications.List(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.expireSession(w, r)
			return
		}
		// Keep the current feed on screen; the next poll retries.
		h.logger().WarnContext(r.Context(), "notifications poll failed", "error", err)
		SetHXReswap(w, "none")
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	data := h.page(r, metaNotifications).
		With("Notifications", items).
		With("UnreadCount", items.UnreadCount()).
		Build()
	if r.URL.Query().Get("view") == "badge" {
		h.renderFragment(w, r, "notifications-badge", data)
		return
	}
	h.renderFragment(w, r, "notifications-feed", data)
}

// MarkNotificationRead marks one notification read and returns the refreshed feed.
// POST {section}/notifications/{id}/read.
func (h *UIHandlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := h.Notifications.MarkRead(r.Context(), TokenFromContext(r.Context()), chi.URLParam(r, "id"))
	h.afterNotificationsMutation(w, r, err, "")
}

// MarkAllNotificationsRead marks the whole feed read.
// POST {section}/notifications/read.
func (h *UIHandlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	err := h.Notifications.MarkAllRead(r.Context(), TokenFromContext(r.Context()))
	h.afterNotificationsMutation(w, r, err, "notifications.toast.all_read")
}

func (h *UIHandlers) afterNotificationsMutation(w http.ResponseWriter, r *http.Request, err error, toastKey string) {
	if err != nil {
		if IsHTMX(r) && !apperrors.IsUnauthorized(err) {
			triggerToast(w, r, apperrors.UserMessage(err), "error")
			SetHXReswap(w, "none")
			w.WriteHeader(http.StatusOK)
			return
		}
		h.handleServiceError(w, r, err)
		return
	}
	if !IsHTMX(r) {
		http.Redirect(w, r, identitySection(r)+"/notifications", http.StatusSeeOther)
		return
	}
	if toastKey != "" {
		triggerToast(w, r, toastKey, "success")
	}
	SetHXTrigger(w, "notifications:changed", nil)
	h.NotificationsFeed(w, r)
}
