package service

import (
	"context"
	"strings"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/ports"
)

const queryNotifications = "notifications"

// NotificationsService reads and acknowledges the notification feed.
type NotificationsService struct {
	api   ports.NotificationsAPI
	cache *QueryCache
}

// NewNotificationsService constructs a NotificationsService.
func NewNotificationsService(api ports.NotificationsAPI, cache *QueryCache) *NotificationsService {
	return &NotificationsService{api: api, cache: cache}
}

// List returns the feed, newest first as delivered by the backend.
func (s *NotificationsService) List(ctx context.Context, token string) (model.Notifications, error) {
	return Fetch(ctx, s.cache, token, Query[model.Notifications]{
		Key:   queryNotifications,
		Fetch: func(ctx context.Context) (model.Notifications, error) { return s.api.Notifications(ctx, token) },
	})
}

// MarkRead acknowledges one notification. The cached feed is dropped only on success.
func (s *NotificationsService) MarkRead(ctx context.Context, token, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NotFound("Notification not found.")
	}
	if err := s.api.MarkNotificationRead(ctx, token, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, token, queryNotifications)
	return nil
}

// MarkAllRead acknowledges the whole feed.
func (s *NotificationsService) MarkAllRead(ctx context.Context, token string) error {
	if err := s.api.MarkAllNotificationsRead(ctx, token); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, token, queryNotifications)
	return nil
}
