package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/mocks"
)

func TestNotificationsService_MarkReadRefreshesFeed(t *testing.T) {
	api := mocks.NewMockNotificationsAPI(gomock.NewController(t))
	svc := NewNotificationsService(api, newTestCache(t, nil))
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().Notifications(gomock.Any(), "tok").Return(model.Notifications{{ID: "n1"}, {ID: "n2"}}, nil),
		api.EXPECT().MarkNotificationRead(gomock.Any(), "tok", "n1").Return(nil),
		api.EXPECT().Notifications(gomock.Any(), "tok").Return(model.Notifications{{ID: "n1", Read: true}, {ID: "n2"}}, nil),
	)

	feed, err := svc.List(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, feed.UnreadCount())

	require.NoError(t, svc.MarkRead(ctx, "tok", "n1"))

	feed, err = svc.List(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, feed.UnreadCount())
}

func TestNotificationsService_FailedMarkKeepsCache(t *testing.T) {
	api := mocks.NewMockNotificationsAPI(gomock.NewController(t))
	svc := NewNotificationsService(api, newTestCache(t, nil))
	ctx := context.Background()

	api.EXPECT().Notifications(gomock.Any(), "tok").Return(model.Notifications{{ID: "n1"}}, nil).Times(1)
	api.EXPECT().MarkAllNotificationsRead(gomock.Any(), "tok").Return(apperrors.Upstream(500, "down"))

	_, err := svc.List(ctx, "tok")
	require.NoError(t, err)
	require.Error(t, svc.MarkAllRead(ctx, "tok"))

	feed, err := svc.List(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, feed.UnreadCount())
}

func TestNotificationsService_MarkReadRequiresID(t *testing.T) {
	svc := NewNotificationsService(mocks.NewMockNotificationsAPI(gomock.NewController(t)), nil)
	assert.True(t, apperrors.IsNotFound(svc.MarkRead(context.Background(), "tok", " ")))
}
