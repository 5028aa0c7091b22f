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

func TestOwnerService_DecideRefreshesQueue(t *testing.T) {
	api := mocks.NewMockAdminAPI(gomock.NewController(t))
	svc := NewOwnerService(api, newTestCache(t, nil), nil)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().AdminWithdrawals(gomock.Any(), "tok", model.WithdrawalPending).Return([]model.Withdrawal{{ID: "w1"}}, nil),
		api.EXPECT().DecideWithdrawal(gomock.Any(), "tok", "w1", true, "").Return(nil),
		api.EXPECT().AdminWithdrawals(gomock.Any(), "tok", model.WithdrawalPending).Return(nil, nil),
	)

	list, err := svc.Withdrawals(ctx, "tok", model.WithdrawalPending)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Decide(ctx, "tok", "w1", true, ""))

	list, err = svc.Withdrawals(ctx, "tok", model.WithdrawalPending)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOwnerService_RejectNeedsNote(t *testing.T) {
	svc := NewOwnerService(mocks.NewMockAdminAPI(gomock.NewController(t)), nil, nil)

	err := svc.Decide(context.Background(), "tok", "w1", false, " ")
	assert.Equal(t, "note", apperrors.GetField(err))
}

func TestOwnerService_UnknownStatusListsAll(t *testing.T) {
	api := mocks.NewMockAdminAPI(gomock.NewController(t))
	svc := NewOwnerService(api, nil, nil)
	api.EXPECT().AdminWithdrawals(gomock.Any(), "tok", model.WithdrawalStatus("")).Return(nil, nil)

	_, err := svc.Withdrawals(context.Background(), "tok", "bogus")
	require.NoError(t, err)
}

func TestOwnerService_Overview(t *testing.T) {
	api := mocks.NewMockAdminAPI(gomock.NewController(t))
	svc := NewOwnerService(api, newTestCache(t, nil), nil)
	api.EXPECT().PlatformStats(gomock.Any(), "tok").Return(model.PlatformStats{TotalUsers: 7}, nil)
	api.EXPECT().AdminWithdrawals(gomock.Any(), "tok", model.WithdrawalPending).Return(nil, apperrors.Upstream(403, "no"))

	ov := svc.Overview(context.Background(), "tok")
	require.NoError(t, ov.StatsErr)
	assert.Equal(t, int64(7), ov.Stats.TotalUsers)
	assert.True(t, apperrors.IsForbidden(ov.PendingErr))
}
