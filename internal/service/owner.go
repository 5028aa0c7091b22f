package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/ports"
)

const (
	queryAdminUsers           = "admin/users"
	queryAdminStats           = "admin/stats"
	queryAdminWithdrawalsPref = "admin/withdrawals?"
	maxDecisionNote           = 500
)

// OwnerService backs the platform owner's administration pages.
type OwnerService struct {
	api    ports.AdminAPI
	cache  *QueryCache
	logger *slog.Logger
}

// NewOwnerService constructs an OwnerService.
func NewOwnerService(api ports.AdminAPI, cache *QueryCache, logger *slog.Logger) *OwnerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OwnerService{api: api, cache: cache, logger: logger}
}

// Users lists platform accounts.
func (s *OwnerService) Users(ctx context.Context, token string) ([]model.AdminUser, error) {
	return Fetch(ctx, s.cache, token, Query[[]model.AdminUser]{
		Key:   queryAdminUsers,
		Fetch: func(ctx context.Context) ([]model.AdminUser, error) { return s.api.AdminUsers(ctx, token) },
	})
}

// Stats returns platform-wide totals.
func (s *OwnerService) Stats(ctx context.Context, token string) (model.PlatformStats, error) {
	return Fetch(ctx, s.cache, token, Query[model.PlatformStats]{
		Key:   queryAdminStats,
		Fetch: func(ctx context.Context) (model.PlatformStats, error) { return s.api.PlatformStats(ctx, token) },
	})
}

// Withdrawals lists withdrawal requests filtered by status; empty means all.
func (s *OwnerService) Withdrawals(ctx context.Context, token string, status model.WithdrawalStatus) ([]model.Withdrawal, error) {
	switch status {
	case "", model.WithdrawalPending, model.WithdrawalApproved, model.WithdrawalRejected:
	default:
		status = ""
	}
	return Fetch(ctx, s.cache, token, Query[[]model.Withdrawal]{
		Key: queryAdminWithdrawalsPref + "status=" + string(status),
		Fetch: func(ctx context.Context) ([]model.Withdrawal, error) {
			return s.api.AdminWithdrawals(ctx, token, status)
		},
	})
}

// Decide approves or rejects a pending withdrawal. A rejection requires a note.
func (s *OwnerService) Decide(ctx context.Context, token, id string, approve bool, note string) error {
	id, note = strings.TrimSpace(id), strings.TrimSpace(note)
	if id == "" {
		return apperrors.NotFound("Withdrawal not found.")
	}
	if !approve && note == "" {
		return apperrors.ValidationField("note", "Give a reason for rejecting this request.")
	}
	if len(note) > maxDecisionNote {
		return apperrors.ValidationField("note", "Note is too long.")
	}
	if err := s.api.DecideWithdrawal(ctx, token, id, approve, note); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "withdrawal decided", "withdrawal_id", id, "approved", approve)
	s.cache.InvalidatePrefix(ctx, token, queryAdminWithdrawalsPref)
	s.cache.Invalidate(ctx, token, queryAdminStats)
	return nil
}

// OwnerOverview is the owner dashboard with per-part errors.
type OwnerOverview struct {
	Stats      model.PlatformStats
	StatsErr   error
	Pending    []model.Withdrawal
	PendingErr error
}

// Overview loads stats and pending withdrawals concurrently.
func (s *OwnerService) Overview(ctx context.Context, token string) OwnerOverview {
	var ov OwnerOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov.Stats, ov.StatsErr = s.Stats(gctx, token)
		return nil
	})
	g.Go(func() error {
		ov.Pending, ov.PendingErr = s.Withdrawals(gctx, token, model.WithdrawalPending)
		return nil
	})
	_ = g.Wait()
	return ov
}
