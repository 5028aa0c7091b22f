package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/megabox/megabox-web/internal/domain/model"
	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/ports"
)

const (
	queryEarnings          = "earnings"
	queryAnalyticsPrefix   = "analytics?"
	queryWithdrawals       = "withdrawals"
	analyticsRetries       = 2
	defaultIdempotencyTTL  = 24 * time.Hour
	msgDuplicateWithdrawal = "This withdrawal request was already submitted."
)

// EarningsServiceOptions groups dependencies for EarningsService.
type EarningsServiceOptions struct {
	API            ports.EarningsAPI
	Cache          *QueryCache
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

// EarningsService serves promoter revenue pages and withdrawal submissions.
type EarningsService struct {
	api     ports.EarningsAPI
	cache   *QueryCache
	idem    ports.IdempotencyStore
	idemTTL time.Duration
	logger  *slog.Logger
}

// NewEarningsService constructs an EarningsService.
func NewEarningsService(opts EarningsServiceOptions) *EarningsService {
	ttl := opts.IdempotencyTTL
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &EarningsService{api: opts.API, cache: opts.Cache, idem: opts.Idempotency, idemTTL: ttl, logger: logger}
}

// Earnings returns the balance summary.
func (s *EarningsService) Earnings(ctx context.Context, token string) (model.Earnings, error) {
	return Fetch(ctx, s.cache, token, Query[model.Earnings]{
		Key:   queryEarnings,
		Fetch: func(ctx context.Context) (model.Earnings, error) { return s.api.Earnings(ctx, token) },
	})
}

// Analytics returns the aggregated traffic for period. Transient failures are retried.
func (s *EarningsService) Analytics(ctx context.Context, token string, period model.AnalyticsPeriod) (model.Analytics, error) {
	return Fetch(ctx, s.cache, token, Query[model.Analytics]{
		Key:     queryAnalyticsPrefix + "period=" + string(period),
		Retries: analyticsRetries,
		Fetch: func(ctx context.Context) (model.Analytics, error) {
			return s.api.Analytics(ctx, token, period)
		},
	})
}

// Withdrawals lists past requests with their backend status.
func (s *EarningsService) Withdrawals(ctx context.Context, token string) ([]model.Withdrawal, error) {
	return Fetch(ctx, s.cache, token, Query[[]model.Withdrawal]{
		Key:   queryWithdrawals,
		Fetch: func(ctx context.Context) ([]model.Withdrawal, error) { return s.api.Withdrawals(ctx, token) },
	})
}

// Overview is the promoter dashboard. Each part carries its own error so one failed
// query does not blank the others.
type Overview struct {
	Earnings     model.Earnings
	EarningsErr  error
	Analytics    model.Analytics
	AnalyticsErr error
}

// Overview loads earnings and analytics concurrently.
func (s *EarningsService) Overview(ctx context.Context, token string, period model.AnalyticsPeriod) Overview {
	var ov Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov.Earnings, ov.EarningsErr = s.Earnings(gctx, token)
		return nil
	})
	g.Go(func() error {
		ov.Analytics, ov.AnalyticsErr = s.Analytics(gctx, token, period)
		return nil
	})
	_ = g.Wait()
	return ov
}

// WithdrawPage is the data behind the withdrawal form.
type WithdrawPage struct {
	Earnings       model.Earnings
	EarningsErr    error
	Withdrawals    []model.Withdrawal
	WithdrawalsErr error
}

// WithdrawPage loads the balance and history concurrently.
func (s *EarningsService) WithdrawPage(ctx context.Context, token string) WithdrawPage {
	var p WithdrawPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.Earnings, p.EarningsErr = s.Earnings(gctx, token)
		return nil
	})
	g.Go(func() error {
		p.Withdrawals, p.WithdrawalsErr = s.Withdrawals(gctx, token)
		return nil
	})
	_ = g.Wait()
	return p
}

// SubmitWithdrawal validates form against the displayed balance and submits it once per key.
// Field errors are returned alongside a validation error without any backend call.
func (s *EarningsService) SubmitWithdrawal(ctx context.Context, token string, form model.WithdrawalForm, key string) (model.Withdrawal, map[string]string, error) {
	earnings, err := s.Earnings(ctx, token)
	if err != nil {
		return model.Withdrawal{}, nil, err
	}
	req, fieldErrs, err := form.Parse(earnings.AvailableBalance)
	if err != nil {
		return model.Withdrawal{}, fieldErrs, err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return model.Withdrawal{}, nil, apperrors.Validation("The form has expired. Please reload the page.")
	}
	if s.idem != nil {
		claimed, claimErr := s.idem.Claim(ctx, key, s.idemTTL)
		if claimErr != nil {
			return model.Withdrawal{}, nil, apperrors.Wrap(claimErr, apperrors.ErrCodeUnavailable, "Could not submit right now. Please try again.")
		}
		if !claimed {
			return model.Withdrawal{}, nil, apperrors.Conflict(msgDuplicateWithdrawal)
		}
	}

	w, err := s.api.RequestWithdrawal(ctx, token, req, key)
	if err != nil {
		s.releaseUnlessDuplicate(ctx, key, err)
		return model.Withdrawal{}, nil, err
	}
	s.cache.Invalidate(ctx, token, queryWithdrawals, queryEarnings)
	return w, nil, nil
}

// releaseUnlessDuplicate lets the same form be retried after a failure that the
// backend did not record.
func (s *EarningsService) releaseUnlessDuplicate(ctx context.Context, key string, cause error) {
	if s.idem == nil || apperrors.IsConflict(cause) {
		return
	}
	if err := s.idem.Release(context.WithoutCancel(ctx), key); err != nil {
		s.logger.WarnContext(ctx, "release idempotency claim failed", "error", errors.Join(err, cause))
	}
}
