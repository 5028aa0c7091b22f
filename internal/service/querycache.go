package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/megabox/megabox-web/internal/errors"
	"github.com/megabox/megabox-web/internal/observability/statsd"
	"github.com/megabox/megabox-web/internal/ports"
)

const (
	defaultStaleTime   = 30 * time.Second
	defaultMaxAge      = 5 * time.Minute
	defaultRetryDelay  = 250 * time.Millisecond
	revalidateTimeout  = 30 * time.Second
	publicKeyNamespace = "public"
	tokenKeyHashPrefix = 16
)

// QueryCacheOptions groups dependencies for QueryCache.
type QueryCacheOptions struct {
	Store     ports.CacheStore
	StaleTime time.Duration
	MaxAge    time.Duration
	// RetryDelay is the linear backoff step between attempts; negative disables waiting.
	RetryDelay time.Duration
	Now        func() time.Time
	Logger     *slog.Logger
	Metrics    statsd.Sink
}

// QueryCache serves backend reads stale-while-revalidate, scoped per bearer token.
// Entries younger than StaleTime are served as-is; entries up to MaxAge are served
// while one background refresh runs; older entries are fetched synchronously.
type QueryCache struct {
	store      ports.CacheStore
	staleTime  time.Duration
	maxAge     time.Duration
	retryDelay time.Duration
	now        func() time.Time
	logger     *slog.Logger
	metrics    statsd.Sink

	flight singleflight.Group
	bg     sync.WaitGroup
}

// NewQueryCache constructs a QueryCache.
func NewQueryCache(opts QueryCacheOptions) *QueryCache {
	qc := &QueryCache{
		store:      opts.Store,
		staleTime:  opts.StaleTime,
		maxAge:     opts.MaxAge,
		retryDelay: opts.RetryDelay,
		now:        opts.Now,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
	}
	if qc.staleTime <= 0 {
		qc.staleTime = defaultStaleTime
	}
	if qc.maxAge < qc.staleTime {
		qc.maxAge = max(defaultMaxAge, qc.staleTime)
	}
	switch {
	case qc.retryDelay < 0:
		qc.retryDelay = 0
	case qc.retryDelay == 0:
		qc.retryDelay = defaultRetryDelay
	}
	if qc.now == nil {
		qc.now = time.Now
	}
	if qc.logger == nil {
		qc.logger = slog.Default()
	}
	return qc
}

// Query describes one cacheable backend read.
type Query[T any] struct {
	// Key identifies the query within a token's namespace, e.g. "files?page=2".
	Key string
	// Retries is the number of extra attempts after a retryable failure.
	Retries int
	Fetch   func(ctx context.Context) (T, error)
}

type cacheEntry struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Data      json.RawMessage `json:"data"`
}

// Fetch returns q's result for token, consulting the cache first. A nil cache calls through.
func Fetch[T any](ctx context.Context, qc *QueryCache, token string, q Query[T]) (T, error) {
	var zero T
	if qc == nil || qc.store == nil {
		return q.Fetch(ctx)
	}

	key := qc.Key(token, q.Key)
	if entry, ok := qc.lookup(ctx, key); ok {
		age := qc.now().Sub(entry.FetchedAt)
		var out T
		if err := json.Unmarshal(entry.Data, &out); err == nil {
			if age < qc.staleTime {
				qc.count("hit")
				return out, nil
			}
			if age < qc.maxAge {
				qc.count("stale")
				revalidate(ctx, qc, key, q)
				return out, nil
			}
		}
	}

	qc.count("miss")
	data, err := loadQuery(ctx, qc, key, q)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode cached query")
	}
	return out, nil
}

// loadQuery runs the fetch once per key across concurrent callers and stores the result.
func loadQuery[T any](ctx context.Context, qc *QueryCache, key string, q Query[T]) ([]byte, error) {
	v, err, _ := qc.flight.Do(key, func() (any, error) {
		res, err := fetchWithRetry(ctx, qc, q)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(res)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode query result")
		}
		qc.save(ctx, key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// revalidate refreshes key in the background, detached from the request's cancellation.
func revalidate[T any](ctx context.Context, qc *QueryCache, key string, q Query[T]) {
	bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), revalidateTimeout)
	qc.bg.Add(1)
	go func() {
		defer qc.bg.Done()
		defer cancel()
		if _, err := loadQuery(bgCtx, qc, key, q); err != nil {
			qc.logger.DebugContext(bgCtx, "background revalidation failed", "key", key, "error", err)
		}
	}()
}

func fetchWithRetry[T any](ctx context.Context, qc *QueryCache, q Query[T]) (T, error) {
	var (
		res T
		err error
	)
	for attempt := 0; attempt <= q.Retries; attempt++ {
		if attempt > 0 {
			if waitErr := sleepCtx(ctx, qc.retryDelay*time.Duration(attempt)); waitErr != nil {
				return res, err
			}
		}
		res, err = q.Fetch(ctx)
		if err == nil || !retryable(err) {
			return res, err
		}
	}
	return res, err
}

// retryable reports whether a failure may succeed on another attempt.
func retryable(err error) bool {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeUnavailable, apperrors.ErrCodeTimeout:
		return true
	default:
		return false
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (qc *QueryCache) lookup(ctx context.Context, key string) (cacheEntry, bool) {
	raw, ok, err := qc.store.Get(ctx, key)
	if err != nil {
		qc.logger.WarnContext(ctx, "query cache read failed", "error", err)
		return cacheEntry{}, false
	}
	if !ok {
		return cacheEntry{}, false
	}
	var e cacheEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return cacheEntry{}, false
	}
	return e, true
}

func (qc *QueryCache) save(ctx context.Context, key string, data []byte) {
	raw, err := json.Marshal(cacheEntry{FetchedAt: qc.now(), Data: data})
	if err != nil {
		return
	}
	if err := qc.store.Set(ctx, key, raw, qc.maxAge); err != nil {
		qc.logger.WarnContext(ctx, "query cache write failed", "error", err)
	}
}

func (qc *QueryCache) count(result string) {
	if qc.metrics != nil {
		qc.metrics.Count("query_cache.lookup", 1, map[string]string{"result": result})
	}
}

// Key namespaces queryKey under a digest of token; the raw token never reaches the store.
func (qc *QueryCache) Key(token, queryKey string) string {
	return tokenNamespace(token) + ":" + queryKey
}

func tokenNamespace(token string) string {
	if token == "" {
		return publicKeyNamespace
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:tokenKeyHashPrefix]
}

// Invalidate drops the given queries for token, typically after a mutation.
func (qc *QueryCache) Invalidate(ctx context.Context, token string, queryKeys ...string) {
	if qc == nil || qc.store == nil || len(queryKeys) == 0 {
		return
	}
	keys := make([]string, len(queryKeys))
	for i, k := range queryKeys {
		keys[i] = qc.Key(token, k)
	}
	if err := qc.store.Delete(ctx, keys...); err != nil {
		qc.logger.WarnContext(ctx, "query cache invalidate failed", "error", err)
	}
}

// InvalidatePrefix drops every query for token whose key starts with prefix.
func (qc *QueryCache) InvalidatePrefix(ctx context.Context, token, prefix string) {
	if qc == nil || qc.store == nil {
		return
	}
	if err := qc.store.DeletePrefix(ctx, qc.Key(token, prefix)); err != nil {
		qc.logger.WarnContext(ctx, "query cache invalidate failed", "error", err)
	}
}

// InvalidateToken drops every query cached for token.
func (qc *QueryCache) InvalidateToken(ctx context.Context, token string) {
	if qc == nil || qc.store == nil || token == "" {
		return
	}
	if err := qc.store.DeletePrefix(ctx, tokenNamespace(token)+":"); err != nil {
		qc.logger.WarnContext(ctx, "query cache reset failed", "error", err)
	}
}

// Wait blocks until background revalidations have finished.
func (qc *QueryCache) Wait() {
	if qc != nil {
		qc.bg.Wait()
	}
}
