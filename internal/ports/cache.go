package ports

import (
	"context"
	"time"
)

// CacheStore is a byte-oriented key/value store with per-entry TTL.
type CacheStore interface {
	// Get returns the value and true when present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// IdempotencyStore records one-time submission keys.
type IdempotencyStore interface {
	// Claim returns true the first time key is seen within ttl.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets a claim so the submission may be retried.
	Release(ctx context.Context, key string) error
}
