package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/megabox/megabox-web/internal/ports"
)

const defaultClaimPrefix = "megabox:idem:"

// IdempotencyStore claims one-time submission keys with SET NX.
type IdempotencyStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// NewIdempotencyStore creates a store under the "megabox:idem:" namespace.
func NewIdempotencyStore(client redis.UniversalClient) *IdempotencyStore {
	return &IdempotencyStore{client: client, prefix: defaultClaimPrefix, now: time.Now}
}

// Claim atomically records key. It returns false when the key was already claimed.
func (s *IdempotencyStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	status, err := s.client.SetArgs(ctx, s.prefix+key, stamp, redis.SetArgs{Mode: "NX", TTL: ttl}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis SET NX: %w", err)
	}
	return status == "OK", nil
}

// Release forgets key so a failed submission can be retried with the same form.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
