package redis

// Package redis provides Redis-backed adapters for the query cache and withdrawal idempotency claims.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/megabox/megabox-web/internal/ports"
)

const (
	defaultCachePrefix = "megabox:query:"
	scanBatch          = 200
)

// CacheStore implements ports.CacheStore on Redis strings with native TTLs.
type CacheStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.CacheStore = (*CacheStore)(nil)

// NewCacheStore creates a store that namespaces keys under "megabox:query:".
func NewCacheStore(client redis.UniversalClient) *CacheStore {
	return NewCacheStoreWithPrefix(client, defaultCachePrefix)
}

// NewCacheStoreWithPrefix creates a store with a custom key namespace.
func NewCacheStoreWithPrefix(client redis.UniversalClient, prefix string) *CacheStore {
	return &CacheStore{client: client, prefix: prefix}
}

func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return b, true, nil
}

// Set stores value for ttl. A non-positive ttl is rejected so nothing lives forever.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *CacheStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			full = append(full, s.prefix+k)
		}
	}
	return s.del(ctx, full)
}

// DeletePrefix removes every key under prefix using SCAN, on every master in cluster mode.
func (s *CacheStore) DeletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return errors.New("prefix cannot be empty")
	}
	match := s.prefix + prefix + "*"

	if cc, ok := s.client.(*redis.ClusterClient); ok {
		return cc.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return scanDelete(ctx, node, match)
		})
	}
	return scanDelete(ctx, s.client, match)
}

// del issues one DEL per key so cluster slots never have to agree.
func (s *CacheStore) del(ctx context.Context, keys []string) error {
	for _, k := range keys {
		if err := s.client.Del(ctx, k).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}

func scanDelete(ctx context.Context, c redis.Cmdable, match string) error {
	var cursor uint64
	for {
		keys, next, err := c.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		for _, k := range keys {
			if err := c.Del(ctx, k).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
