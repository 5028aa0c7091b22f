package config

import (
	"strings"
	"time"
)

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheBackend selects where cached query payloads and idempotency claims live.
type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

// CacheConfig controls the stale-while-revalidate query cache.
type CacheConfig struct {
	Backend CacheBackend `env:"CACHE_BACKEND" envDefault:"memory"`

	// StaleTime is how long a cached payload is served without revalidation.
	StaleTime time.Duration `env:"CACHE_STALE_TIME" envDefault:"30s"`

	// MaxAge is how long a stale payload may still be served while revalidating.
	MaxAge time.Duration `env:"CACHE_MAX_AGE" envDefault:"5m"`

	// MemoryCapacity bounds the in-memory LRU.
	MemoryCapacity int `env:"CACHE_MEMORY_CAPACITY" envDefault:"5000"`

	// IdempotencyBackend stores withdrawal submission claims.
	IdempotencyBackend CacheBackend  `env:"IDEMPOTENCY_BACKEND" envDefault:"memory"`
	IdempotencyTTL     time.Duration `env:"IDEMPOTENCY_TTL"     envDefault:"24h"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	c.Backend = normalizeBackend(c.Backend)
	c.IdempotencyBackend = normalizeBackend(c.IdempotencyBackend)
	if c.StaleTime < 0 {
		c.StaleTime = 0
	}
	if c.MaxAge < c.StaleTime {
		c.MaxAge = c.StaleTime
	}
	if c.MemoryCapacity <= 0 {
		c.MemoryCapacity = 5000
	}
	if c.IdempotencyTTL <= 0 {
		c.IdempotencyTTL = 24 * time.Hour
	}
}

func normalizeBackend(b CacheBackend) CacheBackend {
	switch CacheBackend(strings.ToLower(strings.TrimSpace(string(b)))) {
	case CacheBackendRedis:
		return CacheBackendRedis
	default:
		return CacheBackendMemory
	}
}
