// Package memory holds process-local implementations of the cache and idempotency ports.
package memory

import (
	"container/list"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/megabox/megabox-web/internal/ports"
)

// LRU is a bounded in-memory cache with per-entry TTL.
// Methods are safe for concurrent use.
type LRU struct {
	mu    sync.Mutex
	cap   int
	ll    *list.List // front = most recently used
	items map[string]*list.Element
	now   func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
	evicts atomic.Uint64
}

var _ ports.CacheStore = (*LRU)(nil)

type lruEntry struct {
	key    string
	value  []byte
	expiry time.Time
}

// LRUConfig groups constructor options.
type LRUConfig struct {
	Capacity int
	Now      func() time.Time
}

// NewLRU creates an LRU; zero values fall back to 1024 entries and the wall clock.
func NewLRU(cfg LRUConfig) *LRU {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1024
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &LRU{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[string]*list.Element, capacity),
		now:   now,
	}
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return nil, false, nil
	}
	ent := el.Value.(*lruEntry)
	if c.expired(ent) {
		c.remove(el)
		c.misses.Add(1)
		return nil, false, nil
	}
	c.ll.MoveToFront(el)
	c.hits.Add(1)
	return ent.value, true, nil
}

// Set stores a copy of value. A non-positive ttl is rejected.
func (c *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	v := append([]byte(nil), value...)

	c.mu.Lock()
	defer c.mu.Unlock()

	exp := c.now().Add(ttl)
	if el, ok := c.items[key]; ok {
		ent := el.Value.(*lruEntry)
		ent.value, ent.expiry = v, exp
		c.ll.MoveToFront(el)
		return nil
	}
	c.items[key] = c.ll.PushFront(&lruEntry{key: key, value: v, expiry: exp})
	for c.ll.Len() > c.cap {
		c.remove(c.ll.Back())
		c.evicts.Add(1)
	}
	return nil
}

func (c *LRU) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		if el, ok := c.items[k]; ok {
			c.remove(el)
		}
	}
	return nil
}

func (c *LRU) DeletePrefix(_ context.Context, prefix string) error {
	if prefix == "" {
		return errors.New("prefix cannot be empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, el := range c.items {
		if strings.HasPrefix(k, prefix) {
			c.remove(el)
		}
	}
	return nil
}

// Len returns the number of stored entries, including expired ones not yet reclaimed.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// LRUStats are counters for the cache gauge.
type LRUStats struct {
	Hits, Misses, Evictions uint64
	Size, Capacity          int
}

// Stats returns a snapshot of counters.
func (c *LRU) Stats() LRUStats {
	return LRUStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evicts.Load(),
		Size:      c.Len(),
		Capacity:  c.cap,
	}
}

// caller holds c.mu
func (c *LRU) expired(e *lruEntry) bool {
	return c.now().After(e.expiry)
}

// caller holds c.mu
func (c *LRU) remove(el *list.Element) {
	c.ll.Remove(el)
	delete(c.items, el.Value.(*lruEntry).key)
}
