package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/megabox/megabox-web/internal/ports"
)

// Claims is a process-local ports.IdempotencyStore. Expired claims are reclaimed lazily.
type Claims struct {
	mu     sync.Mutex
	claims map[string]time.Time
	now    func() time.Time
}

var _ ports.IdempotencyStore = (*Claims)(nil)

// NewClaims creates an empty claim set. now defaults to time.Now.
func NewClaims(now func() time.Time) *Claims {
	if now == nil {
		now = time.Now
	}
	return &Claims{claims: make(map[string]time.Time), now: now}
}

func (c *Claims) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if exp, ok := c.claims[key]; ok && now.Before(exp) {
		return false, nil
	}
	c.claims[key] = now.Add(ttl)
	if len(c.claims)%256 == 0 {
		c.sweep(now)
	}
	return true, nil
}

func (c *Claims) Release(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.claims, key)
	return nil
}

// caller holds c.mu
func (c *Claims) sweep(now time.Time) {
	for k, exp := range c.claims {
		if !now.Before(exp) {
			delete(c.claims, k)
		}
	}
}
