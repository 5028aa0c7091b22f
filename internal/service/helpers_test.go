package service

import (
	"testing"
	"time"

	"github.com/megabox/megabox-web/internal/adapters/memory"
	"github.com/megabox/megabox-web/internal/testutil"
)

const (
	testStale  = 30 * time.Second
	testMaxAge = 5 * time.Minute
)

// newTestCache returns a QueryCache over an in-memory store driven by clock. Retries do not sleep.
func newTestCache(t *testing.T, clock *testutil.Clock) *QueryCache {
	t.Helper()
	if clock == nil {
		clock = testutil.NewClock(testutil.TestTime())
	}
	return NewQueryCache(QueryCacheOptions{
		Store:      memory.NewLRU(memory.LRUConfig{Now: clock.Now}),
		StaleTime:  testStale,
		MaxAge:     testMaxAge,
		RetryDelay: -1,
		Now:        clock.Now,
	})
}
