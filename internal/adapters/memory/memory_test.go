package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megabox/megabox-web/internal/testutil"
)

func TestLRU_GetSetExpire(t *testing.T) {
	clock := testutil.NewClock(testutil.TestTime())
	c := NewLRU(LRUConfig{Capacity: 4, Now: clock.Now})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	v, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", string(v))

	clock.Advance(61 * time.Second)
	_, ok, _ = c.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestLRU_CopiesValue(t *testing.T) {
	c := NewLRU(LRUConfig{})
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'x'
	v, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(LRUConfig{Capacity: 2})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Minute))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestLRU_DeleteAndPrefix(t *testing.T) {
	c := NewLRU(LRUConfig{})
	ctx := context.Background()

	for _, k := range []string{"t1:files", "t1:earnings", "t2:files"} {
		require.NoError(t, c.Set(ctx, k, []byte("x"), time.Minute))
	}
	require.NoError(t, c.DeletePrefix(ctx, "t1:"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "t2:files", "missing"))
	assert.Equal(t, 0, c.Len())

	require.Error(t, c.DeletePrefix(ctx, ""))
	require.Error(t, c.Set(ctx, "", nil, time.Minute))
	require.Error(t, c.Set(ctx, "k", nil, 0))
}

func TestClaims_ClaimOnceUntilExpiry(t *testing.T) {
	clock := testutil.NewClock(testutil.TestTime())
	c := NewClaims(clock.Now)
	ctx := context.Background()

	ok, err := c.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = c.Claim(ctx, "k", time.Minute)
	assert.False(t, ok)

	clock.Advance(time.Minute)
	ok, _ = c.Claim(ctx, "k", time.Minute)
	assert.True(t, ok)

	require.NoError(t, c.Release(ctx, "k"))
	ok, _ = c.Claim(ctx, "k", time.Minute)
	assert.True(t, ok)

	_, err = c.Claim(ctx, "", time.Minute)
	require.Error(t, err)
}

func TestClaims_ConcurrentSingleWinner(t *testing.T) {
	c := NewClaims(nil)
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := c.Claim(ctx, "same", time.Minute); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	for i := 0; i < 300; i++ {
		_, _ = c.Claim(ctx, fmt.Sprintf("k%d", i), time.Minute)
	}
}
