package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"felmel/internal/logger"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(ttl time.Duration) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemoryCache(ttl, logger.NewNop()).WithClock(clock.now), clock
}

func page(docs ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = json.RawMessage(d)
	}
	return out
}

func TestMemoryCacheHitAndMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get(ctx, 1, 100)
	assert.False(t, ok)

	c.Put(ctx, 1, 100, page(`{"id":1}`))
	got, ok := c.Get(ctx, 1, 100)
	require.True(t, ok)
	assert.Len(t, got, 1)

	// same page at another size is a different entry
	_, ok = c.Get(ctx, 1, 50)
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 2, stats.Misses)
	assert.Equal(t, "memory", stats.Backend)
}

func TestMemoryCacheExpiresOnRead(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(5 * time.Minute)

	c.Put(ctx, 2, 100, page(`{}`))
	clock.advance(4*time.Minute + 59*time.Second)
	_, ok := c.Get(ctx, 2, 100)
	assert.True(t, ok)

	clock.advance(time.Second)
	_, ok = c.Get(ctx, 2, 100)
	assert.False(t, ok)
	assert.Zero(t, c.Stats().Entries)
}

func TestMemoryCacheClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(time.Minute)

	c.Put(ctx, 1, 100, page(`{}`))
	c.Put(ctx, 2, 100, page(`{}`))

	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, c.Stats().Entries)
	require.NoError(t, c.Clear(ctx))
	assert.Zero(t, c.Stats().Entries)
}

func TestMemoryCacheSweep(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(time.Minute)

	c.Put(ctx, 1, 100, page(`{}`))
	clock.advance(30 * time.Second)
	c.Put(ctx, 2, 100, page(`{}`))
	clock.advance(45 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Stats().Entries)

	_, ok := c.Get(ctx, 2, 100)
	assert.True(t, ok)
}

func TestMemoryCacheDefaultTTL(t *testing.T) {
	c := NewMemoryCache(0, logger.NewNop())
	assert.Equal(t, DefaultTTL.String(), c.Stats().TTL)
}
