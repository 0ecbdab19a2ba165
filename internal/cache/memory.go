package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"felmel/internal/logger"
)

// MemoryCache keeps pages in process memory. There is no capacity bound; entries leave
// on read after expiry, on Clear, or through the sweeper.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[pageKey]entry
	ttl     time.Duration
	now     func() time.Time
	hits    int64
	misses  int64
	logger  *logger.Logger
}

func NewMemoryCache(ttl time.Duration, logger *logger.Logger) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[pageKey]entry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock replaces the time source, mostly for tests.
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

func (c *MemoryCache) Get(_ context.Context, page, size int) ([]json.RawMessage, bool) {
	key := pageKey{page: page, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if e.expired(c.now(), c.ttl) {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}

	c.hits++
	c.logger.Debug("Cache hit for page %d (size %d)", page, size)
	return e.Payload, true
}

func (c *MemoryCache) Put(_ context.Context, page, size int, payload []json.RawMessage) {
	c.mu.Lock()
	c.entries[pageKey{page: page, size: size}] = entry{CreatedAt: c.now(), Payload: payload}
	c.mu.Unlock()
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[pageKey]entry)
	c.mu.Unlock()

	c.logger.Info("Page cache cleared (%d entries)", n)
	return nil
}

func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Backend: "memory",
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		TTL:     c.ttl.String(),
	}
}

// Sweep drops every expired entry and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(now, c.ttl) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is done.
func (c *MemoryCache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := c.Sweep(); removed > 0 {
					c.logger.Debug("Swept %d expired cache entries", removed)
				}
			}
		}
	}()
}
