// Package cache memoizes raw catalog pages keyed by page number and page size.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultTTL is how long a page stays valid when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// PageCache stores raw upstream pages. Expired entries behave as misses.
type PageCache interface {
	Get(ctx context.Context, page, size int) ([]json.RawMessage, bool)
	Put(ctx context.Context, page, size int, payload []json.RawMessage)
	Clear(ctx context.Context) error
	Stats() Stats
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Backend string `json:"backend"`
	Entries int    `json:"entries"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
	TTL     string `json:"ttl"`
}

type entry struct {
	CreatedAt time.Time         `json:"created_at"`
	Payload   []json.RawMessage `json:"payload"`
}

func (e entry) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.CreatedAt) >= ttl
}

type pageKey struct {
	page int
	size int
}
