package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"felmel/internal/logger"
)

const keyPrefix = "catalog:page:"

// RedisCache shares pages between processes. Entries carry their creation time so expiry
// is enforced on read as well as by the key TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
	logger *logger.Logger
}

// NewRedisCache parses a redis:// URL and checks the connection.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration, logger *logger.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCacheFromClient(client, ttl, logger), nil
}

func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, logger *logger.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func pageRedisKey(page, size int) string {
	return fmt.Sprintf("%s%d:%d", keyPrefix, page, size)
}

func (c *RedisCache) Get(ctx context.Context, page, size int) ([]json.RawMessage, bool) {
	data, err := c.client.Get(ctx, pageRedisKey(page, size)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Redis get failed for page %d: %v", page, err)
		}
		c.misses.Add(1)
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("Discarding unreadable cache entry for page %d: %v", page, err)
		c.misses.Add(1)
		return nil, false
	}
	if e.expired(c.now(), c.ttl) {
		c.client.Del(ctx, pageRedisKey(page, size))
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return e.Payload, true
}

// Put is best effort; a failed write only costs a future refetch.
func (c *RedisCache) Put(ctx context.Context, page, size int, payload []json.RawMessage) {
	data, err := json.Marshal(entry{CreatedAt: c.now(), Payload: payload})
	if err != nil {
		c.logger.Warn("Failed to encode cache entry for page %d: %v", page, err)
		return
	}
	if err := c.client.Set(ctx, pageRedisKey(page, size), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis set failed for page %d: %v", page, err)
	}
}

func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64
	removed := 0
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			removed += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Info("Redis page cache cleared (%d entries)", removed)
	return nil
}

func (c *RedisCache) Stats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	entries := 0
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		entries++
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Failed to count cache entries: %v", err)
	}

	return Stats{
		Backend: "redis",
		Entries: entries,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		TTL:     c.ttl.String(),
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
