package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRIBTTL = 5 * time.Minute

// RIBCache remembers, in Redis, RIBs that are known to exist.
// Key format: rib:<rib> → "1". Absent RIBs are never stored.
type RIBCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRIBCache creates a RIBCache wrapping the given Redis client.
func NewRIBCache(client *redis.Client, ttl time.Duration) *RIBCache {
	if ttl <= 0 {
		ttl = defaultRIBTTL
	}
	return &RIBCache{client: client, ttl: ttl}
}

// Has reports whether rib was marked as existing. A missing key is not an error.
func (c *RIBCache) Has(ctx context.Context, rib string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(rib)).Result()
	if err != nil {
		return false, fmt.Errorf("rib cache get: %w", err)
	}
	return n > 0, nil
}

// MarkExists records rib as existing until the TTL elapses.
func (c *RIBCache) MarkExists(ctx context.Context, rib string) error {
	if err := c.client.Set(ctx, c.key(rib), "1", c.ttl).Err(); err != nil {
		return fmt.Errorf("rib cache set: %w", err)
	}
	return nil
}

func (c *RIBCache) key(rib string) string {
	return "rib:" + rib
}
