package upstream

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small read-through cache for catalog and location
// responses, which change rarely and back every page of the shop.
// Mutating calls never touch it. A nil *Cache is a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects a cache to the Redis instance at addr.
func NewCache(addr string, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Get returns the cached body for key, if any. Cache failures are
// treated as misses; the caller falls through to the API.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a response body under key for the cache TTL. Errors are
// ignored; the cache is an optimization, not a dependency.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key, value, c.ttl)
}

// Delete drops a cached entry, used when an admin mutates the data
// behind it. Errors are ignored for the same reason Set ignores them.
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key)
}

func cacheKey(op, qualifier string) string {
	if qualifier == "" {
		return "storefront:" + op
	}
	return "storefront:" + op + ":" + qualifier
}
