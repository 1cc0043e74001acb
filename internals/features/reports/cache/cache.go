// Package cache is a small optional Redis read cache for the denormalized
// reports aggregate. When REDIS_ADDR is unset every call is a no-op and the
// reports page reads straight from Postgres.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	AllDataKey = "reports:all-data"
	ttl        = 30 * time.Second
)

type Cache struct {
	rdb *redis.Client
}

// New connects to Redis, or returns a disabled cache when addr is empty.
func New(addr string) *Cache {
	if addr == "" {
		return &Cache{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[WARN] redis unreachable (%v), reports cache disabled", err)
		return &Cache{}
	}
	log.Println("✅ redis connected, reports cache enabled")
	return &Cache{rdb: rdb}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[WARN] redis set %s: %v", key, err)
	}
}

// Invalidate drops the aggregate after any school or result mutation.
func (c *Cache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Del(ctx, AllDataKey).Err(); err != nil {
		log.Printf("[WARN] redis del %s: %v", AllDataKey, err)
	}
}
