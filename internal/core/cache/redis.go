package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	RDB    *redis.Client
	prefix string
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		prefix: "paroquia:",
	}
}

func (c *Cache) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

// Claim marks key as taken for ttl. It reports false when another caller
// already holds the key.
func (c *Cache) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.RDB.SetNX(ctx, c.prefix+key, time.Now().Unix(), ttl).Result()
}

func (c *Cache) Close() error { return c.RDB.Close() }
