package db

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeenCache is an optional Redis front for the product existence
// check. It only ever short-circuits positive lookups; a miss always
// falls through to Postgres.
type SeenCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewSeenCache(addr, password string, db int, keyPrefix string, ttl time.Duration) *SeenCache {
	return &SeenCache{
		client:    redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *SeenCache) Close() error {
	return c.client.Close()
}

// Seen returns the cached product id for a URL hash, or nil on a miss.
func (c *SeenCache) Seen(ctx context.Context, urlHash string) (*int64, error) {
	val, err := c.client.Get(ctx, c.keyPrefix+urlHash).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *SeenCache) Mark(ctx context.Context, urlHash string, productID int64) error {
	return c.client.Set(ctx, c.keyPrefix+urlHash, strconv.FormatInt(productID, 10), c.ttl).Err()
}
