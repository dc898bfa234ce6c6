package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/topupid/checkout-api/internal/usecase"
)

// RedisOrderCache fronts the frequent "is my order paid yet" polling so it
// doesn't hit MySQL.
type RedisOrderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisOrderCache(rdb *redis.Client, ttl time.Duration) *RedisOrderCache {
	return &RedisOrderCache{rdb: rdb, ttl: ttl}
}

func (c *RedisOrderCache) SetStatus(ctx context.Context, invoice string, status string) error {
	return c.rdb.Set(ctx, "order:status:"+invoice, status, c.ttl).Err()
}

func (c *RedisOrderCache) GetStatus(ctx context.Context, invoice string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, "order:status:"+invoice).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

var _ usecase.OrderCache = (*RedisOrderCache)(nil)
