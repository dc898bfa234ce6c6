package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

// Read-through caches for the promo and channel registries. Records change
// rarely; a short TTL keeps drift bounded while sparing MySQL the per-
// keystroke promo lookups the storefront issues.

type CachedPromoRepo struct {
	inner usecase.PromoRepo
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedPromoRepo(inner usecase.PromoRepo, rdb *redis.Client, ttl time.Duration) *CachedPromoRepo {
	return &CachedPromoRepo{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedPromoRepo) GetPromo(ctx context.Context, code string) (*domain.PromoCode, error) {
	key := "promo:" + code
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var p domain.PromoCode
		if json.Unmarshal(raw, &p) == nil {
			return &p, nil
		}
	}
	p, err := c.inner.GetPromo(ctx, code)
	if err != nil || p == nil {
		return p, err
	}
	if raw, err := json.Marshal(p); err == nil {
		_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}
	return p, nil
}

type CachedChannelRepo struct {
	inner usecase.ChannelRepo
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedChannelRepo(inner usecase.ChannelRepo, rdb *redis.Client, ttl time.Duration) *CachedChannelRepo {
	return &CachedChannelRepo{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedChannelRepo) GetChannel(ctx context.Context, code string) (*domain.PaymentChannel, error) {
	key := "channel:" + code
	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var ch domain.PaymentChannel
		if json.Unmarshal(raw, &ch) == nil {
			return &ch, nil
		}
	}
	ch, err := c.inner.GetChannel(ctx, code)
	if err != nil || ch == nil {
		return ch, err
	}
	if raw, err := json.Marshal(ch); err == nil {
		_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}
	return ch, nil
}

var (
	_ usecase.PromoRepo   = (*CachedPromoRepo)(nil)
	_ usecase.ChannelRepo = (*CachedChannelRepo)(nil)
)
