package businessflow

import (
	"context"
	"errors"
	"time"

	"github.com/amirphl/ppp-rental/utils"
	"github.com/redis/go-redis/v9"
)

// CatalogCache holds the serialized public equipment listing.
type CatalogCache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(context.Context) ([]byte, bool, error) { return nil, false, nil }
func (NoopCatalogCache) Set(context.Context, []byte) error         { return nil }
func (NoopCatalogCache) Invalidate(context.Context) error          { return nil }

// RedisCatalogCache stores the listing under one key with a TTL.
type RedisCatalogCache struct {
	rc  *redis.Client
	key string
	ttl time.Duration
}

func NewRedisCatalogCache(rc *redis.Client, prefix string, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rc: rc, key: prefix + utils.PublicEquipmentCacheKey, ttl: ttl}
}

func (c *RedisCatalogCache) Get(ctx context.Context) ([]byte, bool, error) {
	bs, err := c.rc.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, NewBusinessError("CACHE_READ_FAILED", "Failed to read catalog cache", errors.Join(ErrCacheUnavailable, err))
	}
	return bs, len(bs) > 0, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, payload []byte) error {
	if err := c.rc.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		return NewBusinessError("CACHE_WRITE_FAILED", "Failed to write catalog cache", errors.Join(ErrCacheUnavailable, err))
	}
	return nil
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.rc.Del(ctx, c.key).Err(); err != nil {
		return NewBusinessError("CACHE_DELETE_FAILED", "Failed to invalidate catalog cache", errors.Join(ErrCacheUnavailable, err))
	}
	return nil
}
