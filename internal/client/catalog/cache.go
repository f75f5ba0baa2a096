package catalog

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/notflix/internal/logging"
	"github.com/redis/go-redis/v9"
)

const cachePrefix = "notflix:tmdb"

// Cache stores raw catalog responses. Misses and failures are the same to
// callers.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NopCache) Set(context.Context, string, []byte)         {}

func cacheKey(path string, params url.Values) string {
	sum := sha1.Sum([]byte(path + "?" + params.Encode()))
	return fmt.Sprintf("%s:%x", cachePrefix, sum[:])
}

type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisCache connects to addr. An empty address or an unreachable server
// yields a NopCache so the catalog keeps working uncached.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration, logger logging.Logger) Cache {
	if addr == "" {
		return NopCache{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		logger.Warn(ctx, "catalog cache disabled", "addr", addr, "error", err)
		_ = rdb.Close()
		return NopCache{}
	}

	return &RedisCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	bs, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn(ctx, "catalog cache get failed", "error", err)
		}
		return nil, false
	}
	return bs, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := r.rdb.SetEx(ctx, key, value, r.ttl).Err(); err != nil {
		r.logger.Warn(ctx, "catalog cache set failed", "error", err)
	}
}

func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
