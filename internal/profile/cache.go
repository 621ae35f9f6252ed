package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "username:"

// CachedLookup keeps resolved usernames in redis. Redis errors degrade to
// calling the upstream lookup directly.
type CachedLookup struct {
	next Lookup
	rdb  redis.UniversalClient
	ttl  time.Duration
	log  *zap.Logger
}

func NewCachedLookup(next Lookup, rdb redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	return &CachedLookup{next: next, rdb: rdb, ttl: ttl, log: logger.Named("profile")}
}

func cacheKey(address string) string {
	return keyPrefix + strings.ToLower(address)
}

func (c *CachedLookup) Username(ctx context.Context, address string) (string, error) {
	key := cacheKey(address)
	name, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		return name, nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn("username cache read", zap.String("key", key), zap.Error(err))
	}

	name, err = c.next.Username(ctx, address)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", nil
	}
	if err := c.rdb.Set(ctx, key, name, c.ttl).Err(); err != nil {
		c.log.Warn("username cache write", zap.String("key", key), zap.Error(err))
	}
	return name, nil
}
