package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// computeFunc produces a wheel artifact on a cache miss.
type computeFunc[T any] func(ctx context.Context) (T, error)

const (
	storeTimeout = 5 * time.Second
	maxJitter    = 15 * time.Second
)

// jitterTTL spreads the expiry of entries written in the same burst by up to
// maxJitter either way. Short TTLs are kept exact.
func jitterTTL(ttl time.Duration) time.Duration {
	if ttl <= time.Minute {
		return ttl
	}
	return ttl + time.Duration(rand.Int63n(int64(2*maxJitter)))-maxJitter
}

// readThrough serves key from c and falls back to fn on a miss. Concurrent
// misses for the same key share one call to fn. The computed value is written
// back asynchronously; a failed write only costs a future miss.
//
// A cache that errors is treated like an empty one so rendering keeps working
// while redis is down.
func readThrough[T any](
	ctx context.Context,
	c Cacher,
	sf *singleflight.Group,
	key string,
	ttl time.Duration,
	logger *zap.Logger,
	fn computeFunc[T],
) (T, error) {
	var zero T
	if logger == nil {
		logger = zap.NewNop()
	}

	var hit T
	switch err := c.Get(ctx, key, &hit); {
	case err == nil:
		logger.Debug("wheel served from cache", zap.String("key", key))
		return hit, nil
	case errors.Is(err, redis.Nil):
		logger.Debug("wheel not cached", zap.String("key", key))
	default:
		logger.Warn("cache read failed, rendering instead", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := sf.Do(key, func() (any, error) {
		out, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		go store(c, key, out, ttl, logger)
		return out, nil
	})
	if err != nil {
		logger.Debug("wheel computation failed", zap.String("key", key), zap.Error(err))
		return zero, err
	}
	if shared {
		logger.Debug("wheel computation shared", zap.String("key", key))
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %q has type %T", key, v)
	}
	return out, nil
}

func store(c Cacher, key string, v any, ttl time.Duration, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := c.Set(ctx, key, v, jitterTTL(ttl)); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	logger.Debug("wheel cached", zap.String("key", key))
}
