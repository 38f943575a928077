package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/reliefops/cva/internal/shared/logger"
)

const (
	defaultRedisLockTTL = 30 * time.Second
	redisRetryBackoff   = 50 * time.Millisecond
)

// RedisLocker serializes a key across every process sharing the Redis instance.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisLocker creates a Redis-backed locker. ttl bounds how long a crashed holder blocks others.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration, log logger.Interface) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultRedisLockTTL
	}
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		logger: log,
	}
}

// Lock retries until the context ends; callers bound the wait with a deadline.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(redisRetryBackoff),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		l.logger.Errorw("failed to obtain redis lock", "key", key, "error", err)
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func() {
		if err := lk.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warnw("failed to release redis lock", "key", key, "error", err)
		}
	}, nil
}
