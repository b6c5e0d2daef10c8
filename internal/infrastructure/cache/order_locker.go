package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oficina_quotes/internal/usecase/interfaces"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL     = 30 * time.Second
	defaultLockBackoff = 100 * time.Millisecond
	defaultLockRetries = 20
)

// ErrLockBusy is returned when another instance holds the order lock for the
// whole retry window.
var ErrLockBusy = errors.New("service order lock is busy")

// RedisOrderLocker serializes quote creation per service order across
// instances. The quote store stays the source of truth; the lock only keeps
// concurrent builders from doing wasted work.
type RedisOrderLocker struct {
	locker  *redislock.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

var _ interfaces.IServiceOrderLocker = (*RedisOrderLocker)(nil)

func NewRedisOrderLocker(rdb *redis.Client) *RedisOrderLocker {
	return &RedisOrderLocker{
		locker:  redislock.New(rdb),
		ttl:     defaultLockTTL,
		retries: defaultLockRetries,
		backoff: defaultLockBackoff,
	}
}

func lockKey(serviceOrderID string) string {
	return fmt.Sprintf("lock:quote:%s", serviceOrderID)
}

func (l *RedisOrderLocker) Lock(ctx context.Context, serviceOrderID string) (func(), error) {
	lock, err := l.locker.Obtain(ctx, lockKey(serviceOrderID), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockBusy
	}
	if err != nil {
		return nil, err
	}
	return func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}, nil
}
