// Package lock provides the critical section every stock mutation runs in.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotObtained is returned when the shared lock could not be acquired in time.
var ErrNotObtained = errors.New("stock lock not obtained")

// Locker serialises stock mutations. Acquire blocks until the section is held
// and returns the function that releases it.
type Locker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Local is an in-process mutex, sufficient for a single running instance.
type Local struct {
	mu sync.Mutex
}

// NewLocal returns an in-process locker.
func NewLocal() *Local {
	return &Local{}
}

// Acquire takes the mutex.
func (l *Local) Acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	return l.mu.Unlock, nil
}

const (
	defaultKey   = "fleetstock:stock"
	defaultTTL   = 30 * time.Second
	retryBackoff = 100 * time.Millisecond
)

// Redis shares the critical section between instances through a Redis lock.
// It also takes a local mutex so goroutines of one instance queue locally
// instead of polling Redis.
type Redis struct {
	local  Local
	client *redislock.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis builds a Redis-backed locker over an established client.
func NewRedis(rdb *redis.Client, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{
		client: redislock.New(rdb),
		key:    defaultKey,
		ttl:    defaultTTL,
		logger: logger,
	}
}

// Acquire obtains the shared lock, retrying until ctx is done.
func (r *Redis) Acquire(ctx context.Context) (func(), error) {
	unlockLocal, err := r.local.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	lock, err := r.client.Obtain(ctx, r.key, r.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryBackoff),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		unlockLocal()
		return nil, ErrNotObtained
	}
	if err != nil {
		unlockLocal()
		return nil, fmt.Errorf("obtain redis lock %s: %w", r.key, err)
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			r.logger.Warn("failed to release redis lock", zap.String("key", r.key), zap.Error(err))
		}
		unlockLocal()
	}, nil
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}
