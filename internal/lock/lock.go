// Package lock serializes read-modify-write operations on a single record.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrBusy = errors.New("lock: resource busy, try again later")

type Locker interface {
	// Acquire waits until key is held, ctx is done or the locker gives up with
	// ErrBusy. The returned function releases it.
	Acquire(ctx context.Context, key string) (func(), error)
}

// Local holds one mutex per key within the process.
type Local struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	wait  time.Duration
	poll  time.Duration
}

func NewLocal() *Local {
	return &Local{
		locks: make(map[string]*sync.Mutex),
		wait:  2 * time.Second,
		poll:  5 * time.Millisecond,
	}
}

func (l *Local) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	if m.TryLock() {
		return m.Unlock, nil
	}

	deadline := time.NewTimer(l.wait)
	defer deadline.Stop()
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrBusy
		case <-ticker.C:
			if m.TryLock() {
				return m.Unlock, nil
			}
		}
	}
}

// Redis is a SET NX lock shared by every process using the same server.
type Redis struct {
	client   *redis.Client
	ttl      time.Duration
	attempts int
	backoff  time.Duration
	logger   logger.ZapLogger
}

func NewRedis(client *redis.Client, ttl time.Duration, log logger.ZapLogger) *Redis {
	return &Redis{client: client, ttl: ttl, attempts: 3, backoff: 100 * time.Millisecond, logger: log}
}

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	for i := 0; i < r.attempts; i++ {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { r.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff):
		}
	}
	return nil, ErrBusy
}

func (r *Redis) release(key, token string) {
	n, err := releaseScript.Run(context.Background(), r.client, []string{key}, token).Int()
	switch {
	case err != nil:
		r.logger.Warn("Failed to release lock, held until TTL", zap.String("key", key), zap.Error(err))
	case n == 0:
		r.logger.Warn("Lock expired or taken over before release", zap.String("key", key))
	}
}
