package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisStore keeps collections as plain string values, for shops that run the
// service on more than one machine against a LAN cache.
type RedisStore struct {
	Client *redis.Client
	prefix string
}

func NewRedisStore(ctx context.Context, cfg *RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return &RedisStore{Client: client, prefix: cfg.KeyPrefix}, nil
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := r.Client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	return r.Client.Set(ctx, r.prefix+key, data, 0).Err()
}

func (r *RedisStore) Close() error {
	return r.Client.Close()
}
