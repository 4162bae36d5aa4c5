package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/registration-service/internal/persistence"
)

// RedisKV adapts a redis client to the KV interface.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV builds a KV over the shared redis connection.
func NewRedisKV(r *persistence.Redis) *RedisKV {
	return &RedisKV{client: r.Client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}
