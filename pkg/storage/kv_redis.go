package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cmdable is the subset of redis commands the substrate needs.
type Cmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

type RedisKV struct {
	rdb Cmdable
}

func NewRedisKV(rdb Cmdable) *RedisKV {
	return &RedisKV{rdb: rdb}
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := kv.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNoRecord
	}
	if err != nil {
		return "", err
	}

	return val, nil
}

func (kv *RedisKV) Set(ctx context.Context, key string, value string) error {
	return kv.rdb.Set(ctx, key, value, 0).Err()
}
