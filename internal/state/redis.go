package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 30 * 24 * time.Hour

// RedisStore keeps client state in redis with a sliding TTL: every read and
// write pushes the expiry out again.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, clientID, key string) ([]byte, error) {
	data, err := r.client.GetEx(ctx, redisKey(clientID, key), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, clientID, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKey(clientID, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, clientID, key string) error {
	if err := r.client.Del(ctx, redisKey(clientID, key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func redisKey(clientID, key string) string {
	return fmt.Sprintf("state:%s:%s", clientID, key)
}
