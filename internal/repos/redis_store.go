package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis, without expiry unless built WithTTL.
type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, namespace: "audiotech:"}
}

// WithTTL returns a store over the same client whose keys expire after ttl
// without a read or write.
func (r *RedisStore) WithTTL(ttl time.Duration) *RedisStore {
	cp := *r
	cp.ttl = ttl
	return &cp
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	var cmd *redis.StringCmd
	if r.ttl > 0 {
		cmd = r.client.GetEx(ctx, r.namespace+key, r.ttl)
	} else {
		cmd = r.client.Get(ctx, r.namespace+key)
	}
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.namespace+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.namespace+key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
