package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// KVRedisClient struct holds the Redis client and context
type KVRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewKVRedisClient wraps a connected go-redis client.
func NewKVRedisClient(ctx context.Context, client *redis.Client) *KVRedisClient {
	return &KVRedisClient{
		client: client,
		ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis; a zero ttl keeps it forever.
func (r *KVRedisClient) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Get retrieves the value for a given key from Redis
func (r *KVRedisClient) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return val, err
}

func (r *KVRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Keys lists keys matching pattern using SCAN rather than KEYS.
func (r *KVRedisClient) Keys(pattern string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(r.ctx, 0, pattern, 100).Iterator()
	for iter.Next(r.ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *KVRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *KVRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}
