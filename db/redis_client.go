package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get for missing or expired keys.
var ErrKeyNotFound = errors.New("key not found")

// RedisClient defines the key/value operations the session store needs.
type RedisClient interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
	Keys(pattern string) ([]string, error)
	GetContext() context.Context
	Ping() error
}
