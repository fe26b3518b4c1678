package db

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"
)

// MemoryRedisClient keeps keys in process memory. It backs the session store
// outside prod and in tests.
type MemoryRedisClient struct {
	data    map[string]memoryEntry
	mu      sync.RWMutex
	context context.Context
	now     func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// NewMemoryRedisClient initializes a new MemoryRedisClient.
func NewMemoryRedisClient(ctx context.Context) *MemoryRedisClient {
	return &MemoryRedisClient{
		data:    make(map[string]memoryEntry),
		context: ctx,
		now:     time.Now,
	}
}

func (m *MemoryRedisClient) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

// Set stores a key-value pair.
func (m *MemoryRedisClient) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

// Get retrieves a value for a given key.
func (m *MemoryRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.data[key]
	if !exists || m.expired(e) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return e.value, nil
}

func (m *MemoryRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys supports the glob subset of redis patterns that path.Match understands.
func (m *MemoryRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k, e := range m.data {
		if m.expired(e) {
			continue
		}
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, err
		}
		if ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// PurgeExpired drops expired keys and returns how many were removed.
func (m *MemoryRedisClient) PurgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for k, e := range m.data {
		if m.expired(e) {
			delete(m.data, k)
			purged++
		}
	}
	return purged
}

func (m *MemoryRedisClient) GetContext() context.Context {
	return m.context
}

func (m *MemoryRedisClient) Ping() error {
	return nil
}
