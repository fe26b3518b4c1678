package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"reserve-assistant/db"
	"reserve-assistant/models"
	"reserve-assistant/models/apperr"
)

// SEARCH_SESSION_KEY_FORMAT is used to store one search session per id.
const SEARCH_SESSION_KEY_FORMAT = "search_session_v1:%s"

// RedisSessionDAO stores search sessions as JSON under a TTL.
type RedisSessionDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisSessionDAO initializes a RedisSessionDAO with the Redis client.
func NewRedisSessionDAO(client db.RedisClient, ttl time.Duration) *RedisSessionDAO {
	return &RedisSessionDAO{client: client, ttl: ttl}
}

// SaveSession writes the session, refreshing its TTL.
func (dao *RedisSessionDAO) SaveSession(s *models.SearchSession) error {
	key := fmt.Sprintf(SEARCH_SESSION_KEY_FORMAT, s.ID)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal search session %s: %w", s.ID, err)
	}
	if err := dao.client.Set(key, string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set search session in redis: %w", err)
	}
	return nil
}

// GetSession loads a session; unknown or expired ids yield apperr.ErrSessionNotFound.
func (dao *RedisSessionDAO) GetSession(id string) (*models.SearchSession, error) {
	key := fmt.Sprintf(SEARCH_SESSION_KEY_FORMAT, id)
	str, err := dao.client.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get search session from redis: %w", err)
	}

	var s models.SearchSession
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search session JSON: %w", err)
	}
	return &s, nil
}

func (dao *RedisSessionDAO) DeleteSession(id string) error {
	key := fmt.Sprintf(SEARCH_SESSION_KEY_FORMAT, id)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete search session key %s: %w", key, err)
	}
	return nil
}

// ListSessionIDs returns the ids of every stored session.
func (dao *RedisSessionDAO) ListSessionIDs() ([]string, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(SEARCH_SESSION_KEY_FORMAT, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list search session keys: %w", err)
	}
	prefix := fmt.Sprintf(SEARCH_SESSION_KEY_FORMAT, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}
