package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/models"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// ErrCacheMiss indicates the session is not cached.
var ErrCacheMiss = errors.New("session not in cache")

// SessionCache is a read-through cache for session records, keyed by session
// id and invalidated on the same writes that change the row.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Config holds the cache dependencies
type Config struct {
	RedisClient *redis.Client
	TTL         time.Duration
}

// NewSessionCache creates a new session cache
func NewSessionCache(cfg *Config) (*SessionCache, error) {
	if cfg == nil || cfg.RedisClient == nil {
		return nil, errors.New("redis client is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionCache{
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Get returns the cached session or ErrCacheMiss.
func (c *SessionCache) Get(ctx context.Context, sessionID string) (*models.TherapySession, error) {
	data, err := c.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from cache: %w", err)
	}

	var session models.TherapySession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %w", err)
	}
	return &session, nil
}

// Set stores the session with the configured TTL.
func (c *SessionCache) Set(ctx context.Context, session *models.TherapySession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := c.client.Set(ctx, sessionKey(session.SessionID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session to cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached session, if any.
func (c *SessionCache) Invalidate(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached session: %w", err)
	}
	return nil
}
