package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/expensefront/domain"
)

// RedisSessionStore implements domain.SessionStore on Redis, for shared-
// terminal deployments where several client processes present one session.
// The whole session is one key so save and clear stay atomic.
type RedisSessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSessionStore creates a redis-backed session store
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		key:    "expensefront:session",
		ttl:    ttl,
	}
}

// Save implements domain.SessionStore
func (s *RedisSessionStore) Save(ctx context.Context, token string, user *domain.User) error {
	data, err := json.Marshal(domain.Session{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.client.Set(ctx, s.key, data, s.ttl).Err()
}

// Load implements domain.SessionStore. A missing or unparseable value is
// reported as nothing stored; only transport failures surface as errors.
func (s *RedisSessionStore) Load(ctx context.Context) (string, *domain.User, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil, nil
		}
		return "", nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		// Corrupt payload: drop it so the next load is clean
		s.client.Del(ctx, s.key)
		return "", nil, nil
	}
	return sanitize(sess)
}

// Clear implements domain.SessionStore
func (s *RedisSessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

var _ domain.SessionStore = (*RedisSessionStore)(nil)
