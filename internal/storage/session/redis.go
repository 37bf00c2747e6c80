package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/auth"
)

// DefaultRedisKey holds the recruiter session
const DefaultRedisKey = "jobzone:recruiter_session"

// RedisStore keeps the session in Redis, shared by every server replica
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

var _ auth.SessionStore = (*RedisStore)(nil)

// NewRedisStore connects using a redis:// URL. A zero ttl keeps the session until logout.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("session: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session: ping redis: %w", err)
	}

	return &RedisStore{client: client, key: DefaultRedisKey, ttl: ttl}, nil
}

func (r *RedisStore) Get(ctx context.Context) (domain.AuthSession, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AuthSession{}, false, nil
	}
	if err != nil {
		return domain.AuthSession{}, false, fmt.Errorf("session: redis get: %w", err)
	}

	var s domain.AuthSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.AuthSession{}, false, fmt.Errorf("session: decode: %w", err)
	}
	return s, true, nil
}

func (r *RedisStore) Set(ctx context.Context, s domain.AuthSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}

// Shutdown closes the Redis connection pool
func (r *RedisStore) Shutdown(context.Context) error {
	return r.client.Close()
}
