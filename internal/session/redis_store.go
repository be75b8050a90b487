package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "console:session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

// NewRedisStoreFromURL parses url and pings the server before returning.
func NewRedisStoreFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStore(client, ttl), nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Create(ctx context.Context, user User, token string) (*Session, error) {
	s := newSession(user, token, r.now(), r.ttl)

	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(s.ID), payload, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	s := &Session{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *RedisStore) End(ctx context.Context, s *Session) error {
	if s == nil {
		return nil
	}
	s.markEnded()
	if err := r.client.Del(ctx, redisKey(s.ID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
