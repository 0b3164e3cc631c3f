package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"overcooked-pos/pos-svc/internal/domain"
	"overcooked-pos/pos-svc/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "sess:"

// RedisCache stores one-time codes and tokens under their own TTL.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

var _ service.CodeStore = (*RedisCache)(nil)

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	return value, err
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// RedisSessions maps opaque session ids to user ids.
type RedisSessions struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{Client: client, TTL: ttl}
}

func (s *RedisSessions) Create(ctx context.Context, userID int) (string, error) {
	id := uuid.NewString()
	if err := s.Client.Set(ctx, sessionPrefix+id, strconv.Itoa(userID), s.TTL).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// UserID resolves a session. It returns domain.ErrNotFound for unknown or
// expired sessions.
func (s *RedisSessions) UserID(ctx context.Context, sessionID string) (int, error) {
	value, err := s.Client.Get(ctx, sessionPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

func (s *RedisSessions) Destroy(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionPrefix+sessionID).Err()
}
