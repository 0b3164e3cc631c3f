package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const deliveryPrefix = "notify:sent:"

// RedisDeliveryLog records delivered message keys for TTL.
type RedisDeliveryLog struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDeliveryLog(client *redis.Client, ttl time.Duration) *RedisDeliveryLog {
	return &RedisDeliveryLog{Client: client, TTL: ttl}
}

// MarkSent reports true when key had not been recorded before.
func (l *RedisDeliveryLog) MarkSent(ctx context.Context, key string) (bool, error) {
	return l.Client.SetNX(ctx, deliveryPrefix+key, time.Now().Unix(), l.TTL).Result()
}

func (l *RedisDeliveryLog) Forget(ctx context.Context, key string) error {
	return l.Client.Del(ctx, deliveryPrefix+key).Err()
}
