// Package idempotency drops Telegram update redeliveries so every button
// press executes at most once.
package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 24 * time.Hour

// Deduplicator answers whether an update key was already processed, marking
// it as processed on first sight.
type Deduplicator interface {
	Seen(ctx context.Context, key string) (bool, error)
}

// RedisDeduplicator marks keys with SETNX and lets the TTL reclaim them.
type RedisDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Deduplicator = (*RedisDeduplicator)(nil)

func NewRedisDeduplicator(client *redis.Client, ttl time.Duration) *RedisDeduplicator {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &RedisDeduplicator{client: client, ttl: ttl}
}

func (d *RedisDeduplicator) Seen(ctx context.Context, key string) (bool, error) {
	fresh, err := d.client.SetNX(ctx, "update:"+key, "1", d.ttl).Result()
	if err != nil {
		return false, err
	}

	return !fresh, nil
}
