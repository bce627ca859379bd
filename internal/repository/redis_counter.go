package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const interactionKeyPrefix = "lumen:interactions:"

// RedisInteractionCounter keeps interaction counters in Redis. INCR is
// atomic on the server, so no client-side locking is needed.
type RedisInteractionCounter struct {
	client redis.UniversalClient
}

// NewRedisInteractionCounter creates a counter that keeps one key per user
// in client.
func NewRedisInteractionCounter(client redis.UniversalClient) *RedisInteractionCounter {
	return &RedisInteractionCounter{client: client}
}

// NewRedisClient parses url, connects and pings.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (c *RedisInteractionCounter) GetInteractionCount(ctx context.Context, userID string) (int, error) {
	n, err := c.client.Get(ctx, interactionKeyPrefix+userID).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading interaction count: %w", err)
	}
	return n, nil
}

func (c *RedisInteractionCounter) IncrementInteractionCount(ctx context.Context, userID string) (int, error) {
	n, err := c.client.Incr(ctx, interactionKeyPrefix+userID).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing interaction count: %w", err)
	}
	return int(n), nil
}
