//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisCounter(t *testing.T) *RedisInteractionCounter {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "failed to start redis container")

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisInteractionCounter(client)
}

func TestRedisCounter_StartsAtZeroAndIncrements(t *testing.T) {
	counter := newRedisCounter(t)
	ctx := context.Background()

	n, err := counter.GetInteractionCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = counter.IncrementInteractionCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedisCounter_ConcurrentIncrements(t *testing.T) {
	counter := newRedisCounter(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := counter.IncrementInteractionCount(ctx, "u2"); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := counter.GetInteractionCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
