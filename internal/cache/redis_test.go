package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"clinic-management-backend/internal/config"
	"clinic-management-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ service.LoginLimiter = (*RedisLoginLimiter)(nil)

// Runs against a real server: REDIS_TEST_ADDR=localhost:6379 go test ./internal/cache
func TestRedisLoginLimiter(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, config.RedisConfig{Addr: addr, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRedisLoginLimiter(client, 2, time.Minute)
	key := service.LimiterKey("redis-test@example.com")
	require.NoError(t, limiter.Reset(ctx, key))

	blocked, err := limiter.Blocked(ctx, key)
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, limiter.Fail(ctx, key))
	require.NoError(t, limiter.Fail(ctx, key))
	blocked, err = limiter.Blocked(ctx, key)
	require.NoError(t, err)
	assert.True(t, blocked)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, limiter.Reset(ctx, key))
	blocked, _ = limiter.Blocked(ctx, key)
	assert.False(t, blocked)
}

func TestNewRedisClientFailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
