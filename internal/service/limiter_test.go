package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterKeyNormalisesEmail(t *testing.T) {
	assert.Equal(t, "login:attempts:jane@example.com", LimiterKey("  Jane@Example.COM "))
}

func TestMemoryLoginLimiterBlocksAfterMax(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLoginLimiter(3, time.Minute)
	key := LimiterKey("jane@example.com")

	for i := 0; i < 2; i++ {
		require.NoError(t, l.Fail(ctx, key))
	}
	blocked, err := l.Blocked(ctx, key)
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, l.Fail(ctx, key))
	blocked, _ = l.Blocked(ctx, key)
	assert.True(t, blocked)

	other, _ := l.Blocked(ctx, LimiterKey("john@example.com"))
	assert.False(t, other)

	require.NoError(t, l.Reset(ctx, key))
	blocked, _ = l.Blocked(ctx, key)
	assert.False(t, blocked)
}

func TestMemoryLoginLimiterWindowExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLoginLimiter(1, 15*time.Minute)
	l.now = func() time.Time { return now }
	key := LimiterKey("jane@example.com")

	require.NoError(t, l.Fail(ctx, key))
	blocked, _ := l.Blocked(ctx, key)
	assert.True(t, blocked)

	now = now.Add(15 * time.Minute)
	blocked, _ = l.Blocked(ctx, key)
	assert.False(t, blocked)
}

func TestMemoryLoginLimiterDisabled(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLoginLimiter(0, time.Minute)
	key := LimiterKey("jane@example.com")

	require.NoError(t, l.Fail(ctx, key))
	blocked, err := l.Blocked(ctx, key)
	require.NoError(t, err)
	assert.False(t, blocked)
}
