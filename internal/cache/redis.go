package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-management-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisLoginLimiter counts failed logins in Redis so every instance shares the lockout
type RedisLoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, max int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{client: client, max: max, window: window}
}

func (l *RedisLoginLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	if l.max <= 0 {
		return false, nil
	}

	count, err := l.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= l.max, nil
}

// Fail increments the counter; the first failure starts the window
func (l *RedisLoginLimiter) Fail(ctx context.Context, key string) error {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return l.client.Expire(ctx, key, l.window).Err()
	}
	return nil
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}
