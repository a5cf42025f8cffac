package service

import (
	"context"
	"strings"
	"sync"
	"time"
)

// LoginLimiter counts failed sign-ins per key inside a sliding lockout window
type LoginLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// LimiterKey normalises an email into a limiter key
func LimiterKey(email string) string {
	return "login:attempts:" + strings.ToLower(strings.TrimSpace(email))
}

type attemptWindow struct {
	count   int
	expires time.Time
}

// MemoryLoginLimiter keeps counters in process. Used when Redis is not configured.
type MemoryLoginLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	attempts map[string]*attemptWindow
	now      func() time.Time
}

func NewMemoryLoginLimiter(max int, window time.Duration) *MemoryLoginLimiter {
	return &MemoryLoginLimiter{
		max:      max,
		window:   window,
		attempts: make(map[string]*attemptWindow),
		now:      time.Now,
	}
}

func (l *MemoryLoginLimiter) Blocked(_ context.Context, key string) (bool, error) {
	if l.max <= 0 {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.live(key)
	return entry != nil && entry.count >= l.max, nil
}

func (l *MemoryLoginLimiter) Fail(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.live(key)
	if entry == nil {
		entry = &attemptWindow{expires: l.now().Add(l.window)}
		l.attempts[key] = entry
	}
	entry.count++
	return nil
}

func (l *MemoryLoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
	return nil
}

// live returns the entry for key, dropping it when its window has passed. Caller holds mu.
func (l *MemoryLoginLimiter) live(key string) *attemptWindow {
	entry, ok := l.attempts[key]
	if !ok {
		return nil
	}
	if !l.now().Before(entry.expires) {
		delete(l.attempts, key)
		return nil
	}
	return entry
}
