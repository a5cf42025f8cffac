package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := LoadConfig()

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("ALLOWED_ORIGINS", " https://clinic.example , ,https://admin.example")
	t.Setenv("AUTH_MAX_ATTEMPTS", "3")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("JOBS_ENABLED", "false")

	cfg := LoadConfig()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, []string{"https://clinic.example", "https://admin.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.True(t, cfg.Server.SecureCookie)
	assert.False(t, cfg.Jobs.Enabled)
}

func TestParseDurationFallsBack(t *testing.T) {
	assert.Equal(t, time.Hour, parseDuration("soon", time.Hour))
	assert.Equal(t, 90*time.Second, parseDuration("90s", time.Hour))
}
