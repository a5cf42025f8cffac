package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Server   ServerConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Jobs     JobsConfig
	Seed     SeedConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type ServerConfig struct {
	Port         string
	GinMode      string
	SecureCookie bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig is optional. An empty Addr keeps login throttling in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	MaxLoginAttempts int
	LockoutWindow    time.Duration
}

type JobsConfig struct {
	Enabled        bool
	ReminderSpec   string
	TokenPurgeSpec string
}

type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "mysql"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "clinic_management"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			AccessSecret:       getEnv("JWT_ACCESS_SECRET", "your-access-secret-key"),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
			RefreshTokenExpiry: parseDuration(getEnv("REFRESH_TOKEN_EXPIRY", "168h"), 168*time.Hour),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			GinMode:      getEnv("GIN_MODE", "debug"),
			SecureCookie: parseBool(getEnv("SECURE_COOKIE", "false")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Auth: AuthConfig{
			MaxLoginAttempts: parseInt(getEnv("AUTH_MAX_ATTEMPTS", "5"), 5),
			LockoutWindow:    parseDuration(getEnv("AUTH_LOCKOUT_WINDOW", "15m"), 15*time.Minute),
		},
		Jobs: JobsConfig{
			Enabled:        parseBool(getEnv("JOBS_ENABLED", "true")),
			ReminderSpec:   getEnv("JOBS_REMINDER_SPEC", "0 18 * * *"),
			TokenPurgeSpec: getEnv("JOBS_TOKEN_PURGE_SPEC", "@hourly"),
		},
		Seed: SeedConfig{
			AdminName:     getEnv("ADMIN_NAME", "Administrator"),
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "change-me-now"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: parseBool(getEnv("LOG_PRETTY", "false")),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func parseList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
