// Package config handles loading and validation of application configuration
// from environment variables. Supports .env files via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-in-production"

// Store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Notification backends.
const (
	NotifyLog   = "log"
	NotifyRedis = "redis"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        int
	Environment string // "development" | "staging" | "production"
	StaticDir   string

	// Storage
	StoreBackend   string
	DatabaseURL    string
	RedisURL       string
	RedisKeyPrefix string

	// Security
	JWTSecret      string
	AllowedOrigins []string
	RateLimitRPM   int
	SessionTimeout time.Duration
	PasswordMode   string

	// Complaints
	EscalationAge time.Duration
	NotifyBackend string
	NotifyStream  string

	// Merkle tree
	IntegrityInterval time.Duration

	// Ward incident history; 0 seeds from the clock.
	IncidentSeed int64
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "development"),
		StaticDir:   getEnv("STATIC_DIR", "../dist"),

		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", StoreMemory)),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "waterlogging:"),

		JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		RateLimitRPM:   getEnvInt("RATE_LIMIT_RPM", 60),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 24*time.Hour),
		PasswordMode:   strings.ToLower(getEnv("PASSWORD_MODE", "plaintext")),

		EscalationAge: getEnvDuration("ESCALATION_AGE", 48*time.Hour),
		NotifyBackend: strings.ToLower(getEnv("NOTIFY_BACKEND", NotifyLog)),
		NotifyStream:  getEnv("NOTIFY_STREAM", "complaint-notifications"),

		IntegrityInterval: getEnvDuration("INTEGRITY_INTERVAL", 5*time.Minute),

		IncidentSeed: getEnvInt64("INCIDENT_SEED", 0),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.NotifyBackend {
	case NotifyLog, NotifyRedis:
	default:
		return fmt.Errorf("unknown NOTIFY_BACKEND %q", c.NotifyBackend)
	}

	switch c.PasswordMode {
	case "plaintext", "bcrypt":
	default:
		return fmt.Errorf("unknown PASSWORD_MODE %q", c.PasswordMode)
	}

	if c.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if c.IntegrityInterval <= 0 {
		return fmt.Errorf("INTEGRITY_INTERVAL must be positive")
	}

	// Validate required fields in production
	if c.Environment == "production" && c.JWTSecret == devJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
