// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// Config holds all service settings
type Config struct {
	// Run mode: serve, token or hash-key
	RunMode string

	// HTTP
	Host         string
	Port         int
	MaxBodyBytes int64
	CORSOrigins  []string
	H2CEnabled   bool

	// Recognizer sidecar; empty disables entity recognition
	RecognizerURL     string
	RecognizerTimeout time.Duration

	// PostgreSQL audit log; empty keeps events in memory
	DatabaseURL        string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	AuditCapacity      int
	RedisURL           string
	RateLimitPerMinute int

	// Auth; with neither set the service runs unauthenticated
	JWTSecret string
	APIKeys   []domain.APIKey

	// Observability
	SentryDSN         string
	SentryEnvironment string
	LogLevel          string
	LogFormat         string
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then builds the Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	apiKeys, err := ParseAPIKeys(getEnv("API_KEY_HASHES", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RunMode:            getEnv("RUN_MODE", "serve"),
		Host:               getEnv("HOST", "0.0.0.0"),
		Port:               getEnvInt("PORT", 8080),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 20<<20)),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		H2CEnabled:         getEnvBool("H2C_ENABLED", false),
		RecognizerURL:      getEnv("RECOGNIZER_URL", ""),
		RecognizerTimeout:  time.Duration(getEnvInt("RECOGNIZER_TIMEOUT_SEC", 30)) * time.Second,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 2),
		AuditCapacity:      getEnvInt("AUDIT_MEMORY_CAPACITY", 1000),
		RedisURL:           getEnv("REDIS_URL", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		APIKeys:            apiKeys,
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		SentryEnvironment:  getEnv("SENTRY_ENVIRONMENT", "production"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: PORT must be between 1 and 65535", domain.ErrInvalidInput)
	}
	if cfg.RecognizerTimeout <= 0 {
		return nil, fmt.Errorf("%w: RECOGNIZER_TIMEOUT_SEC must be positive", domain.ErrInvalidInput)
	}

	return cfg, nil
}

// AuthEnabled reports whether any credentials are configured
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" || len(c.APIKeys) > 0
}

// NewLogger builds the slog logger described by LOG_LEVEL and LOG_FORMAT
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseAPIKeys parses a comma separated list of client:hash or
// client:role:hash entries. Hashes are bcrypt strings, which never contain
// a colon.
func ParseAPIKeys(s string) ([]domain.APIKey, error) {
	var keys []domain.APIKey
	for _, entry := range splitList(s) {
		parts := strings.Split(entry, ":")
		key := domain.APIKey{Role: domain.RoleClient}
		switch len(parts) {
		case 2:
			key.ClientID, key.Hash = parts[0], parts[1]
		case 3:
			key.ClientID, key.Role, key.Hash = parts[0], domain.Role(parts[1]), parts[2]
		default:
			return nil, fmt.Errorf("%w: API_KEY_HASHES entry must be client:hash or client:role:hash", domain.ErrInvalidInput)
		}
		if key.ClientID == "" || key.Hash == "" {
			return nil, fmt.Errorf("%w: API_KEY_HASHES entry has an empty client or hash", domain.ErrInvalidInput)
		}
		if !key.Role.IsValid() {
			return nil, fmt.Errorf("%w: API_KEY_HASHES role %q for client %s", domain.ErrInvalidInput, key.Role, key.ClientID)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
