package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// DB is the audit database pool
type DB struct {
	*sql.DB
}

// Config holds pool and startup settings for the audit database
type Config struct {
	URL string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// ConnectAttempts is how often the first ping is tried before giving up.
	// The database container often comes up after the service does.
	ConnectAttempts int
	RetryDelay      time.Duration
}

// DefaultConfig returns pool settings sized for a single small table
func DefaultConfig(url string) Config {
	return Config{
		URL:             url,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnectAttempts: 5,
		RetryDelay:      time.Second,
	}
}

// Connect opens the pool and waits until the server answers a ping
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	pool, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	attempts := max(cfg.ConnectAttempts, 1)
	for attempt := 1; ; attempt++ {
		err = pool.PingContext(ctx)
		if err == nil {
			return &DB{DB: pool}, nil
		}
		if attempt >= attempts {
			break
		}
		select {
		case <-ctx.Done():
			_ = pool.Close()
			return nil, fmt.Errorf("audit database not reachable: %w", ctx.Err())
		case <-time.After(cfg.RetryDelay):
		}
	}

	_ = pool.Close()
	return nil, fmt.Errorf("audit database not reachable after %d attempts: %w", attempts, err)
}

// InitSchema creates the audit table and its indexes if missing
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply audit schema: %w", err)
	}
	return nil
}

// NullString maps "" to NULL
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
