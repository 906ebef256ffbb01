package driven

import (
	"context"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// UsageStore aggregates request counters (Redis or in-memory)
type UsageStore interface {
	// Record adds one request's counts to the aggregate
	Record(ctx context.Context, mode domain.RedactionMode, counts domain.CategoryCounts, warnings int) error

	// Stats returns the aggregate counters
	Stats(ctx context.Context) (*domain.UsageStats, error)

	// Ping checks if the backend is healthy
	Ping(ctx context.Context) error
}

// RateLimiter bounds how many requests a client may make per window
type RateLimiter interface {
	// Allow reports whether the client may make another request now
	Allow(ctx context.Context, clientID string) (bool, error)
}
