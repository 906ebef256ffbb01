package driven

import (
	"context"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// AuditStore records one event per redaction request (PostgreSQL).
// Events hold counts only, never text.
type AuditStore interface {
	// Save records an event
	Save(ctx context.Context, event *domain.RedactionEvent) error

	// List returns the most recent events, newest first
	List(ctx context.Context, limit int) ([]*domain.RedactionEvent, error)

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error
}
