package driving

import (
	"context"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// AdminService exposes usage, audit and recognizer management to admins
type AdminService interface {
	// Stats returns aggregate usage counters
	Stats(ctx context.Context) (*domain.UsageStats, error)

	// RecentEvents returns the most recent audit events, newest first
	RecentEvents(ctx context.Context, limit int) ([]*domain.RedactionEvent, error)

	// RecognizerStatus reports the current recognizer and its health
	RecognizerStatus(ctx context.Context) domain.RecognizerStatus

	// UpdateRecognizer swaps the recognizer for one at a new endpoint.
	// The current recognizer stays in place if the new one is unhealthy.
	UpdateRecognizer(ctx context.Context, req domain.UpdateRecognizerRequest) (domain.RecognizerStatus, error)

	// Ready reports whether every configured backend is reachable
	Ready(ctx context.Context) error
}
