package recognizer

import (
	"context"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Ensure Disabled implements Recognizer
var _ driven.Recognizer = Disabled{}

// Disabled finds no entities. It stands in when no model is configured,
// leaving only pattern detection active.
type Disabled struct{}

// Recognize always returns no entities
func (Disabled) Recognize(context.Context, string) ([]domain.Entity, error) {
	return nil, nil
}

// Name returns the recognizer name
func (Disabled) Name() string {
	return "disabled"
}

// HealthCheck always succeeds
func (Disabled) HealthCheck(context.Context) error {
	return nil
}

// Close is a no-op
func (Disabled) Close() error {
	return nil
}
