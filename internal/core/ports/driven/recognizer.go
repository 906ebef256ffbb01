package driven

import (
	"context"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// Recognizer finds named entities in text.
// Implementations must be safe for concurrent use; the model behind them is
// shared by all in-flight requests.
type Recognizer interface {
	// Recognize returns entities with byte offsets into text
	Recognize(ctx context.Context, text string) ([]domain.Entity, error)

	// Name returns the recognizer name for logging and status reporting
	Name() string

	// HealthCheck verifies the recognizer is available
	HealthCheck(ctx context.Context) error

	// Close releases resources held by the recognizer
	Close() error
}

// RecognizerProvider returns the current recognizer.
// The recognizer may be replaced at runtime, so callers fetch it per request.
type RecognizerProvider interface {
	Recognizer() Recognizer
}

// RecognizerFactory builds recognizers from an endpoint configuration
type RecognizerFactory interface {
	// Create builds a recognizer for the endpoint. An empty endpoint yields a
	// recognizer that finds nothing.
	Create(endpoint string, timeoutSeconds int) (Recognizer, error)
}
