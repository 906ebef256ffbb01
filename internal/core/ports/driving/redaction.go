package driving

import (
	"context"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// RedactionService replaces personal data with stable placeholders
type RedactionService interface {
	// RedactText redacts a flat string
	RedactText(ctx context.Context, req domain.TextRedactionRequest) (*domain.TextRedaction, error)

	// RedactDocument decodes a document, redacts it and re-encodes it
	RedactDocument(ctx context.Context, req domain.DocumentRedactionRequest) (*domain.DocumentRedactionResponse, error)

	// MediaTypes returns the document media types that can be redacted
	MediaTypes() []string
}
