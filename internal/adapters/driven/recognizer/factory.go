package recognizer

import (
	"strings"
	"time"

	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Ensure Factory implements RecognizerFactory
var _ driven.RecognizerFactory = (*Factory)(nil)

// Factory creates recognizers based on configuration
type Factory struct{}

// NewFactory creates a new recognizer factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns a sidecar recognizer for endpoint, or Disabled when the
// endpoint is empty.
func (f *Factory) Create(endpoint string, timeoutSeconds int) (driven.Recognizer, error) {
	if strings.TrimSpace(endpoint) == "" {
		return Disabled{}, nil
	}
	sidecar, err := NewSidecar(endpoint, time.Duration(timeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	return sidecar, nil
}
