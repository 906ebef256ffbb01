package runtime

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services.
// The recognizer can be replaced at runtime via the admin API.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	recognizer driven.Recognizer
	endpoint   string
}

// NewServices creates a new Services registry with no recognizer
func NewServices() *Services {
	return &Services{}
}

// Recognizer returns the current recognizer (may be nil)
func (s *Services) Recognizer() driven.Recognizer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recognizer
}

// Endpoint returns the endpoint the current recognizer was built for
func (s *Services) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoint
}

// SetRecognizer updates the recognizer.
// Closes the old recognizer if present.
func (s *Services) SetRecognizer(r driven.Recognizer, endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recognizer != nil && s.recognizer != r {
		_ = s.recognizer.Close()
	}

	s.recognizer = r
	s.endpoint = endpoint
}

// ValidateAndSetRecognizer checks connectivity before swapping the recognizer in.
// On failure the new recognizer is closed and the current one stays active.
func (s *Services) ValidateAndSetRecognizer(ctx context.Context, r driven.Recognizer, endpoint string) error {
	if r == nil {
		s.SetRecognizer(nil, "")
		return nil
	}

	if err := r.HealthCheck(ctx); err != nil {
		_ = r.Close()
		return err
	}

	s.SetRecognizer(r, endpoint)
	return nil
}

// Status reports the current recognizer and probes its health
func (s *Services) Status(ctx context.Context) domain.RecognizerStatus {
	s.mu.RLock()
	r, endpoint := s.recognizer, s.endpoint
	s.mu.RUnlock()

	if r == nil {
		return domain.RecognizerStatus{Name: "none"}
	}

	status := domain.RecognizerStatus{
		Name:     r.Name(),
		Endpoint: endpoint,
		Enabled:  endpoint != "",
	}
	if err := r.HealthCheck(ctx); err != nil {
		status.LastError = err.Error()
		return status
	}
	status.Healthy = true
	return status
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recognizer != nil {
		_ = s.recognizer.Close()
		s.recognizer = nil
	}
	s.endpoint = ""

	return nil
}
