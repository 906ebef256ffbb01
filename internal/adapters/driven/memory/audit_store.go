package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AuditStore = (*AuditStore)(nil)

// DefaultAuditCapacity is the number of events kept when none is given
const DefaultAuditCapacity = 1000

// AuditStore keeps the most recent events in a ring buffer.
type AuditStore struct {
	mu     sync.Mutex
	events []*domain.RedactionEvent
	next   int
	full   bool
}

// NewAuditStore creates a store holding at most capacity events
func NewAuditStore(capacity int) *AuditStore {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditStore{events: make([]*domain.RedactionEvent, capacity)}
}

// Save records an event, evicting the oldest when full
func (s *AuditStore) Save(_ context.Context, event *domain.RedactionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *event
	s.events[s.next] = &copied
	s.next = (s.next + 1) % len(s.events)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// List returns the most recent events, newest first
func (s *AuditStore) List(_ context.Context, limit int) ([]*domain.RedactionEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.next
	if s.full {
		size = len(s.events)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]*domain.RedactionEvent, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (s.next - 1 - i + len(s.events)) % len(s.events)
		out = append(out, s.events[idx])
	}
	return out, nil
}

// Ping always succeeds
func (s *AuditStore) Ping(context.Context) error {
	return nil
}
