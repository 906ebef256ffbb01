package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// MockAuditStore is an in-memory AuditStore for testing
type MockAuditStore struct {
	mu     sync.Mutex
	events []*domain.RedactionEvent

	// Custom behavior hooks (optional)
	SaveFn func(event *domain.RedactionEvent) error
	PingFn func() error
}

// NewMockAuditStore creates an empty audit store
func NewMockAuditStore() *MockAuditStore {
	return &MockAuditStore{}
}

func (m *MockAuditStore) Save(ctx context.Context, event *domain.RedactionEvent) error {
	if m.SaveFn != nil {
		return m.SaveFn(event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockAuditStore) List(ctx context.Context, limit int) ([]*domain.RedactionEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.RedactionEvent
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func (m *MockAuditStore) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn()
	}
	return nil
}

// Events returns all saved events in insertion order
func (m *MockAuditStore) Events() []*domain.RedactionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.RedactionEvent, len(m.events))
	copy(out, m.events)
	return out
}
