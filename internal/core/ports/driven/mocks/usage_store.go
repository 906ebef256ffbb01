package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// MockUsageStore is an in-memory UsageStore and RateLimiter for testing
type MockUsageStore struct {
	mu    sync.Mutex
	stats domain.UsageStats

	// Custom behavior hooks (optional)
	AllowFn  func(clientID string) (bool, error)
	RecordFn func(mode domain.RedactionMode, counts domain.CategoryCounts, warnings int) error
}

// NewMockUsageStore creates an empty usage store
func NewMockUsageStore() *MockUsageStore {
	return &MockUsageStore{
		stats: domain.UsageStats{
			Redactions: make(map[domain.Category]int64),
			Backend:    "mock",
		},
	}
}

func (m *MockUsageStore) Record(ctx context.Context, mode domain.RedactionMode, counts domain.CategoryCounts, warnings int) error {
	if m.RecordFn != nil {
		return m.RecordFn(mode, counts, warnings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Requests++
	switch mode {
	case domain.ModeText:
		m.stats.TextRequests++
	case domain.ModeDocument:
		m.stats.DocumentRequests++
	}
	m.stats.Warnings += int64(warnings)
	for c, n := range counts {
		m.stats.Redactions[c] += int64(n)
	}
	return nil
}

func (m *MockUsageStore) Stats(ctx context.Context) (*domain.UsageStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.stats
	stats.Redactions = make(map[domain.Category]int64, len(m.stats.Redactions))
	for c, n := range m.stats.Redactions {
		stats.Redactions[c] = n
	}
	return &stats, nil
}

func (m *MockUsageStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MockUsageStore) Allow(ctx context.Context, clientID string) (bool, error) {
	if m.AllowFn != nil {
		return m.AllowFn(clientID)
	}
	return true, nil
}
