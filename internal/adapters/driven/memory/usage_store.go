// Package memory provides process-local stores used when no Redis or
// PostgreSQL backend is configured.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UsageStore = (*UsageStore)(nil)

// UsageStore keeps aggregate counters for this process only.
type UsageStore struct {
	mu    sync.Mutex
	stats domain.UsageStats
}

// NewUsageStore creates an empty in-memory usage store
func NewUsageStore() *UsageStore {
	return &UsageStore{
		stats: domain.UsageStats{
			Redactions: make(map[domain.Category]int64),
			Backend:    "memory",
		},
	}
}

// Record adds one request's counts to the aggregate
func (s *UsageStore) Record(_ context.Context, mode domain.RedactionMode, counts domain.CategoryCounts, warnings int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Requests++
	switch mode {
	case domain.ModeText:
		s.stats.TextRequests++
	case domain.ModeDocument:
		s.stats.DocumentRequests++
	}
	s.stats.Warnings += int64(warnings)
	for category, n := range counts {
		s.stats.Redactions[category] += int64(n)
	}
	return nil
}

// Stats returns a copy of the aggregate counters
func (s *UsageStore) Stats(_ context.Context) (*domain.UsageStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.stats
	out.Redactions = make(map[domain.Category]int64, len(s.stats.Redactions))
	for c, n := range s.stats.Redactions {
		out.Redactions[c] = n
	}
	return &out, nil
}

// Ping always succeeds
func (s *UsageStore) Ping(context.Context) error {
	return nil
}
