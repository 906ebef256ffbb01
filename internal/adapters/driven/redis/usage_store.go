package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.UsageStore = (*UsageStore)(nil)

const (
	usageKey = keyPrefix + "usage"

	fieldRequests         = "requests"
	fieldTextRequests     = "requests:text"
	fieldDocumentRequests = "requests:document"
	fieldWarnings         = "warnings"
	fieldRedactionPrefix  = "redactions:"
)

// UsageStore keeps aggregate counters in a single Redis hash so that every
// instance behind a load balancer contributes to the same totals.
type UsageStore struct {
	client *redis.Client
}

// NewUsageStore creates a new Redis-backed usage store.
func NewUsageStore(client *redis.Client) *UsageStore {
	return &UsageStore{client: client}
}

// Record adds one request's counts to the aggregate in a single transaction.
func (s *UsageStore) Record(ctx context.Context, mode domain.RedactionMode, counts domain.CategoryCounts, warnings int) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, usageKey, fieldRequests, 1)
		switch mode {
		case domain.ModeText:
			pipe.HIncrBy(ctx, usageKey, fieldTextRequests, 1)
		case domain.ModeDocument:
			pipe.HIncrBy(ctx, usageKey, fieldDocumentRequests, 1)
		}
		if warnings > 0 {
			pipe.HIncrBy(ctx, usageKey, fieldWarnings, int64(warnings))
		}
		for category, n := range counts {
			if n > 0 {
				pipe.HIncrBy(ctx, usageKey, fieldRedactionPrefix+string(category), int64(n))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// Stats returns the aggregate counters
func (s *UsageStore) Stats(ctx context.Context) (*domain.UsageStats, error) {
	fields, err := s.client.HGetAll(ctx, usageKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read usage: %w", err)
	}

	stats := &domain.UsageStats{
		Redactions: make(map[domain.Category]int64),
		Backend:    "redis",
	}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case field == fieldRequests:
			stats.Requests = n
		case field == fieldTextRequests:
			stats.TextRequests = n
		case field == fieldDocumentRequests:
			stats.DocumentRequests = n
		case field == fieldWarnings:
			stats.Warnings = n
		case strings.HasPrefix(field, fieldRedactionPrefix):
			stats.Redactions[domain.Category(strings.TrimPrefix(field, fieldRedactionPrefix))] = n
		}
	}
	return stats, nil
}

// Ping checks if the Redis backend is healthy.
func (s *UsageStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
