package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

func TestUsageStore(t *testing.T) {
	store := NewUsageStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, domain.ModeText, domain.CategoryCounts{domain.CategoryEmail: 2}, 0))
	require.NoError(t, store.Record(ctx, domain.ModeDocument, domain.CategoryCounts{domain.CategoryPerson: 1}, 3))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Requests)
	assert.Equal(t, int64(1), stats.TextRequests)
	assert.Equal(t, int64(1), stats.DocumentRequests)
	assert.Equal(t, int64(3), stats.Warnings)
	assert.Equal(t, int64(2), stats.Redactions[domain.CategoryEmail])
	assert.Equal(t, "memory", stats.Backend)

	// Returned stats are a snapshot
	stats.Redactions[domain.CategoryEmail] = 100
	again, _ := store.Stats(ctx)
	assert.Equal(t, int64(2), again.Redactions[domain.CategoryEmail])
}

func TestUsageStore_Concurrent(t *testing.T) {
	store := NewUsageStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Record(ctx, domain.ModeText, domain.CategoryCounts{domain.CategoryEmail: 1}, 0)
		}()
	}
	wg.Wait()

	stats, _ := store.Stats(ctx)
	assert.Equal(t, int64(50), stats.Requests)
	assert.Equal(t, int64(50), stats.Redactions[domain.CategoryEmail])
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, _ := limiter.Allow(ctx, "client-a")
	assert.False(t, ok, "burst exhausted")

	ok, _ = limiter.Allow(ctx, "client-b")
	assert.True(t, ok, "separate budget per client")

	now = now.Add(30 * time.Second)
	ok, _ = limiter.Allow(ctx, "client-a")
	assert.True(t, ok, "one token refilled after half a minute")
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0)
	for i := 0; i < 100; i++ {
		ok, err := limiter.Allow(context.Background(), "client-a")
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(5)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "client-a")
	now = now.Add(2 * idleLimiterTTL)
	_, _ = limiter.Allow(ctx, "client-b")

	assert.Len(t, limiter.clients, 1)
	assert.Contains(t, limiter.clients, "client-b")
}

func TestAuditStore_RingBuffer(t *testing.T) {
	store := NewAuditStore(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.Save(ctx, &domain.RedactionEvent{ID: fmt.Sprintf("e%d", i)}))
	}

	events, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "e5", events[0].ID)
	assert.Equal(t, "e4", events[1].ID)
	assert.Equal(t, "e3", events[2].ID)

	events, _ = store.List(ctx, 1)
	require.Len(t, events, 1)
	assert.Equal(t, "e5", events[0].ID)
}

func TestAuditStore_PartiallyFilled(t *testing.T) {
	store := NewAuditStore(0)
	ctx := context.Background()

	events, _ := store.List(ctx, 10)
	assert.Empty(t, events)

	_ = store.Save(ctx, &domain.RedactionEvent{ID: "only"})
	events, _ = store.List(ctx, 10)
	require.Len(t, events, 1)
	assert.Equal(t, "only", events[0].ID)
}

func TestAuditStore_CopiesEvents(t *testing.T) {
	store := NewAuditStore(2)
	event := &domain.RedactionEvent{ID: "a", WarningCount: 1}
	_ = store.Save(context.Background(), event)

	event.WarningCount = 99
	events, _ := store.List(context.Background(), 1)
	assert.Equal(t, 1, events[0].WarningCount)
}
