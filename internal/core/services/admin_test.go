package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/sercha-scrub/internal/runtime"
)

// usageStoreMock is a testify mock of driven.UsageStore
type usageStoreMock struct {
	mock.Mock
}

func (m *usageStoreMock) Record(ctx context.Context, mode domain.RedactionMode, counts domain.CategoryCounts, warnings int) error {
	return m.Called(ctx, mode, counts, warnings).Error(0)
}

func (m *usageStoreMock) Stats(ctx context.Context) (*domain.UsageStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*domain.UsageStats)
	return stats, args.Error(1)
}

func (m *usageStoreMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// auditStoreMock is a testify mock of driven.AuditStore
type auditStoreMock struct {
	mock.Mock
}

func (m *auditStoreMock) Save(ctx context.Context, event *domain.RedactionEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *auditStoreMock) List(ctx context.Context, limit int) ([]*domain.RedactionEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]*domain.RedactionEvent)
	return events, args.Error(1)
}

func (m *auditStoreMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestAdminService_Stats(t *testing.T) {
	usage := &usageStoreMock{}
	expected := &domain.UsageStats{Requests: 7, Backend: "redis"}
	usage.On("Stats", mock.Anything).Return(expected, nil)

	svc := NewAdminService(AdminServiceConfig{Services: runtime.NewServices(), UsageStore: usage})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Same(t, expected, stats)
	usage.AssertExpectations(t)
}

func TestAdminService_Stats_NoStore(t *testing.T) {
	svc := NewAdminService(AdminServiceConfig{Services: runtime.NewServices()})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "none", stats.Backend)
	assert.NotNil(t, stats.Redactions)
}

func TestAdminService_RecentEvents_Limits(t *testing.T) {
	tests := []struct {
		requested int
		expected  int
	}{
		{0, defaultEventLimit},
		{-3, defaultEventLimit},
		{10, 10},
		{10000, maxEventLimit},
	}

	for _, tt := range tests {
		audit := &auditStoreMock{}
		audit.On("List", mock.Anything, tt.expected).Return([]*domain.RedactionEvent{}, nil).Once()

		svc := NewAdminService(AdminServiceConfig{Services: runtime.NewServices(), AuditStore: audit})
		_, err := svc.RecentEvents(context.Background(), tt.requested)
		require.NoError(t, err)
		audit.AssertExpectations(t)
	}
}

func TestAdminService_RecentEvents_NoStore(t *testing.T) {
	svc := NewAdminService(AdminServiceConfig{Services: runtime.NewServices()})

	events, err := svc.RecentEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestAdminService_UpdateRecognizer(t *testing.T) {
	services := runtime.NewServices()
	old := mocks.NewMockRecognizer()
	services.SetRecognizer(old, "http://ner-a:8000")

	factory := &mocks.MockRecognizerFactory{}
	svc := NewAdminService(AdminServiceConfig{Services: services, RecognizerFactory: factory})

	status, err := svc.UpdateRecognizer(context.Background(), domain.UpdateRecognizerRequest{
		Endpoint: " http://ner-b:8000 ",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"http://ner-b:8000"}, factory.Created)
	assert.Equal(t, "http://ner-b:8000", status.Endpoint)
	assert.True(t, status.Enabled)
	assert.True(t, status.Healthy)
	assert.True(t, old.Closed, "previous recognizer should be closed")
}

func TestAdminService_UpdateRecognizer_Unhealthy(t *testing.T) {
	services := runtime.NewServices()
	old := mocks.NewMockRecognizer()
	services.SetRecognizer(old, "http://ner-a:8000")

	replacement := mocks.NewMockRecognizer()
	replacement.HealthCheckFn = func() error { return errors.New("connection refused") }
	factory := &mocks.MockRecognizerFactory{
		CreateFn: func(string, int) (driven.Recognizer, error) { return replacement, nil },
	}
	svc := NewAdminService(AdminServiceConfig{Services: services, RecognizerFactory: factory})

	_, err := svc.UpdateRecognizer(context.Background(), domain.UpdateRecognizerRequest{Endpoint: "http://ner-b:8000"})
	assert.ErrorIs(t, err, domain.ErrRecognizerUnavailable)

	assert.Same(t, old, services.Recognizer())
	assert.False(t, old.Closed)
	assert.True(t, replacement.Closed)
}

func TestAdminService_UpdateRecognizer_InvalidInput(t *testing.T) {
	factory := &mocks.MockRecognizerFactory{
		CreateFn: func(string, int) (driven.Recognizer, error) {
			return nil, domain.ErrInvalidInput
		},
	}
	svc := NewAdminService(AdminServiceConfig{Services: runtime.NewServices(), RecognizerFactory: factory})

	_, err := svc.UpdateRecognizer(context.Background(), domain.UpdateRecognizerRequest{Endpoint: "ftp://ner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateRecognizer(context.Background(), domain.UpdateRecognizerRequest{TimeoutSeconds: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdminService_Ready(t *testing.T) {
	usage := &usageStoreMock{}
	usage.On("Ping", mock.Anything).Return(nil)
	audit := &auditStoreMock{}
	audit.On("Ping", mock.Anything).Return(errors.New("db down"))

	svc := NewAdminService(AdminServiceConfig{
		Services:   runtime.NewServices(),
		UsageStore: usage,
		AuditStore: audit,
	})

	err := svc.Ready(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit store")

	noStores := NewAdminService(AdminServiceConfig{Services: runtime.NewServices()})
	assert.NoError(t, noStores.Ready(context.Background()))
}
