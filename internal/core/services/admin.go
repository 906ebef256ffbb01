package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-scrub/internal/runtime"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// Ensure adminService implements AdminService
var _ driving.AdminService = (*adminService)(nil)

// AdminServiceConfig holds dependencies for the admin service.
// AuditStore and UsageStore are optional.
type AdminServiceConfig struct {
	Services          *runtime.Services
	RecognizerFactory driven.RecognizerFactory
	AuditStore        driven.AuditStore
	UsageStore        driven.UsageStore
	Logger            *slog.Logger
}

// adminService implements the AdminService interface
type adminService struct {
	services   *runtime.Services
	factory    driven.RecognizerFactory
	auditStore driven.AuditStore
	usageStore driven.UsageStore
	logger     *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(cfg AdminServiceConfig) driving.AdminService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &adminService{
		services:   cfg.Services,
		factory:    cfg.RecognizerFactory,
		auditStore: cfg.AuditStore,
		usageStore: cfg.UsageStore,
		logger:     logger,
	}
}

// Stats returns aggregate usage counters
func (s *adminService) Stats(ctx context.Context) (*domain.UsageStats, error) {
	if s.usageStore == nil {
		return &domain.UsageStats{
			Redactions: make(map[domain.Category]int64),
			Backend:    "none",
		}, nil
	}
	return s.usageStore.Stats(ctx)
}

// RecentEvents returns the most recent audit events, newest first
func (s *adminService) RecentEvents(ctx context.Context, limit int) ([]*domain.RedactionEvent, error) {
	if s.auditStore == nil {
		return []*domain.RedactionEvent{}, nil
	}
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}
	return s.auditStore.List(ctx, limit)
}

// RecognizerStatus reports the current recognizer and its health
func (s *adminService) RecognizerStatus(ctx context.Context) domain.RecognizerStatus {
	return s.services.Status(ctx)
}

// UpdateRecognizer swaps the recognizer for one at a new endpoint
func (s *adminService) UpdateRecognizer(ctx context.Context, req domain.UpdateRecognizerRequest) (domain.RecognizerStatus, error) {
	endpoint := strings.TrimSpace(req.Endpoint)
	if req.TimeoutSeconds < 0 {
		return domain.RecognizerStatus{}, fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidInput)
	}

	recognizer, err := s.factory.Create(endpoint, req.TimeoutSeconds)
	if err != nil {
		return domain.RecognizerStatus{}, err
	}

	if err := s.services.ValidateAndSetRecognizer(ctx, recognizer, endpoint); err != nil {
		s.logger.Warn("recognizer update rejected", "endpoint", endpoint, "error", err)
		if errors.Is(err, domain.ErrRecognizerUnavailable) {
			return domain.RecognizerStatus{}, err
		}
		return domain.RecognizerStatus{}, fmt.Errorf("%w: %w", domain.ErrRecognizerUnavailable, err)
	}

	s.logger.Info("recognizer updated", "name", recognizer.Name(), "endpoint", endpoint)
	return s.services.Status(ctx), nil
}

// Ready reports whether every configured backend is reachable
func (s *adminService) Ready(ctx context.Context) error {
	if s.usageStore != nil {
		if err := s.usageStore.Ping(ctx); err != nil {
			return fmt.Errorf("usage store: %w", err)
		}
	}
	if s.auditStore != nil {
		if err := s.auditStore.Ping(ctx); err != nil {
			return fmt.Errorf("audit store: %w", err)
		}
	}
	return nil
}
