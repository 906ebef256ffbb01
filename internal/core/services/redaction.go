package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-scrub/internal/redaction"
)

// Ensure redactionService implements RedactionService
var _ driving.RedactionService = (*redactionService)(nil)

// RedactionServiceConfig holds dependencies for the redaction service.
// AuditStore and UsageStore are optional.
type RedactionServiceConfig struct {
	Recognizers driven.RecognizerProvider
	Codecs      driven.CodecRegistry
	AuditStore  driven.AuditStore
	UsageStore  driven.UsageStore
	Logger      *slog.Logger
}

// redactionService implements the RedactionService interface
type redactionService struct {
	engine     *redaction.Engine
	codecs     driven.CodecRegistry
	auditStore driven.AuditStore
	usageStore driven.UsageStore
	logger     *slog.Logger
	now        func() time.Time
}

// NewRedactionService creates a new RedactionService
func NewRedactionService(cfg RedactionServiceConfig) driving.RedactionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &redactionService{
		engine:     redaction.NewEngine(cfg.Recognizers),
		codecs:     cfg.Codecs,
		auditStore: cfg.AuditStore,
		usageStore: cfg.UsageStore,
		logger:     logger,
		now:        time.Now,
	}
}

// RedactText redacts a flat string
func (s *redactionService) RedactText(ctx context.Context, req domain.TextRedactionRequest) (*domain.TextRedaction, error) {
	categories, err := parseCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	started := s.now()
	out, err := s.engine.RedactText(ctx, req.Text, redaction.Options{Categories: categories})
	if err != nil {
		s.logger.Error("text redaction failed", "client_id", req.ClientID, "error", err)
		return nil, err
	}

	s.record(ctx, &domain.RedactionEvent{
		ClientID:   req.ClientID,
		Mode:       domain.ModeText,
		Counts:     out.Counts,
		InputBytes: len(req.Text),
		Duration:   s.now().Sub(started),
	})

	result := out.TextRedaction
	return &result, nil
}

// RedactDocument decodes a document, redacts it and re-encodes it
func (s *redactionService) RedactDocument(ctx context.Context, req domain.DocumentRedactionRequest) (*domain.DocumentRedactionResponse, error) {
	if len(req.Content) == 0 {
		return nil, fmt.Errorf("%w: document is empty", domain.ErrInvalidInput)
	}
	output, err := domain.ParseOutputMode(string(req.Output))
	if err != nil {
		return nil, err
	}
	categories, err := parseCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	mediaType := strings.TrimSpace(req.MediaType)
	if mediaType == "" {
		return nil, fmt.Errorf("%w: media type is required", domain.ErrInvalidInput)
	}
	codec := s.codecs.Get(mediaType)
	if codec == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMediaType, mediaType)
	}

	started := s.now()
	decoded, err := codec.Decode(req.Content)
	if err != nil {
		return nil, err
	}

	out, err := s.engine.RedactDocument(ctx, decoded.Document(), redaction.DocumentOptions{
		Options:            redaction.Options{Categories: categories},
		PreserveFormatting: req.PreserveFormatting,
		IncludeText:        output.IncludesText(),
		IncludeDocument:    output.IncludesDocument(),
	})
	if err != nil {
		s.logger.Error("document redaction failed", "client_id", req.ClientID, "media_type", mediaType, "error", err)
		return nil, err
	}

	resp := &domain.DocumentRedactionResponse{
		CleanText:    out.CleanText,
		MediaType:    mediaType,
		Replacements: out.Replacements,
		Warnings:     out.Warnings,
	}
	if output.IncludesDocument() {
		content, err := decoded.Encode()
		if err != nil {
			return nil, err
		}
		resp.Content = content
	}

	s.record(ctx, &domain.RedactionEvent{
		ClientID:           req.ClientID,
		Mode:               domain.ModeDocument,
		MediaType:          mediaType,
		PreserveFormatting: req.PreserveFormatting,
		Counts:             out.Counts,
		WarningCount:       len(out.Warnings),
		InputBytes:         len(req.Content),
		Duration:           s.now().Sub(started),
	})

	return resp, nil
}

// MediaTypes returns the document media types that can be redacted
func (s *redactionService) MediaTypes() []string {
	return s.codecs.List()
}

// record logs the event and stores it. Storage failures never fail the
// request.
func (s *redactionService) record(ctx context.Context, event *domain.RedactionEvent) {
	event.ID = uuid.New().String()
	event.CreatedAt = s.now()

	s.logger.Info("redaction completed",
		"event_id", event.ID,
		"client_id", event.ClientID,
		"mode", event.Mode,
		"media_type", event.MediaType,
		"redactions", event.Counts.Total(),
		"warnings", event.WarningCount,
		"input_bytes", event.InputBytes,
		"duration", event.Duration,
	)

	if s.usageStore != nil {
		if err := s.usageStore.Record(ctx, event.Mode, event.Counts, event.WarningCount); err != nil {
			s.logger.Warn("failed to record usage", "event_id", event.ID, "error", err)
		}
	}
	if s.auditStore != nil {
		if err := s.auditStore.Save(ctx, event); err != nil {
			s.logger.Warn("failed to save audit event", "event_id", event.ID, "error", err)
		}
	}
}

// parseCategories converts category names into a filter set.
// No names means every category.
func parseCategories(names []string) (redaction.CategorySet, error) {
	if len(names) == 0 {
		return nil, nil
	}
	categories := make([]domain.Category, 0, len(names))
	for _, name := range names {
		c, err := domain.ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return redaction.NewCategorySet(categories...), nil
}
