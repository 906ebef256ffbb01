package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AuditStore = (*AuditStore)(nil)

// maxListLimit caps a single List call
const maxListLimit = 500

// AuditStore implements driven.AuditStore using PostgreSQL
type AuditStore struct {
	db *DB
}

// NewAuditStore creates a new AuditStore
func NewAuditStore(db *DB) *AuditStore {
	return &AuditStore{db: db}
}

// Save records a redaction event
func (s *AuditStore) Save(ctx context.Context, event *domain.RedactionEvent) error {
	query := `
		INSERT INTO redaction_events (id, client_id, mode, media_type, preserve_formatting,
									  counts, warning_count, input_bytes, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	counts, err := encodeCounts(event.Counts)
	if err != nil {
		return err
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, query,
		event.ID,
		event.ClientID,
		string(event.Mode),
		NullString(event.MediaType),
		event.PreserveFormatting,
		counts,
		event.WarningCount,
		event.InputBytes,
		event.Duration.Milliseconds(),
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save redaction event: %w", err)
	}
	return nil
}

// List returns the most recent events, newest first
func (s *AuditStore) List(ctx context.Context, limit int) ([]*domain.RedactionEvent, error) {
	query := `
		SELECT id, client_id, mode, media_type, preserve_formatting,
			   counts, warning_count, input_bytes, duration_ms, created_at
		FROM redaction_events
		ORDER BY created_at DESC
		LIMIT $1
	`

	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list redaction events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.RedactionEvent, 0)
	for rows.Next() {
		var event domain.RedactionEvent
		var mode string
		var mediaType sql.NullString
		var counts []byte
		var durationMS int64

		if err := rows.Scan(
			&event.ID,
			&event.ClientID,
			&mode,
			&mediaType,
			&event.PreserveFormatting,
			&counts,
			&event.WarningCount,
			&event.InputBytes,
			&durationMS,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}

		event.Mode = domain.RedactionMode(mode)
		event.MediaType = mediaType.String
		event.Duration = time.Duration(durationMS) * time.Millisecond
		if event.Counts, err = decodeCounts(counts); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

// Ping checks if the store is reachable
func (s *AuditStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func encodeCounts(counts domain.CategoryCounts) ([]byte, error) {
	if counts == nil {
		counts = domain.CategoryCounts{}
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode counts: %w", err)
	}
	return data, nil
}

func decodeCounts(data []byte) (domain.CategoryCounts, error) {
	counts := domain.CategoryCounts{}
	if len(data) == 0 {
		return counts, nil
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode counts: %w", err)
	}
	return counts, nil
}
