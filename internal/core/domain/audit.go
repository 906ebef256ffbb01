package domain

import "time"

// RedactionMode identifies which entry point served a request
type RedactionMode string

const (
	ModeText     RedactionMode = "text"
	ModeDocument RedactionMode = "document"
)

// RedactionEvent is the audit record of one request.
// It carries counts only; raw or redacted content is never recorded.
type RedactionEvent struct {
	ID                 string         `json:"id"`
	ClientID           string         `json:"client_id"`
	Mode               RedactionMode  `json:"mode"`
	MediaType          string         `json:"media_type,omitempty"`
	PreserveFormatting bool           `json:"preserve_formatting"`
	Counts             CategoryCounts `json:"counts"`
	WarningCount       int            `json:"warning_count"`
	InputBytes         int            `json:"input_bytes"`
	Duration           time.Duration  `json:"duration_ns"`
	CreatedAt          time.Time      `json:"created_at"`
}

// UsageStats aggregates request counters across all clients
type UsageStats struct {
	Requests         int64              `json:"requests"`
	TextRequests     int64              `json:"text_requests"`
	DocumentRequests int64              `json:"document_requests"`
	Warnings         int64              `json:"warnings"`
	Redactions       map[Category]int64 `json:"redactions"`
	Backend          string             `json:"backend"`
}
