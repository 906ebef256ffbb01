// Package recognizer provides Recognizer implementations backed by an
// external named-entity recognition model.
package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Ensure Sidecar implements Recognizer
var _ driven.Recognizer = (*Sidecar)(nil)

// DefaultTimeout bounds a single classify call when none is configured
const DefaultTimeout = 30 * time.Second

// Sidecar calls an NER model served over HTTP.
//
// The sidecar accepts POST /classify {"text": ...} and answers
// {"spans": [{"start", "end", "label", "text"}]}. Offsets in the response
// count Unicode code points and are converted to byte offsets here.
type Sidecar struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewSidecar creates a recognizer pointing at the given base URL
// (e.g. "http://ner:8000").
func NewSidecar(baseURL string, timeout time.Duration) (*Sidecar, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: recognizer URL is required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: recognizer URL must be http or https: %s", domain.ErrInvalidInput, baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Sidecar{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: slog.Default().With("recognizer", "sidecar"),
	}, nil
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Spans []sidecarSpan `json:"spans"`
	Error string        `json:"error,omitempty"`
}

type sidecarSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
}

// Recognize sends text to the sidecar and returns entities with byte offsets.
// Any transport or protocol failure wraps domain.ErrRecognizerUnavailable.
func (s *Sidecar) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	if text == "" {
		return nil, nil
	}

	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrRecognizerUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrRecognizerUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sidecar returned status %d", domain.ErrRecognizerUnavailable, resp.StatusCode)
	}

	var result classifyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrRecognizerUnavailable, err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("%w: sidecar error: %s", domain.ErrRecognizerUnavailable, result.Error)
	}

	entities := toByteOffsets(text, result.Spans)
	s.logger.Debug("classified text",
		"chars", utf8.RuneCountInString(text),
		"spans", len(result.Spans),
		"kept", len(entities),
		"duration", time.Since(start))

	return entities, nil
}

// Name returns the recognizer name
func (s *Sidecar) Name() string {
	return "sidecar"
}

// Endpoint returns the sidecar base URL
func (s *Sidecar) Endpoint() string {
	return s.baseURL
}

// HealthCheck verifies the sidecar answers GET /health with 200
func (s *Sidecar) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRecognizerUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned status %d", domain.ErrRecognizerUnavailable, resp.StatusCode)
	}
	return nil
}

// Close releases idle connections
func (s *Sidecar) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// toByteOffsets converts code point offsets to byte offsets.
// Spans outside the text are dropped.
func toByteOffsets(text string, spans []sidecarSpan) []domain.Entity {
	if len(spans) == 0 {
		return []domain.Entity{}
	}

	// byteAt[i] is the byte offset of the i-th code point; the final entry is len(text)
	byteAt := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		byteAt = append(byteAt, i)
	}
	byteAt = append(byteAt, len(text))
	runes := len(byteAt) - 1

	entities := make([]domain.Entity, 0, len(spans))
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > runes || sp.Start >= sp.End {
			continue
		}
		entities = append(entities, domain.Entity{
			Start: byteAt[sp.Start],
			End:   byteAt[sp.End],
			Label: sp.Label,
		})
	}
	return entities
}
