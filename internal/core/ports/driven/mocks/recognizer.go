package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// MockRecognizer is a dictionary-backed recognizer for testing.
// Every occurrence of a registered term is reported with its label.
type MockRecognizer struct {
	mu    sync.Mutex
	terms []mockTerm
	calls []string

	// Custom behavior hooks (optional)
	RecognizeFn   func(text string) ([]domain.Entity, error)
	HealthCheckFn func() error
	Closed        bool
}

type mockTerm struct {
	text  string
	label string
}

// NewMockRecognizer creates a recognizer that finds nothing until terms are added.
func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{}
}

// WithTerm registers a term to be reported with label
func (m *MockRecognizer) WithTerm(text, label string) *MockRecognizer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terms = append(m.terms, mockTerm{text: text, label: label})
	return m
}

// Recognize reports every occurrence of every registered term, in registration order.
func (m *MockRecognizer) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	terms := make([]mockTerm, len(m.terms))
	copy(terms, m.terms)
	m.mu.Unlock()

	if m.RecognizeFn != nil {
		return m.RecognizeFn(text)
	}

	var entities []domain.Entity
	for _, term := range terms {
		if term.text == "" {
			continue
		}
		offset := 0
		for {
			idx := strings.Index(text[offset:], term.text)
			if idx == -1 {
				break
			}
			start := offset + idx
			entities = append(entities, domain.Entity{
				Start: start,
				End:   start + len(term.text),
				Label: term.label,
			})
			offset = start + len(term.text)
		}
	}
	return entities, nil
}

// Name returns the recognizer name
func (m *MockRecognizer) Name() string {
	return "mock"
}

// HealthCheck reports healthy unless HealthCheckFn says otherwise
func (m *MockRecognizer) HealthCheck(ctx context.Context) error {
	if m.HealthCheckFn != nil {
		return m.HealthCheckFn()
	}
	return nil
}

// Close marks the recognizer closed
func (m *MockRecognizer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Calls returns the texts passed to Recognize
func (m *MockRecognizer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// StaticProvider always returns the same recognizer
type StaticProvider struct {
	R driven.Recognizer
}

// Recognizer returns the wrapped recognizer
func (p StaticProvider) Recognizer() driven.Recognizer {
	return p.R
}

// MockRecognizerFactory builds recognizers for testing
type MockRecognizerFactory struct {
	CreateFn func(endpoint string, timeoutSeconds int) (driven.Recognizer, error)
	Created  []string
}

// Create records the endpoint and returns CreateFn's recognizer, or a fresh
// MockRecognizer.
func (f *MockRecognizerFactory) Create(endpoint string, timeoutSeconds int) (driven.Recognizer, error) {
	f.Created = append(f.Created, endpoint)
	if f.CreateFn != nil {
		return f.CreateFn(endpoint, timeoutSeconds)
	}
	return NewMockRecognizer(), nil
}
