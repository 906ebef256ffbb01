package redaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Options controls a single redaction call
type Options struct {
	// Categories limits collection to these categories; empty means all
	Categories CategorySet
}

// DocumentOptions controls a single document redaction call
type DocumentOptions struct {
	Options

	// PreserveFormatting edits runs in place where possible
	PreserveFormatting bool

	// IncludeText returns the flattened clean text
	IncludeText bool

	// IncludeDocument reapplies replacements into the document model
	IncludeDocument bool
}

// TextOutcome is a text redaction with its per-category counts
type TextOutcome struct {
	domain.TextRedaction
	Counts domain.CategoryCounts
}

// DocumentOutcome is a document redaction with its per-category counts
type DocumentOutcome struct {
	domain.RedactionResult
	Counts domain.CategoryCounts
}

// Engine runs the recognizer and then the pure redaction core.
type Engine struct {
	recognizers driven.RecognizerProvider
}

// NewEngine creates an engine that asks provider for the current recognizer
// on every call.
func NewEngine(provider driven.RecognizerProvider) *Engine {
	return &Engine{recognizers: provider}
}

// RedactText redacts a flat string
func (e *Engine) RedactText(ctx context.Context, text string, opts Options) (*TextOutcome, error) {
	entities, err := e.recognize(ctx, text, opts.Categories)
	if err != nil {
		return nil, err
	}
	redacted, counts := RedactText(text, entities, opts.Categories)
	return &TextOutcome{TextRedaction: redacted, Counts: counts}, nil
}

// RedactDocument flattens doc, redacts the flattened text and, when
// requested, writes the replacements back into doc. doc is mutated in place.
func (e *Engine) RedactDocument(ctx context.Context, doc *domain.Document, opts DocumentOptions) (*DocumentOutcome, error) {
	text := ExtractText(doc)

	entities, err := e.recognize(ctx, text, opts.Categories)
	if err != nil {
		return nil, err
	}
	redacted, counts := RedactText(text, entities, opts.Categories)

	out := &DocumentOutcome{
		RedactionResult: domain.RedactionResult{
			Replacements: redacted.Replacements,
			Warnings:     []string{},
		},
		Counts: counts,
	}
	if opts.IncludeText {
		clean := redacted.CleanText
		out.CleanText = &clean
	}
	if opts.IncludeDocument {
		out.Warnings = Reapply(doc, redacted.Replacements, opts.PreserveFormatting)
		out.RedactedDocument = doc
	}
	return out, nil
}

func (e *Engine) recognize(ctx context.Context, text string, allow CategorySet) ([]domain.Entity, error) {
	if text == "" || !allow.NeedsRecognizer() || e.recognizers == nil {
		return nil, nil
	}
	recognizer := e.recognizers.Recognizer()
	if recognizer == nil {
		return nil, nil
	}
	entities, err := recognizer.Recognize(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrRecognizerUnavailable) {
			return nil, fmt.Errorf("%s: %w", recognizer.Name(), err)
		}
		return nil, fmt.Errorf("%s: %w: %w", recognizer.Name(), domain.ErrRecognizerUnavailable, err)
	}
	return entities, nil
}
