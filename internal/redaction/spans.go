// Package redaction implements the PII redaction core: span collection,
// overlap resolution, placeholder assignment, flat-text redaction and
// structure-preserving document redaction.
//
// Everything in this package except Engine is a pure function over its
// inputs. Counters and placeholder tables live for one call and are never
// shared, so concurrent requests need no coordination.
package redaction

import (
	"regexp"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// emailPattern matches local@domain.tld with a TLD of at least two letters.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// CategorySet restricts which categories are collected.
// An empty set allows every category.
type CategorySet map[domain.Category]bool

// NewCategorySet builds a set from the given categories
func NewCategorySet(categories ...domain.Category) CategorySet {
	set := make(CategorySet, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return set
}

// Has reports whether the category is allowed
func (s CategorySet) Has(c domain.Category) bool {
	if len(s) == 0 {
		return true
	}
	return s[c]
}

// NeedsRecognizer reports whether any model-detected category is allowed.
func (s CategorySet) NeedsRecognizer() bool {
	return s.Has(domain.CategoryPerson) || s.Has(domain.CategoryOrganization) || s.Has(domain.CategoryLocation)
}

// CollectSpans gathers candidate spans from the email pattern and from the
// recognizer's entities. Spans may overlap or coincide; no ordering is imposed
// beyond emails first, then entities in recognizer order.
func CollectSpans(text string, entities []domain.Entity, allow CategorySet) []domain.DetectedSpan {
	if text == "" {
		return nil
	}

	var spans []domain.DetectedSpan

	if allow.Has(domain.CategoryEmail) {
		for _, loc := range emailPattern.FindAllStringIndex(text, -1) {
			spans = append(spans, domain.DetectedSpan{
				Start:    loc[0],
				End:      loc[1],
				Category: domain.CategoryEmail,
				RawText:  text[loc[0]:loc[1]],
			})
		}
	}

	for _, e := range entities {
		category, ok := domain.CategoryForLabel(e.Label)
		if !ok || !allow.Has(category) {
			continue
		}
		if !validSpan(text, e.Start, e.End) {
			continue
		}
		spans = append(spans, domain.DetectedSpan{
			Start:    e.Start,
			End:      e.End,
			Category: category,
			RawText:  text[e.Start:e.End],
		})
	}

	return spans
}

// validSpan rejects empty, inverted and out-of-range spans, and spans that
// would cut a multi-byte character.
func validSpan(text string, start, end int) bool {
	if start < 0 || end > len(text) || start >= end {
		return false
	}
	return isRuneBoundary(text, start) && isRuneBoundary(text, end)
}

func isRuneBoundary(text string, pos int) bool {
	if pos == 0 || pos == len(text) {
		return true
	}
	return utf8.RuneStart(text[pos])
}
