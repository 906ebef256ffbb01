package redaction

import (
	"strings"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// entitiesFor reports every occurrence of sub in text with label
func entitiesFor(text, sub, label string) []domain.Entity {
	var out []domain.Entity
	offset := 0
	for {
		idx := strings.Index(text[offset:], sub)
		if idx == -1 {
			return out
		}
		start := offset + idx
		out = append(out, domain.Entity{Start: start, End: start + len(sub), Label: label})
		offset = start + len(sub)
	}
}

func span(start, end int, c domain.Category) domain.DetectedSpan {
	return domain.DetectedSpan{Start: start, End: end, Category: c}
}
