package redaction

import (
	"strings"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// RedactText redacts text given the recognizer's entities for it.
func RedactText(text string, entities []domain.Entity, allow CategorySet) (domain.TextRedaction, domain.CategoryCounts) {
	return ApplySpans(text, Resolve(CollectSpans(text, entities, allow)))
}

// ApplySpans substitutes each accepted span with its placeholder.
// The replacement list holds one pair per distinct raw text, in the order of
// its first accepted occurrence.
func ApplySpans(text string, accepted []domain.DetectedSpan) (domain.TextRedaction, domain.CategoryCounts) {
	assigner := NewAssigner()
	assignments := assigner.Assign(text, accepted)

	replacements := make([]domain.Replacement, 0, len(assignments))
	if len(assignments) == 0 {
		return domain.TextRedaction{CleanText: text, Replacements: replacements}, assigner.Counts()
	}

	var sb strings.Builder
	sb.Grow(len(text))
	seen := make(map[string]struct{}, len(assignments))
	cursor := 0

	for _, as := range assignments {
		sb.WriteString(text[cursor:as.Start])
		sb.WriteString(as.Placeholder)
		cursor = as.End

		if _, ok := seen[as.RawText]; ok {
			continue
		}
		seen[as.RawText] = struct{}{}
		replacements = append(replacements, domain.Replacement{
			Original:    as.RawText,
			Placeholder: as.Placeholder,
		})
	}
	sb.WriteString(text[cursor:])

	return domain.TextRedaction{CleanText: sb.String(), Replacements: replacements}, assigner.Counts()
}
