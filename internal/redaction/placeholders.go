package redaction

import "github.com/custodia-labs/sercha-scrub/internal/core/domain"

// Assignment is an accepted span bound to its placeholder
type Assignment struct {
	Start       int
	End         int
	Category    domain.Category
	RawText     string
	Placeholder string
}

// Assigner maps raw text to placeholders for a single request.
// Each category numbers its distinct values densely from 1 in
// first-occurrence order; a raw text seen again reuses its placeholder.
type Assigner struct {
	counters map[domain.Category]int
	table    map[string]string
	order    []string
}

// NewAssigner creates an empty assigner
func NewAssigner() *Assigner {
	return &Assigner{
		counters: make(map[domain.Category]int),
		table:    make(map[string]string),
	}
}

// Assign binds each accepted span of source to a placeholder.
// Spans must be ordered by start, as returned by Resolve.
func (a *Assigner) Assign(source string, accepted []domain.DetectedSpan) []Assignment {
	out := make([]Assignment, 0, len(accepted))
	for _, sp := range accepted {
		raw := source[sp.Start:sp.End]
		placeholder, ok := a.table[raw]
		if !ok {
			a.counters[sp.Category]++
			placeholder = sp.Category.Placeholder(a.counters[sp.Category])
			a.table[raw] = placeholder
			a.order = append(a.order, raw)
		}
		out = append(out, Assignment{
			Start:       sp.Start,
			End:         sp.End,
			Category:    sp.Category,
			RawText:     raw,
			Placeholder: placeholder,
		})
	}
	return out
}

// Lookup returns the placeholder registered for raw, if any
func (a *Assigner) Lookup(raw string) (string, bool) {
	p, ok := a.table[raw]
	return p, ok
}

// Counts returns the number of distinct values per category
func (a *Assigner) Counts() domain.CategoryCounts {
	counts := make(domain.CategoryCounts, len(a.counters))
	for c, n := range a.counters {
		counts[c] = n
	}
	return counts
}

// Len returns the number of distinct raw values registered
func (a *Assigner) Len() int {
	return len(a.order)
}
