package redaction

import (
	"sort"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// Resolve reduces overlapping candidates to a non-overlapping set ordered by
// start offset.
//
// Candidates are ordered by start ascending, then length descending, and
// scanned greedily: a candidate is accepted iff it starts at or after the end
// of the last accepted span. The policy is positional only; the detector that
// produced a span plays no part. Candidates tied on both start and length
// keep their input order.
func Resolve(candidates []domain.DetectedSpan) []domain.DetectedSpan {
	ordered := make([]domain.DetectedSpan, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].Len() > ordered[j].Len()
	})

	accepted := make([]domain.DetectedSpan, 0, len(ordered))
	lastEnd := 0
	for _, c := range ordered {
		if c.Start < lastEnd {
			continue
		}
		accepted = append(accepted, c)
		lastEnd = c.End
	}
	return accepted
}
