package redaction

import (
	"math/rand"
	"testing"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		candidates []domain.DetectedSpan
		want       [][2]int
	}{
		{
			name:       "empty",
			candidates: nil,
			want:       nil,
		},
		{
			name: "fully nested keeps outer",
			candidates: []domain.DetectedSpan{
				span(0, 3, domain.CategoryPerson),
				span(5, 8, domain.CategoryOrganization),
				span(0, 10, domain.CategoryPerson),
			},
			want: [][2]int{{0, 10}},
		},
		{
			name: "partial overlap keeps earliest",
			candidates: []domain.DetectedSpan{
				span(3, 8, domain.CategoryLocation),
				span(0, 5, domain.CategoryPerson),
				span(8, 10, domain.CategoryOrganization),
			},
			want: [][2]int{{0, 5}, {8, 10}},
		},
		{
			name: "adjacent spans both accepted",
			candidates: []domain.DetectedSpan{
				span(3, 6, domain.CategoryPerson),
				span(0, 3, domain.CategoryPerson),
			},
			want: [][2]int{{0, 3}, {3, 6}},
		},
		{
			name: "earlier short span beats later long span",
			candidates: []domain.DetectedSpan{
				span(2, 20, domain.CategoryEmail),
				span(0, 4, domain.CategoryPerson),
			},
			want: [][2]int{{0, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.candidates)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d spans, got %d (%v)", len(tt.want), len(got), got)
			}
			for i, w := range tt.want {
				if got[i].Start != w[0] || got[i].End != w[1] {
					t.Errorf("span %d: expected [%d,%d), got [%d,%d)", i, w[0], w[1], got[i].Start, got[i].End)
				}
			}
		})
	}
}

func TestResolve_SameStartLongerWins(t *testing.T) {
	orders := [][]domain.DetectedSpan{
		{span(4, 7, domain.CategoryPerson), span(4, 14, domain.CategoryPerson)},
		{span(4, 14, domain.CategoryPerson), span(4, 7, domain.CategoryPerson)},
	}
	for _, candidates := range orders {
		got := Resolve(candidates)
		if len(got) != 1 {
			t.Fatalf("expected 1 span, got %d", len(got))
		}
		if got[0].End != 14 {
			t.Errorf("expected longer span [4,14), got [%d,%d)", got[0].Start, got[0].End)
		}
	}
}

func TestResolve_TieKeepsInputOrder(t *testing.T) {
	got := Resolve([]domain.DetectedSpan{
		span(0, 15, domain.CategoryEmail),
		span(0, 15, domain.CategoryOrganization),
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 span, got %d", len(got))
	}
	if got[0].Category != domain.CategoryEmail {
		t.Errorf("expected first candidate to win the tie, got %s", got[0].Category)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	candidates := []domain.DetectedSpan{
		span(5, 9, domain.CategoryPerson),
		span(0, 2, domain.CategoryPerson),
	}
	_ = Resolve(candidates)
	if candidates[0].Start != 5 || candidates[1].Start != 0 {
		t.Error("expected input order to be untouched")
	}
}

func TestResolve_RandomInputsAreOrderedAndDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		var candidates []domain.DetectedSpan
		for i := 0; i < rng.Intn(30); i++ {
			start := rng.Intn(100)
			candidates = append(candidates, span(start, start+1+rng.Intn(15), domain.CategoryPerson))
		}

		got := Resolve(candidates)
		for i := 1; i < len(got); i++ {
			if got[i-1].End > got[i].Start {
				t.Fatalf("round %d: spans %v and %v overlap", round, got[i-1], got[i])
			}
			if got[i-1].Start >= got[i].Start {
				t.Fatalf("round %d: spans not ascending: %v then %v", round, got[i-1], got[i])
			}
		}
	}
}
