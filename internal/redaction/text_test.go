package redaction

import (
	"testing"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

func TestRedactText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		entities func(text string) []domain.Entity
		allow    CategorySet
		want     string
		wantReps []domain.Replacement
	}{
		{
			name: "email only",
			text: "Kontakt: kai@example.com",
			want: "Kontakt: <EMAIL_1>",
			wantReps: []domain.Replacement{
				{Original: "kai@example.com", Placeholder: "<EMAIL_1>"},
			},
		},
		{
			name: "longer entity wins at same start",
			text: "Kai Muster wohnt in Berlin.",
			entities: func(text string) []domain.Entity {
				var out []domain.Entity
				out = append(out, entitiesFor(text, "Kai Muster", "PER")...)
				out = append(out, entitiesFor(text, "Kai", "PER")...)
				out = append(out, entitiesFor(text, "Berlin", "LOC")...)
				return out
			},
			want: "<PER_1> wohnt in <LOC_1>.",
			wantReps: []domain.Replacement{
				{Original: "Kai Muster", Placeholder: "<PER_1>"},
				{Original: "Berlin", Placeholder: "<LOC_1>"},
			},
		},
		{
			name: "repeated value reuses placeholder",
			text: "Anna schreibt an anna@example.org. Anna lacht.",
			entities: func(text string) []domain.Entity {
				return entitiesFor(text, "Anna", "PERSON")
			},
			want: "<PER_1> schreibt an <EMAIL_1>. <PER_1> lacht.",
			wantReps: []domain.Replacement{
				{Original: "Anna", Placeholder: "<PER_1>"},
				{Original: "anna@example.org", Placeholder: "<EMAIL_1>"},
			},
		},
		{
			name: "entity starting first beats overlapping email",
			text: "Herr Kai@example.com",
			entities: func(text string) []domain.Entity {
				return entitiesFor(text, "Herr Kai", "PER")
			},
			want: "<PER_1>@example.com",
			wantReps: []domain.Replacement{
				{Original: "Herr Kai", Placeholder: "<PER_1>"},
			},
		},
		{
			name: "email wins exact tie with entity",
			text: "kai@example.com",
			entities: func(text string) []domain.Entity {
				return []domain.Entity{{Start: 0, End: len(text), Label: "ORG"}}
			},
			want: "<EMAIL_1>",
			wantReps: []domain.Replacement{
				{Original: "kai@example.com", Placeholder: "<EMAIL_1>"},
			},
		},
		{
			name: "label aliases",
			text: "ACME in Hamburg",
			entities: func(text string) []domain.Entity {
				var out []domain.Entity
				out = append(out, entitiesFor(text, "ACME", "ORGANIZATION")...)
				out = append(out, entitiesFor(text, "Hamburg", "GPE")...)
				return out
			},
			want: "<ORG_1> in <LOC_1>",
			wantReps: []domain.Replacement{
				{Original: "ACME", Placeholder: "<ORG_1>"},
				{Original: "Hamburg", Placeholder: "<LOC_1>"},
			},
		},
		{
			name: "unknown labels are ignored",
			text: "Bundesliga heute",
			entities: func(text string) []domain.Entity {
				return entitiesFor(text, "Bundesliga", "MISC")
			},
			want:     "Bundesliga heute",
			wantReps: []domain.Replacement{},
		},
		{
			name: "category filter",
			text: "Kai: kai@example.com",
			entities: func(text string) []domain.Entity {
				return entitiesFor(text, "Kai", "PER")
			},
			allow: NewCategorySet(domain.CategoryEmail),
			want:  "Kai: <EMAIL_1>",
			wantReps: []domain.Replacement{
				{Original: "kai@example.com", Placeholder: "<EMAIL_1>"},
			},
		},
		{
			name: "invalid entity spans are dropped",
			text: "Grüße an Jörg.",
			entities: func(text string) []domain.Entity {
				return []domain.Entity{
					{Start: 3, End: 6, Label: "PER"},
					{Start: 10, End: 99, Label: "PER"},
					{Start: 5, End: 5, Label: "PER"},
					{Start: -1, End: 2, Label: "PER"},
				}
			},
			want:     "Grüße an Jörg.",
			wantReps: []domain.Replacement{},
		},
		{
			name: "multi-byte entity",
			text: "Grüße an Jörg.",
			entities: func(text string) []domain.Entity {
				return entitiesFor(text, "Jörg", "PER")
			},
			want: "Grüße an <PER_1>.",
			wantReps: []domain.Replacement{
				{Original: "Jörg", Placeholder: "<PER_1>"},
			},
		},
		{
			name:     "empty text",
			text:     "",
			want:     "",
			wantReps: []domain.Replacement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entities []domain.Entity
			if tt.entities != nil {
				entities = tt.entities(tt.text)
			}

			got, _ := RedactText(tt.text, entities, tt.allow)

			if got.CleanText != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.CleanText)
			}
			if got.Replacements == nil {
				t.Fatal("expected non-nil replacements")
			}
			if len(got.Replacements) != len(tt.wantReps) {
				t.Fatalf("expected %d replacements, got %d (%v)", len(tt.wantReps), len(got.Replacements), got.Replacements)
			}
			for i, w := range tt.wantReps {
				if got.Replacements[i] != w {
					t.Errorf("replacement %d: expected %v, got %v", i, w, got.Replacements[i])
				}
			}
		})
	}
}

func TestRedactText_Counts(t *testing.T) {
	text := "Anna, Berta und anna@example.org"
	entities := append(entitiesFor(text, "Anna", "PER"), entitiesFor(text, "Berta", "PER")...)

	_, counts := RedactText(text, entities, nil)

	if counts[domain.CategoryPerson] != 2 {
		t.Errorf("expected 2 PER, got %d", counts[domain.CategoryPerson])
	}
	if counts[domain.CategoryEmail] != 1 {
		t.Errorf("expected 1 EMAIL, got %d", counts[domain.CategoryEmail])
	}
}

func TestRedactText_CleanTextIsStableWithoutNewEntities(t *testing.T) {
	first, _ := RedactText("Schreib an kai@example.com", nil, nil)
	second, _ := RedactText(first.CleanText, nil, nil)

	if second.CleanText != first.CleanText {
		t.Errorf("expected %q unchanged, got %q", first.CleanText, second.CleanText)
	}
	if len(second.Replacements) != 0 {
		t.Errorf("expected no replacements, got %v", second.Replacements)
	}
}

func TestCollectSpans_EmailsBeforeEntities(t *testing.T) {
	text := "Kai kai@example.com"
	spans := CollectSpans(text, entitiesFor(text, "Kai", "PER"), nil)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Category != domain.CategoryEmail {
		t.Errorf("expected email first, got %s", spans[0].Category)
	}
	if spans[1].RawText != "Kai" {
		t.Errorf("expected entity raw text Kai, got %q", spans[1].RawText)
	}
}

func TestCategorySet(t *testing.T) {
	var empty CategorySet
	for _, c := range domain.AllCategories() {
		if !empty.Has(c) {
			t.Errorf("expected empty set to allow %s", c)
		}
	}
	if !empty.NeedsRecognizer() {
		t.Error("expected empty set to need the recognizer")
	}

	emailOnly := NewCategorySet(domain.CategoryEmail)
	if emailOnly.Has(domain.CategoryPerson) {
		t.Error("expected PER to be excluded")
	}
	if emailOnly.NeedsRecognizer() {
		t.Error("expected email-only set to skip the recognizer")
	}
}
