package redaction

import (
	"strings"
	"testing"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

func cellWith(texts ...string) *domain.Cell {
	c := &domain.Cell{}
	for _, t := range texts {
		c.Paragraphs = append(c.Paragraphs, domain.NewParagraph(t))
	}
	return c
}

func tableOf(cells ...*domain.Cell) *domain.Table {
	return &domain.Table{Rows: []*domain.Row{{Cells: cells}}}
}

func TestExtractText_Order(t *testing.T) {
	inner := tableOf(cellWith("inner"))
	outerCell := cellWith("cell one")
	outerCell.Tables = []*domain.Table{inner}

	doc := &domain.Document{
		Paragraphs: []*domain.Paragraph{
			domain.NewParagraph("first"),
			domain.NewParagraph("sec", "ond"),
		},
		Tables: []*domain.Table{
			{Rows: []*domain.Row{
				{Cells: []*domain.Cell{outerCell, cellWith("cell two")}},
				{Cells: []*domain.Cell{cellWith("row two")}},
			}},
		},
	}

	got := ExtractText(doc)
	want := "first\nsecond\ncell one\ninner\ncell two\nrow two"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWalk_Locations(t *testing.T) {
	inner := tableOf(cellWith("x"))
	outer := cellWith("a")
	outer.Tables = []*domain.Table{inner}
	doc := &domain.Document{
		Paragraphs: []*domain.Paragraph{domain.NewParagraph("p")},
		Tables:     []*domain.Table{tableOf(outer)},
	}

	var got []string
	Walk(doc, func(_ *domain.Paragraph, location string) {
		got = append(got, location)
	})

	want := []string{
		"paragraph 1",
		"table 1 row 1 cell 1 paragraph 1",
		"table 1 row 1 cell 1 table 1 row 1 cell 1 paragraph 1",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWalk_SharedCellVisitedOnce(t *testing.T) {
	merged := cellWith("kai@example.com")
	doc := &domain.Document{
		Tables: []*domain.Table{{Rows: []*domain.Row{
			{Cells: []*domain.Cell{merged, merged}},
			{Cells: []*domain.Cell{merged}},
		}}},
	}

	if got := ExtractText(doc); got != "kai@example.com" {
		t.Errorf("expected shared cell once, got %q", got)
	}
}

func TestExtractText_Empty(t *testing.T) {
	if got := ExtractText(&domain.Document{}); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
	if got := ExtractText(nil); got != "" {
		t.Errorf("expected empty text for nil document, got %q", got)
	}
}

func TestReapply_NestedTableCell(t *testing.T) {
	deepest := cellWith("kai@example.com")
	middle := &domain.Cell{Tables: []*domain.Table{tableOf(deepest)}}
	doc := &domain.Document{Tables: []*domain.Table{tableOf(middle)}}

	text := ExtractText(doc)
	if strings.Count(text, "kai@example.com") != 1 {
		t.Fatalf("expected the email once in %q", text)
	}

	redacted, _ := RedactText(text, nil, nil)
	warnings := Reapply(doc, redacted.Replacements, true)

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if got := deepest.Paragraphs[0].Text(); got != "<EMAIL_1>" {
		t.Errorf("expected <EMAIL_1>, got %q", got)
	}
}

func TestReapply_PreservesRunsInsideBoundaries(t *testing.T) {
	bold := &domain.RunFormat{Bold: true}
	p := &domain.Paragraph{Runs: []*domain.Run{
		{Text: "Hallo "},
		{Text: "kai@example.com", Format: bold},
		{Text: "!"},
	}}
	doc := &domain.Document{Paragraphs: []*domain.Paragraph{p}}

	warnings := Reapply(doc, []domain.Replacement{{Original: "kai@example.com", Placeholder: "<EMAIL_1>"}}, true)

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(p.Runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(p.Runs))
	}
	if p.Runs[1].Text != "<EMAIL_1>" || p.Runs[1].Format != bold {
		t.Errorf("expected bold run with placeholder, got %+v", p.Runs[1])
	}
	if p.Text() != "Hallo <EMAIL_1>!" {
		t.Errorf("unexpected paragraph text %q", p.Text())
	}
}

func TestReapply_CrossRunMatchRebuildsParagraph(t *testing.T) {
	p := &domain.Paragraph{Runs: []*domain.Run{
		{Text: "Kontakt: Kai "},
		{Text: "Muster", Format: &domain.RunFormat{Bold: true}},
		{Text: " heute"},
	}}
	untouched := domain.NewParagraph("nichts hier")
	doc := &domain.Document{Paragraphs: []*domain.Paragraph{p, untouched}}

	warnings := Reapply(doc, []domain.Replacement{{Original: "Kai Muster", Placeholder: "<PER_1>"}}, true)

	if len(warnings) != 1 {
		t.Fatalf("expected exactly 1 warning, got %v", warnings)
	}
	if !strings.HasPrefix(warnings[0], "paragraph 1:") {
		t.Errorf("expected warning to name paragraph 1, got %q", warnings[0])
	}
	if len(p.Runs) != 1 {
		t.Fatalf("expected a single run, got %d", len(p.Runs))
	}
	if p.Runs[0].Text != "Kontakt: <PER_1> heute" {
		t.Errorf("unexpected text %q", p.Runs[0].Text)
	}
	if p.Runs[0].Format != nil {
		t.Error("expected rebuilt run to carry no formatting")
	}
	if untouched.Text() != "nichts hier" {
		t.Errorf("expected other paragraph untouched, got %q", untouched.Text())
	}
}

func TestReapply_WithoutPreserveRebuildsEveryParagraph(t *testing.T) {
	p := &domain.Paragraph{Runs: []*domain.Run{
		{Text: "Kontakt: "},
		{Text: "Kai Muster", Format: &domain.RunFormat{Italic: true}},
	}}
	empty := &domain.Paragraph{}
	doc := &domain.Document{Paragraphs: []*domain.Paragraph{p, empty}}

	warnings := Reapply(doc, []domain.Replacement{{Original: "Kai Muster", Placeholder: "<PER_1>"}}, false)

	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(p.Runs) != 1 || p.Runs[0].Text != "Kontakt: <PER_1>" {
		t.Errorf("unexpected runs %+v", p.Runs)
	}
	if len(empty.Runs) != 1 || empty.Runs[0].Text != "" {
		t.Errorf("expected empty paragraph rebuilt as one empty run, got %+v", empty.Runs)
	}
}

func TestReapply_LongestFirst(t *testing.T) {
	p := domain.NewParagraph("Kai Muster und Kai")
	doc := &domain.Document{Paragraphs: []*domain.Paragraph{p}}

	Reapply(doc, []domain.Replacement{
		{Original: "Kai", Placeholder: "<PER_2>"},
		{Original: "Kai Muster", Placeholder: "<PER_1>"},
	}, true)

	if got := p.Text(); got != "<PER_1> und <PER_2>" {
		t.Errorf("expected longest value replaced first, got %q", got)
	}
}

func TestReapply_NoReplacements(t *testing.T) {
	p := domain.NewParagraph("a", "b")
	doc := &domain.Document{Paragraphs: []*domain.Paragraph{p}}

	warnings := Reapply(doc, nil, true)

	if warnings == nil || len(warnings) != 0 {
		t.Errorf("expected empty non-nil warnings, got %v", warnings)
	}
	if len(p.Runs) != 2 {
		t.Errorf("expected runs untouched, got %d", len(p.Runs))
	}
}
