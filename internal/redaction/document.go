package redaction

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// paragraphSeparator joins paragraphs in the flattened document text
const paragraphSeparator = "\n"

// ParagraphVisitor is called once per paragraph in document order.
// location is a human-readable path such as "table 1 row 2 cell 1 paragraph 1".
type ParagraphVisitor func(p *domain.Paragraph, location string)

// Walk visits body paragraphs first, then every table depth-first, row by
// row and cell by cell, descending into nested tables after a cell's own
// paragraphs. A cell reachable more than once is visited once.
func Walk(doc *domain.Document, visit ParagraphVisitor) {
	if doc == nil {
		return
	}
	for i, p := range doc.Paragraphs {
		if p != nil {
			visit(p, fmt.Sprintf("paragraph %d", i+1))
		}
	}
	seen := make(map[*domain.Cell]struct{})
	walkTables(doc.Tables, "", seen, visit)
}

func walkTables(tables []*domain.Table, prefix string, seen map[*domain.Cell]struct{}, visit ParagraphVisitor) {
	for ti, table := range tables {
		if table == nil {
			continue
		}
		tablePath := fmt.Sprintf("%stable %d", prefix, ti+1)
		for ri, row := range table.Rows {
			if row == nil {
				continue
			}
			for ci, cell := range row.Cells {
				if cell == nil {
					continue
				}
				if _, ok := seen[cell]; ok {
					continue
				}
				seen[cell] = struct{}{}

				cellPath := fmt.Sprintf("%s row %d cell %d", tablePath, ri+1, ci+1)
				for pi, p := range cell.Paragraphs {
					if p != nil {
						visit(p, fmt.Sprintf("%s paragraph %d", cellPath, pi+1))
					}
				}
				walkTables(cell.Tables, cellPath+" ", seen, visit)
			}
		}
	}
}

// ExtractText flattens the document to one paragraph per line.
func ExtractText(doc *domain.Document) string {
	var lines []string
	Walk(doc, func(p *domain.Paragraph, _ string) {
		lines = append(lines, p.Text())
	})
	return strings.Join(lines, paragraphSeparator)
}

// Reapply writes replacements back into every paragraph of doc and returns
// one warning per paragraph that had to be rebuilt.
//
// With preserveFormatting, each run is edited on its own; when the edited
// runs no longer add up to the fully substituted paragraph text (a match
// crossed a run boundary) the paragraph is rebuilt as a single unformatted
// run and a warning is recorded. Without it, every paragraph is rebuilt and
// no warnings are produced.
func Reapply(doc *domain.Document, replacements []domain.Replacement, preserveFormatting bool) []string {
	ordered := longestFirst(replacements)
	warnings := make([]string, 0)

	Walk(doc, func(p *domain.Paragraph, location string) {
		desired := substitute(p.Text(), ordered)

		if !preserveFormatting {
			p.SetText(desired)
			return
		}
		if editRuns(p, ordered, desired) {
			return
		}

		p.SetText(desired)
		warnings = append(warnings, fmt.Sprintf(
			"%s: redacted text crossed a formatting boundary; paragraph rebuilt as a single unformatted run", location))
	})

	return warnings
}

// editRuns applies substitutions run by run. Runs are only modified when the
// result matches desired.
func editRuns(p *domain.Paragraph, ordered []domain.Replacement, desired string) bool {
	edited := make([]string, len(p.Runs))
	var sb strings.Builder
	for i, r := range p.Runs {
		edited[i] = substitute(r.Text, ordered)
		sb.WriteString(edited[i])
	}
	if sb.String() != desired {
		return false
	}
	for i, r := range p.Runs {
		r.Text = edited[i]
	}
	return true
}

// longestFirst orders replacements by raw text length, longest first, so a
// shorter value contained in a longer one cannot corrupt the longer match.
func longestFirst(replacements []domain.Replacement) []domain.Replacement {
	ordered := make([]domain.Replacement, 0, len(replacements))
	for _, r := range replacements {
		if r.Original != "" {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Original) > len(ordered[j].Original)
	})
	return ordered
}

func substitute(text string, ordered []domain.Replacement) string {
	for _, r := range ordered {
		text = strings.ReplaceAll(text, r.Original, r.Placeholder)
	}
	return text
}
