package domain

import "strings"

// Document is the hierarchical document model: body paragraphs followed by
// body tables. Cells may nest further tables.
type Document struct {
	Paragraphs []*Paragraph `json:"paragraphs"`
	Tables     []*Table     `json:"tables,omitempty"`
}

// Table is an ordered sequence of rows
type Table struct {
	Rows []*Row `json:"rows"`
}

// Row is an ordered sequence of cells
type Row struct {
	Cells []*Cell `json:"cells"`
}

// Cell holds its own paragraphs and nested tables
type Cell struct {
	Paragraphs []*Paragraph `json:"paragraphs"`
	Tables     []*Table     `json:"tables,omitempty"`
}

// Paragraph is an ordered sequence of formatted runs.
// The concatenation of run texts is the paragraph's plain text.
type Paragraph struct {
	Runs []*Run `json:"runs"`
}

// Run is the smallest unit of formatted text
type Run struct {
	Text   string     `json:"text"`
	Format *RunFormat `json:"format,omitempty"`
}

// RunFormat is formatting metadata carried through redaction untouched.
type RunFormat struct {
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Style     string `json:"style,omitempty"`
}

// Text returns the paragraph's plain text
func (p *Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// SetText discards all runs and replaces them with a single unformatted run.
func (p *Paragraph) SetText(text string) {
	p.Runs = []*Run{{Text: text}}
}

// NewParagraph builds a paragraph from run texts, mostly useful in tests and fixtures.
func NewParagraph(texts ...string) *Paragraph {
	p := &Paragraph{Runs: make([]*Run, 0, len(texts))}
	for _, t := range texts {
		p.Runs = append(p.Runs, &Run{Text: t})
	}
	return p
}
