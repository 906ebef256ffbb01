package codecs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// MediaTypeDocumentJSON is the JSON rendering of the document model
const MediaTypeDocumentJSON = "application/vnd.sercha.document+json"

// Verify interface compliance
var _ driven.DocumentCodec = (*JSONCodec)(nil)

// JSONCodec reads and writes the document model as JSON.
type JSONCodec struct{}

// Decode parses a JSON document model.
// Unknown fields are rejected; nil entries are dropped.
func (c *JSONCodec) Decode(data []byte) (driven.DecodedDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentDecode, err)
	}

	compactDocument(&doc)
	return &jsonDocument{doc: &doc}, nil
}

// MediaTypes returns the media types this codec handles.
func (c *JSONCodec) MediaTypes() []string {
	return []string{MediaTypeDocumentJSON, "application/json"}
}

type jsonDocument struct {
	doc *domain.Document
}

func (d *jsonDocument) Document() *domain.Document {
	return d.doc
}

func (d *jsonDocument) Encode() ([]byte, error) {
	data, err := json.Marshal(d.doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentEncode, err)
	}
	return data, nil
}

// compactDocument removes nil paragraphs, runs, tables, rows and cells
func compactDocument(doc *domain.Document) {
	doc.Paragraphs = compactParagraphs(doc.Paragraphs)
	doc.Tables = compactTables(doc.Tables)
}

func compactParagraphs(in []*domain.Paragraph) []*domain.Paragraph {
	out := make([]*domain.Paragraph, 0, len(in))
	for _, p := range in {
		if p == nil {
			continue
		}
		runs := make([]*domain.Run, 0, len(p.Runs))
		for _, r := range p.Runs {
			if r != nil {
				runs = append(runs, r)
			}
		}
		p.Runs = runs
		out = append(out, p)
	}
	return out
}

func compactTables(in []*domain.Table) []*domain.Table {
	out := make([]*domain.Table, 0, len(in))
	for _, t := range in {
		if t == nil {
			continue
		}
		rows := make([]*domain.Row, 0, len(t.Rows))
		for _, row := range t.Rows {
			if row == nil {
				continue
			}
			cells := make([]*domain.Cell, 0, len(row.Cells))
			for _, cell := range row.Cells {
				if cell == nil {
					continue
				}
				cell.Paragraphs = compactParagraphs(cell.Paragraphs)
				cell.Tables = compactTables(cell.Tables)
				cells = append(cells, cell)
			}
			row.Cells = cells
			rows = append(rows, row)
		}
		t.Rows = rows
		out = append(out, t)
	}
	return out
}
