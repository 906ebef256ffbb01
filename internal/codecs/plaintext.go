package codecs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentCodec = (*PlaintextCodec)(nil)

// PlaintextCodec treats every line of a text file as one paragraph.
type PlaintextCodec struct{}

// Decode splits text into single-run paragraphs after normalizing line endings.
func (c *PlaintextCodec) Decode(data []byte) (driven.DecodedDocument, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", domain.ErrDocumentDecode)
	}

	content := string(data)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	doc := &domain.Document{}
	for _, line := range strings.Split(content, "\n") {
		doc.Paragraphs = append(doc.Paragraphs, domain.NewParagraph(line))
	}
	return &plaintextDocument{doc: doc}, nil
}

// MediaTypes returns the media types this codec handles.
func (c *PlaintextCodec) MediaTypes() []string {
	return []string{"text/plain", "text/markdown", "text/*"}
}

type plaintextDocument struct {
	doc *domain.Document
}

func (d *plaintextDocument) Document() *domain.Document {
	return d.doc
}

func (d *plaintextDocument) Encode() ([]byte, error) {
	lines := make([]string, 0, len(d.doc.Paragraphs))
	for _, p := range d.doc.Paragraphs {
		lines = append(lines, p.Text())
	}
	return []byte(strings.Join(lines, "\n")), nil
}
