package mocks

import (
	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// MockCodec is a mock implementation of DocumentCodec for testing.
// By default it decodes every payload into a document with one paragraph
// per line and encodes the model back the same way.
type MockCodec struct {
	MediaTypesFn func() []string
	DecodeFn     func(data []byte) (driven.DecodedDocument, error)
	EncodeFn     func(doc *domain.Document) ([]byte, error)
}

func NewMockCodec() *MockCodec {
	return &MockCodec{}
}

func (m *MockCodec) MediaTypes() []string {
	if m.MediaTypesFn != nil {
		return m.MediaTypesFn()
	}
	return []string{"text/plain"}
}

func (m *MockCodec) Decode(data []byte) (driven.DecodedDocument, error) {
	if m.DecodeFn != nil {
		return m.DecodeFn(data)
	}
	doc := &domain.Document{}
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			doc.Paragraphs = append(doc.Paragraphs, domain.NewParagraph(string(data[start:i])))
			start = i + 1
		}
	}
	return &MockDecodedDocument{Doc: doc, EncodeFn: m.EncodeFn}, nil
}

// MockDecodedDocument wraps a document model for testing
type MockDecodedDocument struct {
	Doc      *domain.Document
	EncodeFn func(doc *domain.Document) ([]byte, error)
	Encoded  int
}

func (m *MockDecodedDocument) Document() *domain.Document {
	return m.Doc
}

func (m *MockDecodedDocument) Encode() ([]byte, error) {
	m.Encoded++
	if m.EncodeFn != nil {
		return m.EncodeFn(m.Doc)
	}
	var out []byte
	for i, p := range m.Doc.Paragraphs {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, p.Text()...)
	}
	return out, nil
}

// MockCodecRegistry is a mock implementation of CodecRegistry for testing.
// Media types must match exactly.
type MockCodecRegistry struct {
	codecs map[string]driven.DocumentCodec
	order  []string
}

func NewMockCodecRegistry(codecs ...driven.DocumentCodec) *MockCodecRegistry {
	r := &MockCodecRegistry{codecs: make(map[string]driven.DocumentCodec)}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

func (r *MockCodecRegistry) Get(mediaType string) driven.DocumentCodec {
	return r.codecs[mediaType]
}

func (r *MockCodecRegistry) Register(codec driven.DocumentCodec) {
	for _, mt := range codec.MediaTypes() {
		if _, ok := r.codecs[mt]; !ok {
			r.order = append(r.order, mt)
		}
		r.codecs[mt] = codec
	}
}

func (r *MockCodecRegistry) List() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
