// Package docx reads and writes Office Open XML word-processing documents.
//
// Only word/document.xml is interpreted; every other part of the package is
// copied through untouched. Text box content (w:txbxContent inside drawings
// and VML shapes) is not part of the model and is copied through as well. Decoding binds each model paragraph and run to
// the XML node it came from so that Encode can write edits back in place.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// MediaType is the registered media type for .docx files
const MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	documentPart = "word/document.xml"

	mainNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	// maxPartSize bounds the decompressed size of the main document part
	maxPartSize = 64 << 20
)

// Verify interface compliance
var _ driven.DocumentCodec = (*Codec)(nil)

// Codec implements DocumentCodec for .docx packages.
type Codec struct{}

// NewCodec creates a DOCX codec
func NewCodec() *Codec {
	return &Codec{}
}

// MediaTypes returns the media types this codec handles.
func (c *Codec) MediaTypes() []string {
	return []string{MediaType}
}

// Decode opens the package and builds the document model from its body.
func (c *Codec) Decode(data []byte) (driven.DecodedDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip package: %v", domain.ErrDocumentDecode, err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%w: %s not found", domain.ErrDocumentDecode, documentPart)
	}

	raw, err := readPart(part)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentDecode, err)
	}

	tree, err := parseTree(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDocumentDecode, documentPart, err)
	}

	root := documentElement(tree)
	if root == nil {
		return nil, fmt.Errorf("%w: %s has no root element", domain.ErrDocumentDecode, documentPart)
	}

	b := newBinder(wordPrefix(root))
	body := b.child(root, "body")
	if body == nil {
		return nil, fmt.Errorf("%w: %s has no body", domain.ErrDocumentDecode, documentPart)
	}

	doc := b.document(body)
	return &Document{
		zr:     zr,
		tree:   tree,
		doc:    doc,
		binder: b,
	}, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", f.Name, maxPartSize)
	}
	return data, nil
}

// Document is a decoded package together with the bindings needed to
// write the model back.
type Document struct {
	zr     *zip.Reader
	tree   *node
	doc    *domain.Document
	binder *binder
}

// Document returns the mutable document model
func (d *Document) Document() *domain.Document {
	return d.doc
}

// Encode writes the model back into document.xml and repackages the archive.
// Paragraphs whose runs were only edited keep their XML untouched apart from
// the changed text; paragraphs whose runs were replaced are rebuilt.
func (d *Document) Encode() ([]byte, error) {
	d.binder.writeBack()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range d.zr.File {
		if f.Name != documentPart {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("%w: copy %s: %v", domain.ErrDocumentEncode, f.Name, err)
			}
			continue
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDocumentEncode, err)
		}
		if _, err := w.Write(writeTree(d.tree)); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDocumentEncode, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDocumentEncode, err)
	}
	return buf.Bytes(), nil
}
