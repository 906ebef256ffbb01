package domain

import "fmt"

// OutputMode selects what a document redaction returns
type OutputMode string

const (
	OutputText     OutputMode = "text"
	OutputDocument OutputMode = "document"
	OutputBoth     OutputMode = "both"
)

// ParseOutputMode parses an output mode; empty defaults to both.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case "":
		return OutputBoth, nil
	case OutputText, OutputDocument, OutputBoth:
		return OutputMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown output mode %q", ErrInvalidInput, s)
}

// IncludesText reports whether flattened clean text is returned
func (m OutputMode) IncludesText() bool {
	return m == OutputText || m == OutputBoth
}

// IncludesDocument reports whether the redacted document is returned
func (m OutputMode) IncludesDocument() bool {
	return m == OutputDocument || m == OutputBoth
}

// TextRedactionRequest asks for a flat string to be redacted
type TextRedactionRequest struct {
	ClientID   string
	Text       string
	Categories []string
}

// DocumentRedactionRequest asks for a structured document to be redacted
type DocumentRedactionRequest struct {
	ClientID           string
	Content            []byte
	MediaType          string
	PreserveFormatting bool
	Output             OutputMode
	Categories         []string
}

// DocumentRedactionResponse carries the redaction result with the
// re-encoded document. Content is nil unless the document was requested.
type DocumentRedactionResponse struct {
	CleanText    *string
	Content      []byte
	MediaType    string
	Replacements []Replacement
	Warnings     []string
}
