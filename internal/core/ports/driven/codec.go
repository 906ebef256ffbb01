package driven

import "github.com/custodia-labs/sercha-scrub/internal/core/domain"

// DocumentCodec converts a container format to and from the document model
type DocumentCodec interface {
	// Decode builds the document model from raw bytes.
	// Errors wrap domain.ErrDocumentDecode.
	Decode(data []byte) (DecodedDocument, error)

	// MediaTypes returns the media types this codec handles.
	// Can include wildcards like "application/*".
	MediaTypes() []string
}

// DecodedDocument is a document model bound to its source container.
// Mutations made to Document() are written out by Encode.
type DecodedDocument interface {
	// Document returns the mutable document model
	Document() *domain.Document

	// Encode serializes the current state of the model back into the container format
	Encode() ([]byte, error)
}

// CodecRegistry selects a codec by media type
type CodecRegistry interface {
	// Get retrieves the codec for a media type, or nil if none matches
	Get(mediaType string) DocumentCodec

	// Register registers a codec
	Register(codec DocumentCodec)

	// List returns all registered media types
	List() []string
}
