// Package codecs converts container formats to and from the document model.
package codecs

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/sercha-scrub/internal/codecs/docx"
	"github.com/custodia-labs/sercha-scrub/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CodecRegistry = (*Registry)(nil)

// Registry implements CodecRegistry.
// An exact media type match beats a wildcard; among equals the codec
// registered first wins.
type Registry struct {
	mu     sync.RWMutex
	codecs []driven.DocumentCodec
}

// NewRegistry creates a new codec registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make([]driven.DocumentCodec, 0),
	}
}

// Register registers a codec.
func (r *Registry) Register(codec driven.DocumentCodec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs = append(r.codecs, codec)
}

// Get retrieves the best-matching codec for a media type.
// Returns nil if no codec is registered for the type.
func (r *Registry) Get(mediaType string) driven.DocumentCodec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wildcard driven.DocumentCodec
	for _, c := range r.codecs {
		switch matchMediaType(c.MediaTypes(), mediaType) {
		case matchExact:
			return c
		case matchWildcard:
			if wildcard == nil {
				wildcard = c
			}
		}
	}
	return wildcard
}

// List returns all registered media types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeSet := make(map[string]struct{})
	for _, c := range r.codecs {
		for _, t := range c.MediaTypes() {
			typeSet[t] = struct{}{}
		}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

type matchKind int

const (
	matchNone matchKind = iota
	matchWildcard
	matchExact
)

// matchMediaType reports how well any supported type matches the given media type.
// Supports wildcard matching (e.g., "text/*" matches "text/plain").
func matchMediaType(supportedTypes []string, mediaType string) matchKind {
	mediaType = NormalizeMediaType(mediaType)
	if mediaType == "" {
		return matchNone
	}

	best := matchNone
	for _, supported := range supportedTypes {
		supported = strings.ToLower(strings.TrimSpace(supported))

		if supported == mediaType {
			return matchExact
		}

		if supported == "*/*" {
			best = matchWildcard
			continue
		}

		if strings.HasSuffix(supported, "/*") {
			prefix := supported[:len(supported)-1] // "text/"
			if strings.HasPrefix(mediaType, prefix) {
				best = matchWildcard
			}
		}
	}

	return best
}

// NormalizeMediaType lowercases a media type and strips parameters such as charset.
func NormalizeMediaType(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	return mediaType
}

// DefaultRegistry creates a registry with the built-in codecs registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(docx.NewCodec())
	r.Register(&JSONCodec{})
	r.Register(&PlaintextCodec{})

	return r
}
