package domain

import "fmt"

// Category classifies a redacted identifier. The value doubles as the
// placeholder prefix.
type Category string

const (
	CategoryEmail        Category = "EMAIL"
	CategoryPerson       Category = "PER"
	CategoryOrganization Category = "ORG"
	CategoryLocation     Category = "LOC"
)

// AllCategories returns every supported category in placeholder order.
func AllCategories() []Category {
	return []Category{CategoryEmail, CategoryPerson, CategoryOrganization, CategoryLocation}
}

// Name returns the long form used in API documentation
func (c Category) Name() string {
	switch c {
	case CategoryEmail:
		return "EMAIL"
	case CategoryPerson:
		return "PERSON"
	case CategoryOrganization:
		return "ORGANIZATION"
	case CategoryLocation:
		return "LOCATION"
	default:
		return string(c)
	}
}

// IsValid checks if the category is one of the supported categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryEmail, CategoryPerson, CategoryOrganization, CategoryLocation:
		return true
	}
	return false
}

// Placeholder returns the token for the n-th distinct value of this category.
func (c Category) Placeholder(n int) string {
	return fmt.Sprintf("<%s_%d>", c, n)
}

// ParseCategory accepts both the short code and the long name.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "EMAIL", "email":
		return CategoryEmail, nil
	case "PER", "PERSON", "per", "person":
		return CategoryPerson, nil
	case "ORG", "ORGANIZATION", "org", "organization":
		return CategoryOrganization, nil
	case "LOC", "LOCATION", "loc", "location":
		return CategoryLocation, nil
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
}

// DetectedSpan is a half-open byte range [Start, End) of the source text
// flagged by one detector.
type DetectedSpan struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Category Category `json:"category"`
	RawText  string   `json:"raw_text"`
}

// Len returns the span length in bytes
func (s DetectedSpan) Len() int {
	return s.End - s.Start
}

// Replacement pairs a redacted raw value with the placeholder that stands in for it.
type Replacement struct {
	Original    string `json:"original"`
	Placeholder string `json:"placeholder"`
}

// TextRedaction is the result of redacting a flat string
type TextRedaction struct {
	CleanText    string        `json:"clean_text"`
	Replacements []Replacement `json:"replacements"`
}

// RedactionResult is the result of redacting a document.
// CleanText is set only when plain-text output was requested.
type RedactionResult struct {
	CleanText        *string       `json:"clean_text,omitempty"`
	RedactedDocument *Document     `json:"redacted_document,omitempty"`
	Replacements     []Replacement `json:"replacements"`
	Warnings         []string      `json:"warnings"`
}

// CategoryCounts tallies distinct redacted values per category
type CategoryCounts map[Category]int

// Total returns the sum across all categories
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
