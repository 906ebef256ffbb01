package domain

import "strings"

// Entity is a named entity reported by the recognizer.
// Start and End are byte offsets into the recognized text.
type Entity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// CategoryForLabel maps a recognizer label onto a redaction category.
// Labels outside the supported set report false.
func CategoryForLabel(label string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PER", "PERSON":
		return CategoryPerson, true
	case "ORG", "ORGANIZATION":
		return CategoryOrganization, true
	case "LOC", "LOCATION", "GPE":
		return CategoryLocation, true
	}
	return "", false
}

// RecognizerStatus describes the currently configured recognizer
type RecognizerStatus struct {
	Name      string `json:"name"`
	Endpoint  string `json:"endpoint,omitempty"`
	Enabled   bool   `json:"enabled"`
	Healthy   bool   `json:"healthy"`
	LastError string `json:"last_error,omitempty"`
}

// UpdateRecognizerRequest points the service at a different recognizer.
// An empty endpoint disables the recognizer.
type UpdateRecognizerRequest struct {
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}
