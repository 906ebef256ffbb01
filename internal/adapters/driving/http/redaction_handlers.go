package http

import (
	"encoding/base64"
	"net/http"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// RedactTextRequest is the body of a text redaction
// @Description Text redaction request
type RedactTextRequest struct {
	Text       *string  `json:"text" example:"Kai Muster, kai@example.com"`
	Categories []string `json:"categories,omitempty" example:"EMAIL,PER"`
}

// RedactTextResponse is the result of a text redaction
// @Description Text redaction result
type RedactTextResponse struct {
	CleanText    string               `json:"clean_text" example:"<PER_1>, <EMAIL_1>"`
	Replacements []domain.Replacement `json:"replacements"`
}

// RedactDocumentRequest is the body of a document redaction
// @Description Document redaction request
type RedactDocumentRequest struct {
	// Document is the base64-encoded file
	Document           string   `json:"document"`
	MediaType          string   `json:"media_type" example:"application/vnd.openxmlformats-officedocument.wordprocessingml.document"`
	PreserveFormatting *bool    `json:"preserve_formatting,omitempty"`
	Output             string   `json:"output,omitempty" example:"both" enums:"text,document,both"`
	Categories         []string `json:"categories,omitempty"`
}

// RedactDocumentResponse is the result of a document redaction
// @Description Document redaction result
type RedactDocumentResponse struct {
	CleanText *string `json:"clean_text,omitempty"`
	// Document is the base64-encoded redacted file
	Document     string               `json:"document,omitempty"`
	MediaType    string               `json:"media_type"`
	Replacements []domain.Replacement `json:"replacements"`
	Warnings     []string             `json:"warnings"`
}

// handleScrub godoc
// @Summary      Scrub text
// @Description  OpenWebUI tool endpoint: replaces personal data in text with placeholders
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        request  body      RedactTextRequest  true  "Text to scrub"
// @Success      200      {object}  RedactTextResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "Recognizer unavailable"
// @Router       /scrub [post]
func (s *Server) handleScrub(w http.ResponseWriter, r *http.Request) {
	s.handleRedactText(w, r)
}

// handleRedactText godoc
// @Summary      Redact text
// @Description  Replaces emails, persons, organizations and locations with numbered placeholders
// @Tags         Redaction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        request  body      RedactTextRequest  true  "Text to redact"
// @Success      200      {object}  RedactTextResponse
// @Failure      400      {object}  ErrorResponse  "Missing text or unknown category"
// @Failure      401      {object}  ErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "Recognizer unavailable"
// @Router       /api/v1/redact/text [post]
func (s *Server) handleRedactText(w http.ResponseWriter, r *http.Request) {
	var req RedactTextRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	out, err := s.redactionService.RedactText(r.Context(), domain.TextRedactionRequest{
		ClientID:   clientID(r.Context()),
		Text:       *req.Text,
		Categories: req.Categories,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RedactTextResponse{
		CleanText:    out.CleanText,
		Replacements: out.Replacements,
	})
}

// handleRedactDocument godoc
// @Summary      Redact document
// @Description  Redacts a structured document (DOCX, JSON document model or plain text) and returns clean text, the redacted document, or both
// @Tags         Redaction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        request  body      RedactDocumentRequest  true  "Document to redact"
// @Success      200      {object}  RedactDocumentResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input or unsupported media type"
// @Failure      401      {object}  ErrorResponse
// @Failure      413      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse  "Document could not be decoded"
// @Failure      429      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "Recognizer unavailable"
// @Router       /api/v1/redact/document [post]
func (s *Server) handleRedactDocument(w http.ResponseWriter, r *http.Request) {
	var req RedactDocumentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Document == "" {
		writeError(w, http.StatusBadRequest, "document is required")
		return
	}
	content, err := base64.StdEncoding.DecodeString(req.Document)
	if err != nil {
		writeError(w, http.StatusBadRequest, "document must be base64 encoded")
		return
	}

	preserve := true
	if req.PreserveFormatting != nil {
		preserve = *req.PreserveFormatting
	}

	out, err := s.redactionService.RedactDocument(r.Context(), domain.DocumentRedactionRequest{
		ClientID:           clientID(r.Context()),
		Content:            content,
		MediaType:          req.MediaType,
		PreserveFormatting: preserve,
		Output:             domain.OutputMode(req.Output),
		Categories:         req.Categories,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := RedactDocumentResponse{
		CleanText:    out.CleanText,
		MediaType:    out.MediaType,
		Replacements: out.Replacements,
		Warnings:     out.Warnings,
	}
	if out.Content != nil {
		resp.Document = base64.StdEncoding.EncodeToString(out.Content)
	}
	writeJSON(w, http.StatusOK, resp)
}
