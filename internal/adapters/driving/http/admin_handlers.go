package http

import (
	"net/http"
	"strconv"

	"github.com/custodia-labs/sercha-scrub/internal/core/domain"
)

// EventListResponse wraps recent audit events
type EventListResponse struct {
	Events []*domain.RedactionEvent `json:"events"`
}

// handleStats godoc
// @Summary      Usage statistics
// @Description  Aggregate request and redaction counters
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Success      200  {object}  domain.UsageStats
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.adminService.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleListEvents godoc
// @Summary      Recent redaction events
// @Description  Most recent audit events, newest first. Events carry counts only.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        limit  query     int  false  "Maximum number of events (default 50, max 500)"
// @Success      200    {object}  EventListResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      403    {object}  ErrorResponse
// @Router       /api/v1/admin/events [get]
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	events, err := s.adminService.RecentEvents(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.RedactionEvent{}
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: events})
}

// handleGetRecognizer godoc
// @Summary      Recognizer status
// @Description  Reports the configured entity recognizer and probes its health
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Success      200  {object}  domain.RecognizerStatus
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/admin/recognizer [get]
func (s *Server) handleGetRecognizer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.adminService.RecognizerStatus(r.Context()))
}

// handleUpdateRecognizer godoc
// @Summary      Update recognizer
// @Description  Points the service at a different recognizer endpoint. An empty endpoint disables entity recognition.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Param        request  body      domain.UpdateRecognizerRequest  true  "Recognizer endpoint"
// @Success      200      {object}  domain.RecognizerStatus
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      502      {object}  ErrorResponse  "New recognizer failed its health check"
// @Router       /api/v1/admin/recognizer [put]
func (s *Server) handleUpdateRecognizer(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateRecognizerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	status, err := s.adminService.UpdateRecognizer(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
