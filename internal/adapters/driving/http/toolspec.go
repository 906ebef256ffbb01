package http

import "net/http"

// ToolSpec describes the tools this server offers to an OpenWebUI instance
type ToolSpec struct {
	Tools []Tool `json:"tools"`
}

// Tool is one OpenWebUI tool entry
type Tool struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Parameters  map[string]ToolParameter `json:"parameters"`
	Endpoint    string                   `json:"endpoint"`
	Method      string                   `json:"method"`
	OutputKey   string                   `json:"output_key"`
}

// ToolParameter describes one tool input
type ToolParameter struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// RootResponse is returned by the tool server root
type RootResponse struct {
	Status   string `json:"status" example:"Tool Server running"`
	ToolSpec string `json:"toolspec" example:"/toolspec"`
}

var scrubToolSpec = ToolSpec{
	Tools: []Tool{
		{
			Name:        "scrub",
			Description: "Entfernt persönliche Daten aus Texten.",
			Parameters: map[string]ToolParameter{
				"text": {Type: "string", Description: "Zu bereinigender Text"},
			},
			Endpoint:  "/scrub",
			Method:    http.MethodPost,
			OutputKey: "clean_text",
		},
	},
}

// handleRoot godoc
// @Summary      Tool server status
// @Description  Reports that the tool server is running and where its tool specification lives
// @Tags         Tools
// @Produce      json
// @Success      200  {object}  RootResponse
// @Router       / [get]
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{Status: "Tool Server running", ToolSpec: "/toolspec"})
}

// handleToolSpec godoc
// @Summary      Tool specification
// @Description  OpenWebUI tool specification for the scrub tool
// @Tags         Tools
// @Produce      json
// @Success      200  {object}  ToolSpec
// @Router       /toolspec [get]
func (s *Server) handleToolSpec(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scrubToolSpec)
}
