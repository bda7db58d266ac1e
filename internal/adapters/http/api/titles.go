// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// TitlesDependencies defines the interface for title listing.
type TitlesDependencies interface {
	Titles(ctx context.Context) []string
}

// TitlesHandler handles title list requests.
type TitlesHandler struct {
	deps TitlesDependencies
}

// NewTitlesHandler creates a new titles handler.
func NewTitlesHandler(deps TitlesDependencies) *TitlesHandler {
	return &TitlesHandler{deps: deps}
}

// HandleGetTitles handles GET /api/titles requests.
func (h *TitlesHandler) HandleGetTitles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Titles(r.Context()))
}
