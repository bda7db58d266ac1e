// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// LogoutDependencies defines the interface for participant cleanup.
type LogoutDependencies interface {
	Logout(ctx context.Context, participant string) int
}

// LogoutHandler handles logout requests.
type LogoutHandler struct {
	deps LogoutDependencies
}

// NewLogoutHandler creates a new logout handler.
func NewLogoutHandler(deps LogoutDependencies) *LogoutHandler {
	return &LogoutHandler{deps: deps}
}

type logoutRequest struct {
	Username string `json:"username"`
}

type logoutAck struct {
	Status  string `json:"status"`
	Removed int    `json:"removed"`
}

// HandlePostLogout handles POST /api/logout requests, removing every ledger
// record for the participant.
func (h *LogoutHandler) HandlePostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_logout"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	removed := h.deps.Logout(r.Context(), req.Username)
	writeJSON(w, http.StatusOK, logoutAck{Status: "ok", Removed: removed})
}
