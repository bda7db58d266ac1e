// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/selimbas/revquiz/internal/adapters/repository"
)

// ScoresDependencies defines the interface for score submission.
type ScoresDependencies interface {
	SubmitScore(ctx context.Context, participant, category string, score float64) error
}

// ScoresHandler handles score submissions.
type ScoresHandler struct {
	deps ScoresDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoresDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

type scoreAck struct {
	Status string `json:"status"`
}

// HandlePostScore handles POST /api/scores requests. A missing username is a
// 400 with no ledger effect.
func (h *ScoresHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "missing_username", Wrap(op, err))
		return
	}

	if err := h.deps.SubmitScore(r.Context(), req.Username, req.Category, req.Score); err != nil {
		if errors.Is(err, repository.ErrMissingParticipant) {
			writeError(w, http.StatusBadRequest, "missing_username", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, scoreAck{Status: "ok"})
}
