// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/selimbas/revquiz/internal/app"
	"github.com/selimbas/revquiz/internal/domain/types"
)

// retryAfterSeconds is the hint sent while the cache is still warming up.
const retryAfterSeconds = "5"

// QuizDependencies defines the interface for round serving.
type QuizDependencies interface {
	Round(ctx context.Context, category string) ([]types.QuizEntry, error)
}

// QuizHandler handles quiz round requests.
type QuizHandler struct {
	deps QuizDependencies
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(deps QuizDependencies) *QuizHandler {
	return &QuizHandler{deps: deps}
}

// HandleGetQuiz handles GET /api/quiz?category= requests. While the cache is
// cold the handler answers 503 with a retry hint instead of blocking on the
// upstream provider.
func (h *QuizHandler) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quiz"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	category := r.URL.Query().Get("category")
	round, err := h.deps.Round(r.Context(), category)
	if err != nil {
		if errors.Is(err, app.ErrNotReady) {
			w.Header().Set("Retry-After", retryAfterSeconds)
			writeError(w, http.StatusServiceUnavailable, "not_ready", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, round)
}
