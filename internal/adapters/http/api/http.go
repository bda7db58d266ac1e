// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/selimbas/revquiz/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Titles lists every catalog title name for autocomplete.
	Titles(ctx context.Context) []string

	// Round returns the quiz entries for one round. A cold cache is reported
	// with an error handlers translate to 503.
	Round(ctx context.Context, category string) ([]types.QuizEntry, error)

	// SubmitScore records a score for a participant in a category.
	SubmitScore(ctx context.Context, participant, category string, score float64) error

	// Leaderboard returns the top rows for a category, highest first.
	Leaderboard(ctx context.Context, category string) ([]types.ScoreEntry, error)

	// Logout removes every ledger record for a participant.
	Logout(ctx context.Context, participant string) int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	titlesHandler      *TitlesHandler
	quizHandler        *QuizHandler
	scoresHandler      *ScoresHandler
	leaderboardHandler *LeaderboardHandler
	logoutHandler      *LogoutHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		titlesHandler:      NewTitlesHandler(deps),
		quizHandler:        NewQuizHandler(deps),
		scoresHandler:      NewScoresHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		logoutHandler:      NewLogoutHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/titles", MetricsMiddleware(s.titlesHandler.HandleGetTitles, "titles"))
	mux.HandleFunc("/api/quiz", MetricsMiddleware(s.quizHandler.HandleGetQuiz, "quiz"))
	mux.HandleFunc("/api/scores", MetricsMiddleware(s.scoresHandler.HandlePostScore, "scores"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/logout", MetricsMiddleware(s.logoutHandler.HandlePostLogout, "logout"))
}

// scoreRequest mirrors the submit payload for POST /api/scores.
type scoreRequest struct {
	Username string  `json:"username"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

func (s scoreRequest) validate() error {
	if strings.TrimSpace(s.Username) == "" {
		return ErrMissingUsername
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
