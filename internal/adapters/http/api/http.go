// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/ecoperks/ecosort/internal/adapters/repository"
	"github.com/ecoperks/ecosort/internal/domain/category"
	"github.com/ecoperks/ecosort/internal/domain/round"
)

// Dependencies bundles what the HTTP handlers need. The interface
// keeps the handler layer loosely coupled to the service package.
type Dependencies interface {
	// SeenAndRecord atomically checks-and-marks a round id. Returns
	// true if the round was already processed.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord releases a round id after a failed round.
	Unrecord(ctx context.Context, id string)

	// PlayRound runs a full round against the classifier oracle.
	PlayRound(ctx context.Context, roundID, player string, predicted category.Set, imageBytes []byte) (round.Result, error)

	// SubmitRound scores a round from caller-provided oracle text.
	SubmitRound(ctx context.Context, roundID, player string, predicted category.Set, oracleText string) (round.Result, error)

	// Read operations expose leaderboard data.
	Top(ctx context.Context, n int) ([]repository.Entry, error)
	Rank(ctx context.Context, player string) (repository.Entry, error)

	// ResetLeaderboard clears all scores.
	ResetLeaderboard(ctx context.Context)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = repository.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	roundsHandler      *RoundsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	playHandler        *playHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		roundsHandler:      NewRoundsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLeaderboardLimit),
		rankHandler:        NewRankHandler(deps),
		playHandler:        newPlayHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rounds", MetricsMiddleware(s.roundsHandler.HandlePostRound, "rounds"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/leaderboard/reset", MetricsMiddleware(s.leaderboardHandler.HandleReset, "leaderboard_reset"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/play", s.playHandler.HandlePlay)
	mux.HandleFunc("/{$}", s.playHandler.HandleRoot)
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

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
