// Package service provides the core game service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/ecoperks/ecosort/internal/adapters/oracle"
	repository "github.com/ecoperks/ecosort/internal/adapters/repository"
	"github.com/ecoperks/ecosort/internal/domain/category"
	"github.com/ecoperks/ecosort/internal/domain/dedupe"
	"github.com/ecoperks/ecosort/internal/domain/round"
	"github.com/ecoperks/ecosort/internal/domain/scoring"
	"github.com/ecoperks/ecosort/pkg/logger"
	"github.com/ecoperks/ecosort/pkg/metrics"
)

// Service implements the API dependencies for the waste-sorting game:
// round play, leaderboard reads, and administrative reset.
type Service struct {
	mu sync.RWMutex

	// Core components
	leaderboard repository.Store
	deduper     dedupe.Deduper
	scorer      *scoring.Scorer
	classifier  oracle.Classifier

	// Configuration
	dedupeSize       int
	pointsPerCorrect int
	penaltyPerWrong  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClassifier sets the classifier oracle used to resolve rounds.
func WithClassifier(c oracle.Classifier) Option {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithDedupeSize bounds the round idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithScoringWeights sets the reward and penalty per category.
func WithScoringWeights(pointsPerCorrect, penaltyPerWrong int) Option {
	return func(s *Service) {
		if pointsPerCorrect > 0 {
			s.pointsPerCorrect = pointsPerCorrect
		}
		if penaltyPerWrong > 0 {
			s.penaltyPerWrong = penaltyPerWrong
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:       50_000,
		pointsPerCorrect: 5,
		penaltyPerWrong:  3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components. Idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.classifier == nil {
		return fmt.Errorf("%w: no classifier configured", ErrNotStarted)
	}

	s.leaderboard = repository.NewMemStore(ctx)
	s.deduper = dedupe.New(dedupe.WithMaxSize(s.dedupeSize))
	s.scorer = scoring.New(
		scoring.WithPointsPerCorrect(s.pointsPerCorrect),
		scoring.WithPenaltyPerWrong(s.penaltyPerWrong),
	)

	s.started = true
	s.logger.Info(ctx, "game service started",
		logger.Int("pointsPerCorrect", s.pointsPerCorrect),
		logger.Int("penaltyPerWrong", s.penaltyPerWrong),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop shuts the service down. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "game service stopped")
}

// SeenAndRecord atomically checks whether a round id was seen and
// records it if not. Returns true if it was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordRoundDuplicate()
	}
	return seen
}

// Unrecord releases a round id so the round can be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// PlayRound runs one full round: lock in the prediction, ask the
// classifier oracle about the image, score, and credit the
// leaderboard. On oracle failure the round is abandoned un-scored and
// the error is returned for the caller to surface.
func (s *Service) PlayRound(ctx context.Context, roundID, player string, predicted category.Set, imageBytes []byte) (round.Result, error) {
	r := round.New(roundID, s.scorer)
	if err := r.SubmitPrediction(player, predicted); err != nil {
		metrics.RecordRoundRejected()
		return round.Result{}, err
	}

	text, err := s.classifier.Classify(ctx, imageBytes)
	if err != nil {
		metrics.RecordErrorByComponent("service", "oracle")
		s.logger.Error(ctx, "oracle call failed",
			logger.String("roundID", roundID),
			logger.String("player", player),
			logger.Error(err),
		)
		return round.Result{}, err
	}

	return s.finishRound(ctx, r, text)
}

// SubmitRound scores a round whose oracle text the caller already
// holds. This is the entry point for hosting UIs that perform the
// classifier call themselves.
func (s *Service) SubmitRound(ctx context.Context, roundID, player string, predicted category.Set, oracleText string) (round.Result, error) {
	r := round.New(roundID, s.scorer)
	if err := r.SubmitPrediction(player, predicted); err != nil {
		metrics.RecordRoundRejected()
		return round.Result{}, err
	}
	return s.finishRound(ctx, r, oracleText)
}

// finishRound drives the round to Scored and records a positive score
// on the leaderboard. Zero scores are never recorded.
func (s *Service) finishRound(ctx context.Context, r *round.Round, oracleText string) (round.Result, error) {
	if err := r.ReceiveOracleResult(oracleText); err != nil {
		return round.Result{}, err
	}

	result := r.Result()
	if result.Score > 0 {
		if err := s.leaderboard.Add(ctx, result.Player, result.Score); err != nil {
			metrics.RecordErrorByComponent("service", "leaderboard")
			return round.Result{}, fmt.Errorf("record score: %w", err)
		}
	}
	metrics.RecordRoundScored(result.Score)

	s.logger.Debug(ctx, "round scored",
		logger.String("roundID", result.RoundID),
		logger.String("player", result.Player),
		logger.Int("score", result.Score),
		logger.String("predicted", result.Predicted.String()),
		logger.String("actual", result.Actual.String()),
	)
	return result, nil
}

// Top returns the top N leaderboard entries.
func (s *Service) Top(ctx context.Context, n int) ([]repository.Entry, error) {
	return s.leaderboard.Top(ctx, n)
}

// Rank returns the rank and score for a single player.
func (s *Service) Rank(ctx context.Context, player string) (repository.Entry, error) {
	return s.leaderboard.Rank(ctx, player)
}

// ResetLeaderboard clears every score. Idempotent.
func (s *Service) ResetLeaderboard(ctx context.Context) {
	s.leaderboard.Reset(ctx)
	s.logger.Info(ctx, "leaderboard reset")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		players := s.leaderboard.Count(context.Background())
		stats["players"] = players
		stats["seenRounds"] = s.deduper.Size()
		metrics.UpdateLeaderboardPlayers(players)
	}
	return stats
}
