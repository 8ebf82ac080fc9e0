// Package scoring computes round scores from predicted and actual
// category sets.
package scoring

import (
	"github.com/ecoperks/ecosort/internal/domain/category"
)

// Default scoring weights.
const (
	defaultPointsPerCorrect = 5
	defaultPenaltyPerWrong  = 3
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithPointsPerCorrect sets the reward for each correctly predicted
// category.
func WithPointsPerCorrect(points int) Option {
	return func(s *Scorer) {
		if points > 0 {
			s.pointsPerCorrect = points
		}
	}
}

// WithPenaltyPerWrong sets the penalty for each wrongly predicted
// category.
func WithPenaltyPerWrong(penalty int) Option {
	return func(s *Scorer) {
		if penalty > 0 {
			s.penaltyPerWrong = penalty
		}
	}
}

// Breakdown splits a scored prediction into its comparison sets.
type Breakdown struct {
	// Correct holds categories predicted and present.
	Correct category.Set
	// Missed holds categories present but not predicted. They carry
	// neither reward nor penalty.
	Missed category.Set
	// Wrong holds categories predicted but absent.
	Wrong category.Set
	// Score is the resulting non-negative round score.
	Score int
}

// Scorer maps (predicted, actual) category sets to a non-negative
// integer score. The default configuration awards 5 per correct
// category and deducts 3 per wrong one, floored at zero.
type Scorer struct {
	pointsPerCorrect int
	penaltyPerWrong  int
}

// New creates a Scorer with the given options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		pointsPerCorrect: defaultPointsPerCorrect,
		penaltyPerWrong:  defaultPenaltyPerWrong,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the score for a prediction against the actual set.
// An empty prediction scores zero regardless of the actual set.
// Deterministic and total: no input combination fails.
func (s *Scorer) Score(predicted, actual category.Set) int {
	return s.Explain(predicted, actual).Score
}

// Explain computes the score along with the correct/missed/wrong
// breakdown used for player feedback.
func (s *Scorer) Explain(predicted, actual category.Set) Breakdown {
	b := Breakdown{
		Correct: predicted.Intersect(actual),
		Missed:  actual.Diff(predicted),
		Wrong:   predicted.Diff(actual),
	}
	if predicted.IsEmpty() {
		return b
	}
	raw := s.pointsPerCorrect*b.Correct.Len() - s.penaltyPerWrong*b.Wrong.Len()
	if raw > 0 {
		b.Score = raw
	}
	return b
}

// MaxScore returns the highest score a single round can yield: every
// category predicted and present.
func (s *Scorer) MaxScore() int {
	return s.pointsPerCorrect * category.Count
}
