// Package round models the lifecycle of a single play round as an
// explicit state machine.
//
// A round starts awaiting input, moves to PredictionSubmitted once the
// player locks in a prediction, and ends Scored once the oracle result
// arrives. Reset returns it to the initial state, discarding the
// prediction and result. Transitions called out of order fail with
// ErrInvalidTransition.
package round

import (
	"fmt"
	"strings"

	"github.com/ecoperks/ecosort/internal/domain/category"
	"github.com/ecoperks/ecosort/internal/domain/labels"
	"github.com/ecoperks/ecosort/internal/domain/scoring"
)

// State identifies where a round is in its lifecycle.
type State int

// Round lifecycle states.
const (
	AwaitingInput State = iota
	PredictionSubmitted
	Scored
)

// String renders the state for logs and errors.
func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting_input"
	case PredictionSubmitted:
		return "prediction_submitted"
	case Scored:
		return "scored"
	default:
		return "unknown"
	}
}

// Round associates one prediction with one oracle result and the
// derived score. It is not safe for concurrent use; each round belongs
// to a single interaction.
type Round struct {
	id     string
	state  State
	scorer *scoring.Scorer

	player    string
	predicted category.Set

	oracleText string
	actual     category.Set
	breakdown  scoring.Breakdown
}

// New creates a round in the AwaitingInput state. The scorer must not
// be nil.
func New(id string, scorer *scoring.Scorer) *Round {
	return &Round{
		id:     id,
		state:  AwaitingInput,
		scorer: scorer,
	}
}

// ID returns the round identifier.
func (r *Round) ID() string { return r.id }

// State returns the current lifecycle state.
func (r *Round) State() State { return r.state }

// Player returns the submitted player name, empty before submission.
func (r *Round) Player() string { return r.player }

// Predicted returns the locked-in prediction set.
func (r *Round) Predicted() category.Set { return r.predicted }

// Actual returns the oracle-derived category set, nil before scoring.
func (r *Round) Actual() category.Set { return r.actual }

// OracleText returns the raw oracle response, empty before scoring.
func (r *Round) OracleText() string { return r.oracleText }

// Breakdown returns the score breakdown; zero value before scoring.
func (r *Round) Breakdown() scoring.Breakdown { return r.breakdown }

// Score returns the round score; zero before scoring.
func (r *Round) Score() int { return r.breakdown.Score }

// SubmitPrediction locks in the player's prediction and moves the
// round to PredictionSubmitted. The player name and prediction set
// must be non-empty; the prediction is immutable afterwards.
func (r *Round) SubmitPrediction(player string, predicted category.Set) error {
	if r.state != AwaitingInput {
		return fmt.Errorf("%w: submit_prediction in state %s", ErrInvalidTransition, r.state)
	}
	if strings.TrimSpace(player) == "" {
		return fmt.Errorf("%w: empty player name", ErrValidation)
	}
	if predicted.IsEmpty() {
		return fmt.Errorf("%w: empty prediction set", ErrValidation)
	}
	r.player = player
	r.predicted = predicted
	r.state = PredictionSubmitted
	return nil
}

// ReceiveOracleResult records the oracle's free-text answer, extracts
// the actual category set, scores the prediction, and moves the round
// to Scored.
func (r *Round) ReceiveOracleResult(text string) error {
	if r.state != PredictionSubmitted {
		return fmt.Errorf("%w: receive_oracle_result in state %s", ErrInvalidTransition, r.state)
	}
	r.oracleText = text
	r.actual = labels.Extract(text)
	r.breakdown = r.scorer.Explain(r.predicted, r.actual)
	r.state = Scored
	return nil
}

// Reset discards the prediction and result and returns the round to
// AwaitingInput. Valid from any state.
func (r *Round) Reset() {
	r.player = ""
	r.predicted = nil
	r.oracleText = ""
	r.actual = nil
	r.breakdown = scoring.Breakdown{}
	r.state = AwaitingInput
}
