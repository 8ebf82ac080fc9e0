package round

import "github.com/ecoperks/ecosort/internal/domain/category"

// Result is the read model of a scored round, shaped for player
// feedback.
type Result struct {
	RoundID    string
	Player     string
	Score      int
	Predicted  category.Set
	Actual     category.Set
	Correct    category.Set
	Missed     category.Set
	Wrong      category.Set
	OracleText string
}

// Result snapshots the scored round. Only meaningful once the round
// reached the Scored state.
func (r *Round) Result() Result {
	return Result{
		RoundID:    r.id,
		Player:     r.player,
		Score:      r.breakdown.Score,
		Predicted:  r.predicted,
		Actual:     r.actual,
		Correct:    r.breakdown.Correct,
		Missed:     r.breakdown.Missed,
		Wrong:      r.breakdown.Wrong,
		OracleText: r.oracleText,
	}
}
