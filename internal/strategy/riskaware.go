package strategy

import "github.com/lox/bargainsim/internal/game"

const naiveAcceptProb = 0.5

// RiskAwareProposer picks the grid level with the best one-round expected
// utility, weighing the offer against the average rejection penalty it has
// suffered so far.
type RiskAwareProposer struct {
	grid       offerGrid
	penalties  []float64
	penaltySum float64
}

// NewRiskAwareProposer creates a proposer over levels, or over
// DefaultOfferLevels when levels is empty.
func NewRiskAwareProposer(levels []float64) *RiskAwareProposer {
	return &RiskAwareProposer{grid: newOfferGrid(levels)}
}

func (r *RiskAwareProposer) Propose(v game.View, self game.Seat) float64 {
	rejectUtility := v.RejectUtility(self, true)
	if len(r.penalties) > 0 {
		rejectUtility = r.penaltySum / float64(len(r.penalties))
	}

	idx := r.grid.best(func(i int) float64 {
		p := r.grid.stats[i].acceptRate(naiveAcceptProb)
		return p*r.grid.levels[i] + (1-p)*rejectUtility
	})
	return r.grid.levels[idx]
}

func (r *RiskAwareProposer) ReceiveFeedback(accepted bool, offer float64, v game.View) {
	r.grid.record(accepted, offer)
	if !accepted {
		penalty := v.RejectUtility(v.Proposer(), true)
		r.penalties = append(r.penalties, penalty)
		r.penaltySum += penalty
	}
}

// Penalties returns the rejection penalties observed so far.
func (r *RiskAwareProposer) Penalties() []float64 {
	out := make([]float64, len(r.penalties))
	copy(out, r.penalties)
	return out
}
