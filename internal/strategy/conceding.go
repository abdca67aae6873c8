package strategy

import "github.com/lox/bargainsim/internal/game"

// ConcedingProposer starts high and lowers its offer by a fixed decrement
// after every rejection. It holds its level once an offer is accepted.
type ConcedingProposer struct {
	current   float64
	decrement float64
}

// NewConcedingProposer creates a proposer that opens at start.
func NewConcedingProposer(start, decrement float64) *ConcedingProposer {
	return &ConcedingProposer{current: start, decrement: decrement}
}

func (c *ConcedingProposer) Propose(v game.View, _ game.Seat) float64 {
	return v.Clamp(c.current)
}

func (c *ConcedingProposer) ReceiveFeedback(accepted bool, _ float64, _ game.View) {
	if !accepted {
		c.current -= c.decrement
	}
}
