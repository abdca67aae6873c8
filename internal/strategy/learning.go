package strategy

import "github.com/lox/bargainsim/internal/game"

// LearningProposer nudges its offer up by a fixed step after an acceptance
// and down by the same step after a rejection.
type LearningProposer struct {
	current float64
	step    float64
}

// NewLearningProposer creates a proposer that opens at start.
func NewLearningProposer(start, step float64) *LearningProposer {
	return &LearningProposer{current: start, step: step}
}

func (l *LearningProposer) Propose(v game.View, _ game.Seat) float64 {
	return v.Clamp(l.current)
}

func (l *LearningProposer) ReceiveFeedback(accepted bool, _ float64, _ game.View) {
	if accepted {
		l.current += l.step
	} else {
		l.current -= l.step
	}
}
