package game

// Round records the outcome of one round. Records are appended to the game
// history and never modified afterwards.
type Round struct {
	Round          int     `json:"round" yaml:"round"`
	Proposer       string  `json:"proposer" yaml:"proposer"`
	Responder      string  `json:"responder" yaml:"responder"`
	Offer          float64 `json:"offer" yaml:"offer"`
	Accepted       bool    `json:"accepted" yaml:"accepted"`
	ProposerDelta  float64 `json:"proposer_delta" yaml:"proposer_delta"`
	ResponderDelta float64 `json:"responder_delta" yaml:"responder_delta"`
	Player1Utility float64 `json:"player1_utility" yaml:"player1_utility"`
	Player2Utility float64 `json:"player2_utility" yaml:"player2_utility"`
	// NextSwitchProb is the probability used for the role switch that ends
	// this round.
	NextSwitchProb float64 `json:"next_round_switching_prob" yaml:"next_round_switching_prob"`
}

// Rejections counts the rejected rounds in history.
func Rejections(history []Round) int {
	n := 0
	for _, r := range history {
		if !r.Accepted {
			n++
		}
	}
	return n
}

// Replay rebuilds cumulative utilities from the per-round deltas of history.
// player1 is the name of the first player; names are unique within a game.
func Replay(player1 string, history []Round) (p1, p2 float64) {
	for _, r := range history {
		if r.Proposer == player1 {
			p1 += r.ProposerDelta
			p2 += r.ResponderDelta
		} else {
			p1 += r.ResponderDelta
			p2 += r.ProposerDelta
		}
	}
	return p1, p2
}
