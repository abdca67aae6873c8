package strategy

import "github.com/lox/bargainsim/internal/game"

// TitForTatProposer offers whatever its opponent offered last. It opens
// with 0 and ignores zero-valued offers, so two mirrors never lock each
// other at nothing once either has seen a real offer.
type TitForTatProposer struct {
	last     float64
	observed bool
}

// NewTitForTatProposer creates a mirroring proposer.
func NewTitForTatProposer() *TitForTatProposer {
	return &TitForTatProposer{}
}

func (t *TitForTatProposer) Propose(game.View, game.Seat) float64 {
	if !t.observed {
		return 0
	}
	return t.last
}

func (t *TitForTatProposer) ObserveOpponentOffer(offer float64) {
	if offer != 0 {
		t.last = offer
		t.observed = true
	}
}

// TitForTatResponder accepts an offer only if it beats rejecting and is at
// least as good as the best deal it has accepted before. Once it has taken
// a deal it never settles for less.
type TitForTatResponder struct {
	best     float64
	accepted bool
}

// NewTitForTatResponder creates a ratcheting responder.
func NewTitForTatResponder() *TitForTatResponder {
	return &TitForTatResponder{}
}

func (t *TitForTatResponder) Respond(offer float64, v game.View, self game.Seat) bool {
	utility := -offer
	if utility <= v.RejectUtility(self, false) {
		return false
	}
	if t.accepted && utility < t.best {
		return false
	}
	t.best = utility
	t.accepted = true
	return true
}

// Floor returns the utility of the best accepted deal and whether any deal
// was accepted yet.
func (t *TitForTatResponder) Floor() (float64, bool) {
	return t.best, t.accepted
}
