package strategy

import (
	"math"
	rand "math/rand/v2"

	"github.com/lox/bargainsim/internal/game"
)

// ProbabilisticResponder accepts with a logistic probability of the utility
// gap between accepting and rejecting. Alpha scales the gap: small values
// make the responder noisy, large values make it nearly utilitarian.
type ProbabilisticResponder struct {
	alpha float64
	rng   *rand.Rand
}

// NewProbabilisticResponder creates the responder.
func NewProbabilisticResponder(alpha float64, rng *rand.Rand) (*ProbabilisticResponder, error) {
	if rng == nil {
		return nil, game.NewConfigError("rng", "probabilistic responder needs a random source")
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, game.NewConfigError("alpha", "must be finite, got %v", alpha)
	}
	return &ProbabilisticResponder{alpha: alpha, rng: rng}, nil
}

// AcceptProbability returns the chance of accepting offer.
func (p *ProbabilisticResponder) AcceptProbability(offer float64, v game.View, self game.Seat) float64 {
	gap := -offer - v.RejectUtility(self, false)
	return 1 / (1 + math.Exp(-p.alpha*gap))
}

func (p *ProbabilisticResponder) Respond(offer float64, v game.View, self game.Seat) bool {
	return p.rng.Float64() < p.AcceptProbability(offer, v, self)
}
