package strategy

import (
	"math"

	"github.com/lox/bargainsim/internal/game"
)

// ForwardLookingOptions configures a ForwardLookingProposer.
type ForwardLookingOptions struct {
	Levels []float64
	// Horizon is the number of rounds, including the current one, the
	// proposer looks ahead.
	Horizon int
	// PriorAccept is the acceptance probability assumed for untried levels.
	PriorAccept float64
	// ResponderUtilityEstimate is the initial guess of what a round is worth
	// after losing the proposer role.
	ResponderUtilityEstimate float64
}

// DefaultForwardLookingOptions returns a five-round horizon over the default
// grid with a neutral prior.
func DefaultForwardLookingOptions() ForwardLookingOptions {
	return ForwardLookingOptions{
		Levels:                   DefaultOfferLevels(),
		Horizon:                  5,
		PriorAccept:              0.5,
		ResponderUtilityEstimate: -50,
	}
}

// ForwardLookingProposer scores each grid level by simulating a few rounds
// ahead. An accepted offer keeps control with probability 1-PBase per round;
// a rejected one costs the penalty now and risks handing control over at the
// bumped switch probability, after which each round is worth the running
// estimate of the responder's utility.
type ForwardLookingProposer struct {
	grid     offerGrid
	horizon  int
	prior    float64
	estimate float64
}

// NewForwardLookingProposer validates opts and creates the proposer.
func NewForwardLookingProposer(opts ForwardLookingOptions) (*ForwardLookingProposer, error) {
	if opts.Horizon < 1 {
		return nil, game.NewConfigError("horizon", "must be at least 1, got %d", opts.Horizon)
	}
	if opts.PriorAccept < 0 || opts.PriorAccept > 1 {
		return nil, game.NewConfigError("prior_accept", "must be within [0, 1], got %v", opts.PriorAccept)
	}
	return &ForwardLookingProposer{
		grid:     newOfferGrid(opts.Levels),
		horizon:  opts.Horizon,
		prior:    opts.PriorAccept,
		estimate: opts.ResponderUtilityEstimate,
	}, nil
}

func (f *ForwardLookingProposer) Propose(v game.View, self game.Seat) float64 {
	idx := f.grid.best(func(i int) float64 {
		p := f.grid.stats[i].acceptRate(f.prior)
		return f.expectedUtility(f.grid.levels[i], p, v, self)
	})
	return f.grid.levels[idx]
}

func (f *ForwardLookingProposer) expectedUtility(offer, pAccept float64, v game.View, self game.Seat) float64 {
	keep := 1 - v.PBase()
	bumped := math.Min(1, v.PBase()+v.PRejectBump())

	var accept float64
	for t := 0; t < f.horizon; t++ {
		accept += math.Pow(keep, float64(t)) * offer
	}

	reject := v.RejectUtility(self, true)
	control := 1.0
	for t := 1; t < f.horizon; t++ {
		control *= 1 - bumped
		reject += control*offer + (1-control)*f.estimate
	}

	return pAccept*accept + (1-pAccept)*reject
}

func (f *ForwardLookingProposer) ReceiveFeedback(accepted bool, offer float64, v game.View) {
	f.grid.record(accepted, offer)
	if !accepted {
		penalty := v.RejectUtility(v.Proposer(), true)
		f.estimate = 0.9*f.estimate + 0.1*penalty
	}
}

// Estimate returns the current estimate of a round's worth without control.
func (f *ForwardLookingProposer) Estimate() float64 {
	return f.estimate
}
