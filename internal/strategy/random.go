package strategy

import (
	"math"
	rand "math/rand/v2"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/randutil"
)

// Distribution names the sampling distribution of a RandomProposer.
type Distribution string

const (
	Uniform Distribution = "uniform"
	Normal  Distribution = "normal"
)

// RandomOptions configures a RandomProposer. Mean and StdDev are required
// for the normal distribution and ignored otherwise.
type RandomOptions struct {
	Distribution Distribution
	Mean         *float64
	StdDev       *float64
}

// RandomProposer draws every offer independently, either uniformly over the
// offer bounds or from a normal distribution clamped to them.
type RandomProposer struct {
	dist   Distribution
	mean   float64
	stddev float64
	rng    *rand.Rand
}

// NewRandomProposer validates opts and creates the proposer. An empty
// distribution means uniform.
func NewRandomProposer(opts RandomOptions, rng *rand.Rand) (*RandomProposer, error) {
	if rng == nil {
		return nil, game.NewConfigError("rng", "random proposer needs a random source")
	}
	r := &RandomProposer{dist: opts.Distribution, rng: rng}
	switch opts.Distribution {
	case "", Uniform:
		r.dist = Uniform
	case Normal:
		if opts.Mean == nil || opts.StdDev == nil {
			return nil, game.NewConfigError("distribution", "normal distribution requires mean and stddev")
		}
		if math.IsNaN(*opts.Mean) || math.IsInf(*opts.Mean, 0) {
			return nil, game.NewConfigError("mean", "must be finite, got %v", *opts.Mean)
		}
		if math.IsNaN(*opts.StdDev) || math.IsInf(*opts.StdDev, 0) {
			return nil, game.NewConfigError("stddev", "must be finite, got %v", *opts.StdDev)
		}
		if *opts.StdDev < 0 {
			return nil, game.NewConfigError("stddev", "must not be negative, got %v", *opts.StdDev)
		}
		r.mean, r.stddev = *opts.Mean, *opts.StdDev
	default:
		return nil, game.NewConfigError("distribution", "unknown distribution %q", opts.Distribution)
	}
	return r, nil
}

func (r *RandomProposer) Propose(v game.View, _ game.Seat) float64 {
	var offer float64
	if r.dist == Normal {
		offer = randutil.Normal(r.rng, r.mean, r.stddev)
	} else {
		offer = randutil.Uniform(r.rng, v.MinOffer(), v.MaxOffer())
	}
	return v.Clamp(offer)
}
