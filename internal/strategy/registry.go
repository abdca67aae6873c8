package strategy

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/randutil"
)

// Kind names a built-in strategy algorithm.
type Kind string

const (
	KindConceding         Kind = "conceding"
	KindRandom            Kind = "random"
	KindTitForTat         Kind = "tit-for-tat"
	KindLearning          Kind = "learning"
	KindBinarySearch      Kind = "binary-search"
	KindRiskAware         Kind = "risk-aware"
	KindForwardLooking    Kind = "forward-looking"
	KindUtilitarian       Kind = "utilitarian"
	KindProbabilistic     Kind = "probabilistic"
	KindStrategicRejector Kind = "strategic-rejector"
)

// Role says whether a kind proposes or responds.
type Role string

const (
	RoleProposer  Role = "proposer"
	RoleResponder Role = "responder"
)

// Params describes a named, parameterised strategy. Unset parameters take
// the defaults listed by ProposerKinds and ResponderKinds; parameters that do
// not apply to the kind are ignored.
type Params struct {
	Name string `hcl:"name,label"`
	Kind string `hcl:"kind"`

	StartOffer   *float64  `hcl:"start_offer,optional"`
	Decrement    *float64  `hcl:"decrement,optional"`
	StepSize     *float64  `hcl:"step_size,optional"`
	Distribution *string   `hcl:"distribution,optional"`
	Mean         *float64  `hcl:"mean,optional"`
	StdDev       *float64  `hcl:"stddev,optional"`
	Low          *float64  `hcl:"low,optional"`
	High         *float64  `hcl:"high,optional"`
	Levels       []float64 `hcl:"levels,optional"`
	Horizon      *int      `hcl:"horizon,optional"`
	PriorAccept  *float64  `hcl:"prior_accept,optional"`

	// ResponderEstimate seeds the forward-looking estimate of a round
	// played without control.
	ResponderEstimate *float64 `hcl:"responder_utility_estimate,optional"`

	Alpha     *float64 `hcl:"alpha,optional"`
	Tolerance *int     `hcl:"stagnation_tolerance,optional"`
	Epsilon   *float64 `hcl:"epsilon,optional"`
	Floor     *float64 `hcl:"min_offer,optional"`
}

// ProposerFactory builds a fresh proposer. rng is the strategy's private
// random source.
type ProposerFactory func(rng *rand.Rand) (game.Proposer, error)

// ResponderFactory builds a fresh responder. rng is the strategy's private
// random source.
type ResponderFactory func(rng *rand.Rand) (game.Responder, error)

// KindInfo documents a built-in strategy.
type KindInfo struct {
	Kind        Kind     `json:"kind" yaml:"kind"`
	Role        Role     `json:"role" yaml:"role"`
	Description string   `json:"description" yaml:"description"`
	Params      []string `json:"params,omitempty" yaml:"params,omitempty"`
}

var proposerKinds = []KindInfo{
	{KindConceding, RoleProposer, "Start high, concede a fixed step after each rejection",
		[]string{"start_offer=100", "decrement=10"}},
	{KindRandom, RoleProposer, "Independent uniform or normal offers",
		[]string{"distribution=uniform", "mean", "stddev"}},
	{KindTitForTat, RoleProposer, "Mirror the opponent's last non-zero offer", nil},
	{KindLearning, RoleProposer, "Step up after acceptance, down after rejection",
		[]string{"start_offer=50", "step_size=5"}},
	{KindBinarySearch, RoleProposer, "Bisect the responder's acceptance threshold",
		[]string{"low=0", "high=100"}},
	{KindRiskAware, RoleProposer, "Maximise one-round expected utility over an offer grid",
		[]string{"levels=[0..100 step 10]"}},
	{KindForwardLooking, RoleProposer, "Maximise expected utility over a short horizon of future rounds",
		[]string{"levels=[0..100 step 10]", "horizon=5", "prior_accept=0.5", "responder_utility_estimate=-50"}},
}

var responderKinds = []KindInfo{
	{KindUtilitarian, RoleResponder, "Accept whenever accepting beats rejecting", nil},
	{KindTitForTat, RoleResponder, "Never accept less than the best deal already accepted", nil},
	{KindProbabilistic, RoleResponder, "Accept with logistic probability of the utility gap",
		[]string{"alpha=0.1"}},
	{KindStrategicRejector, RoleResponder, "Reject proposers that stop conceding",
		[]string{"stagnation_tolerance=4", "epsilon=0.01", "min_offer=0"}},
}

// ProposerKinds lists the built-in proposer strategies.
func ProposerKinds() []KindInfo {
	return append([]KindInfo(nil), proposerKinds...)
}

// ResponderKinds lists the built-in responder strategies.
func ResponderKinds() []KindInfo {
	return append([]KindInfo(nil), responderKinds...)
}

// DefaultProposers returns one entry per proposer kind with default
// parameters, named after the kind.
func DefaultProposers() []Params {
	return defaultParams(proposerKinds)
}

// DefaultResponders returns one entry per responder kind with default
// parameters, named after the kind.
func DefaultResponders() []Params {
	return defaultParams(responderKinds)
}

func defaultParams(kinds []KindInfo) []Params {
	out := make([]Params, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Params{Name: string(k.Kind), Kind: string(k.Kind)})
	}
	return out
}

// NewProposerFactory resolves p into a factory. One instance is built
// immediately so invalid parameters are reported here rather than mid-run.
func NewProposerFactory(p Params) (ProposerFactory, error) {
	var f ProposerFactory
	switch Kind(p.Kind) {
	case KindConceding:
		start, decrement := orFloat(p.StartOffer, 100), orFloat(p.Decrement, 10)
		f = func(*rand.Rand) (game.Proposer, error) {
			return NewConcedingProposer(start, decrement), nil
		}
	case KindRandom:
		opts := RandomOptions{Distribution: Uniform, Mean: p.Mean, StdDev: p.StdDev}
		if p.Distribution != nil {
			opts.Distribution = Distribution(*p.Distribution)
		}
		f = func(rng *rand.Rand) (game.Proposer, error) {
			return NewRandomProposer(opts, rng)
		}
	case KindTitForTat:
		f = func(*rand.Rand) (game.Proposer, error) {
			return NewTitForTatProposer(), nil
		}
	case KindLearning:
		start, step := orFloat(p.StartOffer, 50), orFloat(p.StepSize, 5)
		f = func(*rand.Rand) (game.Proposer, error) {
			return NewLearningProposer(start, step), nil
		}
	case KindBinarySearch:
		lo, hi := orFloat(p.Low, 0), orFloat(p.High, 100)
		f = func(*rand.Rand) (game.Proposer, error) {
			return NewBinarySearchProposer(lo, hi), nil
		}
	case KindRiskAware:
		levels := p.Levels
		f = func(*rand.Rand) (game.Proposer, error) {
			return NewRiskAwareProposer(levels), nil
		}
	case KindForwardLooking:
		opts := DefaultForwardLookingOptions()
		if len(p.Levels) > 0 {
			opts.Levels = p.Levels
		}
		opts.Horizon = orInt(p.Horizon, opts.Horizon)
		opts.PriorAccept = orFloat(p.PriorAccept, opts.PriorAccept)
		opts.ResponderUtilityEstimate = orFloat(p.ResponderEstimate, opts.ResponderUtilityEstimate)
		f = func(*rand.Rand) (game.Proposer, error) {
			return NewForwardLookingProposer(opts)
		}
	default:
		return nil, game.NewConfigError("kind", "unknown proposer kind %q", p.Kind)
	}

	if _, err := f(randutil.New(0)); err != nil {
		return nil, fmt.Errorf("proposer %q: %w", p.Name, err)
	}
	return f, nil
}

// NewResponderFactory resolves p into a factory. One instance is built
// immediately so invalid parameters are reported here rather than mid-run.
func NewResponderFactory(p Params) (ResponderFactory, error) {
	var f ResponderFactory
	switch Kind(p.Kind) {
	case KindUtilitarian:
		f = func(*rand.Rand) (game.Responder, error) {
			return NewUtilitarianResponder(), nil
		}
	case KindTitForTat:
		f = func(*rand.Rand) (game.Responder, error) {
			return NewTitForTatResponder(), nil
		}
	case KindProbabilistic:
		alpha := orFloat(p.Alpha, 0.1)
		f = func(rng *rand.Rand) (game.Responder, error) {
			return NewProbabilisticResponder(alpha, rng)
		}
	case KindStrategicRejector:
		opts := DefaultStrategicRejectorOptions()
		opts.StagnationTolerance = orInt(p.Tolerance, opts.StagnationTolerance)
		opts.Epsilon = orFloat(p.Epsilon, opts.Epsilon)
		opts.MinOffer = orFloat(p.Floor, opts.MinOffer)
		f = func(*rand.Rand) (game.Responder, error) {
			return NewStrategicRejectorResponder(opts)
		}
	default:
		return nil, game.NewConfigError("kind", "unknown responder kind %q", p.Kind)
	}

	if _, err := f(randutil.New(0)); err != nil {
		return nil, fmt.Errorf("responder %q: %w", p.Name, err)
	}
	return f, nil
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
