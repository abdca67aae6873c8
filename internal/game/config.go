package game

import "math"

// Range is a closed interval used for random rejection penalties.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// IsZero reports whether the range always yields zero.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Config holds the immutable parameters of a game.
type Config struct {
	// PBase is the role-switch probability the game starts with and returns
	// to after an accepted offer.
	PBase float64 `json:"p" yaml:"p"`
	// PRejectBump is added to the current switch probability on every
	// rejection, capped at 1.
	PRejectBump float64 `json:"p_reject_bump" yaml:"p_reject_bump"`
	// PResetOnAccept restores PBase after an accepted offer.
	PResetOnAccept bool `json:"p_reset_on_accept" yaml:"p_reset_on_accept"`

	// Flat rejection costs charged to each player regardless of role.
	Player1Bad float64 `json:"player_1_bad" yaml:"player_1_bad"`
	Player2Bad float64 `json:"player_2_bad" yaml:"player_2_bad"`

	// Role-dependent rejection costs.
	ProposerBad float64 `json:"proposer_bad" yaml:"proposer_bad"`
	ReceiverBad float64 `json:"receiver_bad" yaml:"receiver_bad"`

	MinOffer float64 `json:"min_offer" yaml:"min_offer"`
	MaxOffer float64 `json:"max_offer" yaml:"max_offer"`

	// Optional uniform jitter added to each side's rejection penalty.
	ProposerPenaltyRange Range `json:"proposer_random_penalty_range" yaml:"proposer_random_penalty_range"`
	ReceiverPenaltyRange Range `json:"receiver_random_penalty_range" yaml:"receiver_random_penalty_range"`
}

// DefaultConfig returns a game that never switches roles, charges nothing on
// rejection and accepts offers in [0, 100].
func DefaultConfig() Config {
	return Config{
		PResetOnAccept: true,
		MinOffer:       0,
		MaxOffer:       100,
	}
}

// Validate checks the configuration for values the engine cannot honour.
func (c Config) Validate() error {
	if !inUnit(c.PBase) {
		return NewConfigError("p_base", "must be within [0, 1], got %v", c.PBase)
	}
	if !inUnit(c.PRejectBump) {
		return NewConfigError("p_reject_bump", "must be within [0, 1], got %v", c.PRejectBump)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"player_1_bad", c.Player1Bad},
		{"player_2_bad", c.Player2Bad},
		{"proposer_bad", c.ProposerBad},
		{"receiver_bad", c.ReceiverBad},
		{"min_offer", c.MinOffer},
		{"max_offer", c.MaxOffer},
		{"proposer_random_penalty_range", c.ProposerPenaltyRange.Min},
		{"proposer_random_penalty_range", c.ProposerPenaltyRange.Max},
		{"receiver_random_penalty_range", c.ReceiverPenaltyRange.Min},
		{"receiver_random_penalty_range", c.ReceiverPenaltyRange.Max},
	} {
		if !finite(f.value) {
			return NewConfigError(f.name, "must be finite, got %v", f.value)
		}
	}
	if c.MinOffer > c.MaxOffer {
		return NewConfigError("offer bounds", "min_offer %v exceeds max_offer %v", c.MinOffer, c.MaxOffer)
	}
	if c.ProposerPenaltyRange.Min > c.ProposerPenaltyRange.Max {
		return NewConfigError("proposer_random_penalty_range", "min %v exceeds max %v",
			c.ProposerPenaltyRange.Min, c.ProposerPenaltyRange.Max)
	}
	if c.ReceiverPenaltyRange.Min > c.ReceiverPenaltyRange.Max {
		return NewConfigError("receiver_random_penalty_range", "min %v exceeds max %v",
			c.ReceiverPenaltyRange.Min, c.ReceiverPenaltyRange.Max)
	}
	return nil
}

// Clamp limits offer to [MinOffer, MaxOffer]. NaN maps to MinOffer.
func (c Config) Clamp(offer float64) float64 {
	if math.IsNaN(offer) {
		return c.MinOffer
	}
	return math.Max(c.MinOffer, math.Min(offer, c.MaxOffer))
}

// FlatCost returns the role-independent rejection cost of seat.
func (c Config) FlatCost(seat Seat) float64 {
	if seat == SeatOne {
		return c.Player1Bad
	}
	return c.Player2Bad
}

// RejectUtility returns the deterministic utility seat receives when an offer
// is rejected while it holds the given role.
func (c Config) RejectUtility(seat Seat, asProposer bool) float64 {
	if asProposer {
		return c.FlatCost(seat) + c.ProposerBad
	}
	return c.FlatCost(seat) + c.ReceiverBad
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func inUnit(p float64) bool {
	return p >= 0 && p <= 1
}
