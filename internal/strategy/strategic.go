package strategy

import "github.com/lox/bargainsim/internal/game"

// StrategicRejectorOptions configures a StrategicRejectorResponder.
type StrategicRejectorOptions struct {
	// StagnationTolerance is the streak length that triggers a rejection.
	StagnationTolerance int
	// Epsilon is the tolerance used when comparing offers.
	Epsilon float64
	// MinOffer is the floor at which offers are always accepted.
	MinOffer float64
}

// DefaultStrategicRejectorOptions returns tolerance 4, epsilon 0.01 and a
// floor of 0.
func DefaultStrategicRejectorOptions() StrategicRejectorOptions {
	return StrategicRejectorOptions{StagnationTolerance: 4, Epsilon: 1e-2, MinOffer: 0}
}

// StrategicRejectorResponder punishes proposers that stop conceding. Offers
// worse than rejecting are refused and offers at the floor are always
// taken. Anything in between extends a streak while it does not decrease;
// a decrease resets the streak, and reaching the tolerance means rejection.
type StrategicRejectorResponder struct {
	opts    StrategicRejectorOptions
	prev    float64
	hasPrev bool
	streak  int
}

// NewStrategicRejectorResponder validates opts and creates the responder.
func NewStrategicRejectorResponder(opts StrategicRejectorOptions) (*StrategicRejectorResponder, error) {
	if opts.StagnationTolerance < 1 {
		return nil, game.NewConfigError("stagnation_tolerance", "must be at least 1, got %d", opts.StagnationTolerance)
	}
	if opts.Epsilon < 0 {
		return nil, game.NewConfigError("epsilon", "must not be negative, got %v", opts.Epsilon)
	}
	return &StrategicRejectorResponder{opts: opts}, nil
}

func (s *StrategicRejectorResponder) Respond(offer float64, v game.View, self game.Seat) bool {
	if -offer < v.RejectUtility(self, false) {
		return false
	}
	if offer <= s.opts.MinOffer+s.opts.Epsilon {
		return true
	}
	if !s.hasPrev {
		s.prev, s.hasPrev = offer, true
		return true
	}

	if offer >= s.prev-s.opts.Epsilon {
		s.streak++
	} else {
		s.streak = 0
	}
	s.prev = offer
	return s.streak < s.opts.StagnationTolerance
}

// Streak returns the current stagnation streak.
func (s *StrategicRejectorResponder) Streak() int {
	return s.streak
}
