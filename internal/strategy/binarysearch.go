package strategy

import (
	"math"

	"github.com/lox/bargainsim/internal/game"
)

// BinarySearchProposer bisects a [low, high] bracket believed to contain the
// responder's acceptance threshold. Accepted offers raise the floor of the
// bracket, rejected offers lower its ceiling.
type BinarySearchProposer struct {
	low  float64
	high float64
	last float64
}

// NewBinarySearchProposer creates a proposer searching [lo, hi].
func NewBinarySearchProposer(lo, hi float64) *BinarySearchProposer {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &BinarySearchProposer{low: lo, high: hi, last: (lo + hi) / 2}
}

func (b *BinarySearchProposer) Propose(game.View, game.Seat) float64 {
	b.last = (b.low + b.high) / 2
	return b.last
}

func (b *BinarySearchProposer) ReceiveFeedback(accepted bool, offer float64, _ game.View) {
	// The engine may have clamped the midpoint; keep the bracket ordered.
	offer = math.Max(b.low, math.Min(offer, b.high))
	if accepted {
		b.low = math.Max(b.low, offer)
	} else {
		b.high = math.Min(b.high, offer)
	}
}

// Bracket returns the current search interval.
func (b *BinarySearchProposer) Bracket() (low, high float64) {
	return b.low, b.high
}

// LastOffer returns the most recent midpoint proposed.
func (b *BinarySearchProposer) LastOffer() float64 {
	return b.last
}
