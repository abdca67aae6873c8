package strategy

import "github.com/lox/bargainsim/internal/game"

// UtilitarianResponder accepts exactly the offers that beat rejecting this
// round.
type UtilitarianResponder struct{}

// NewUtilitarianResponder creates a myopic responder.
func NewUtilitarianResponder() *UtilitarianResponder {
	return &UtilitarianResponder{}
}

func (UtilitarianResponder) Respond(offer float64, v game.View, self game.Seat) bool {
	return -offer > v.RejectUtility(self, false)
}
