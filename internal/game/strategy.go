package game

// Proposer chooses the offer made while its player holds the proposer role.
type Proposer interface {
	Propose(v View, self Seat) float64
}

// FeedbackReceiver is implemented by proposers that learn from the outcome
// of their own offers. The engine calls it after settling every round the
// proposer played.
type FeedbackReceiver interface {
	ReceiveFeedback(accepted bool, offer float64, v View)
}

// OpponentObserver is implemented by proposers that mirror the other
// player. The engine shows it every offer made to its player.
type OpponentObserver interface {
	ObserveOpponentOffer(offer float64)
}

// Responder decides whether to accept an offer made to its player.
type Responder interface {
	Respond(offer float64, v View, self Seat) bool
}
