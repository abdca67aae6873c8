package game

// Player binds a name to one proposer and one responder strategy. The
// strategies are owned by the player and must not be shared with another.
type Player struct {
	Name      string
	Proposer  Proposer
	Responder Responder

	utility float64
}

// NewPlayer creates a player with zero utility.
func NewPlayer(name string, proposer Proposer, responder Responder) *Player {
	return &Player{Name: name, Proposer: proposer, Responder: responder}
}

// Utility returns the cumulative utility earned so far.
func (p *Player) Utility() float64 {
	return p.utility
}
