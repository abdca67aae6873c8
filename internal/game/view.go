package game

// View is the read-only picture of a game handed to strategies. It is a
// value: holding on to one never observes later rounds, and nothing a
// strategy does with it can change the game.
type View struct {
	cfg      Config
	pCurrent float64
	proposer Seat
	round    int
}

// NewView builds a view of a game in the given state. The engine creates its
// own; this exists for driving strategies outside a game.
func NewView(cfg Config, proposer Seat, pCurrent float64, round int) View {
	return View{cfg: cfg, pCurrent: pCurrent, proposer: proposer, round: round}
}

func (v View) MinOffer() float64 { return v.cfg.MinOffer }

func (v View) MaxOffer() float64 { return v.cfg.MaxOffer }

// PBase is the configured base switch probability.
func (v View) PBase() float64 { return v.cfg.PBase }

// PRejectBump is the configured increase of the switch probability per rejection.
func (v View) PRejectBump() float64 { return v.cfg.PRejectBump }

// PCurrent is the switch probability that applies at the end of the round.
func (v View) PCurrent() float64 { return v.pCurrent }

// Proposer returns the seat holding the proposer role.
func (v View) Proposer() Seat { return v.proposer }

// Round returns the 1-based index of the round being played.
func (v View) Round() int { return v.round }

// Clamp limits offer to the game's offer bounds.
func (v View) Clamp(offer float64) float64 { return v.cfg.Clamp(offer) }

// RejectUtility returns what seat receives on rejection in the given role,
// excluding random jitter.
func (v View) RejectUtility(seat Seat, asProposer bool) float64 {
	return v.cfg.RejectUtility(seat, asProposer)
}
