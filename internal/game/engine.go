package game

import (
	"context"
	"io"
	"math"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/bargainsim/internal/randutil"
)

// Game runs the round state machine for two players.
type Game struct {
	cfg      Config
	players  [2]*Player
	proposer Seat
	pCurrent float64
	history  []Round
	rng      *rand.Rand
	logger   *log.Logger
}

// Option customises a Game.
type Option func(*Game)

// WithRand sets the source used for role switches and penalty jitter.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the logger used for per-round debug output.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// New creates a game in which player1 proposes first.
func New(player1, player2 *Player, cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validatePlayer("player1", player1); err != nil {
		return nil, err
	}
	if err := validatePlayer("player2", player2); err != nil {
		return nil, err
	}
	if player1 == player2 {
		return nil, NewConfigError("players", "a game needs two distinct players")
	}
	if player1.Name == player2.Name {
		return nil, NewConfigError("players", "duplicate player name %q", player1.Name)
	}

	g := &Game{
		cfg:      cfg,
		players:  [2]*Player{player1, player2},
		proposer: SeatOne,
		pCurrent: cfg.PBase,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = randutil.New(time.Now().UnixNano())
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return g, nil
}

func validatePlayer(param string, p *Player) error {
	switch {
	case p == nil:
		return NewConfigError(param, "player is nil")
	case p.Proposer == nil:
		return NewConfigError(param, "player %q has no proposer strategy", p.Name)
	case p.Responder == nil:
		return NewConfigError(param, "player %q has no responder strategy", p.Name)
	}
	return nil
}

// Player1 returns the first player.
func (g *Game) Player1() *Player { return g.players[SeatOne] }

// Player2 returns the second player.
func (g *Game) Player2() *Player { return g.players[SeatTwo] }

// Proposer returns the player who proposes in the next round.
func (g *Game) Proposer() *Player { return g.players[g.proposer] }

// Responder returns the player who responds in the next round.
func (g *Game) Responder() *Player { return g.players[g.proposer.Other()] }

// ProposerSeat returns the seat that proposes in the next round.
func (g *Game) ProposerSeat() Seat { return g.proposer }

// PCurrent returns the current role-switch probability.
func (g *Game) PCurrent() float64 { return g.pCurrent }

// View returns a snapshot of the game for strategies.
func (g *Game) View() View {
	return View{
		cfg:      g.cfg,
		pCurrent: g.pCurrent,
		proposer: g.proposer,
		round:    len(g.history) + 1,
	}
}

// History returns a copy of the round records played so far.
func (g *Game) History() []Round {
	out := make([]Round, len(g.history))
	copy(out, g.history)
	return out
}

// Rejections returns the number of rejected rounds so far.
func (g *Game) Rejections() int {
	return Rejections(g.history)
}

// Run plays exactly n rounds.
func (g *Game) Run(n int) {
	for i := 0; i < n; i++ {
		g.PlayRound()
	}
}

// RunContext plays up to n rounds, stopping between rounds if ctx is done.
func (g *Game) RunContext(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.PlayRound()
	}
	return nil
}

// PlayRound plays a single round and returns its record.
func (g *Game) PlayRound() Round {
	proposerSeat := g.proposer
	responderSeat := proposerSeat.Other()
	proposer := g.players[proposerSeat]
	responder := g.players[responderSeat]

	view := g.View()
	offer := g.cfg.Clamp(proposer.Proposer.Propose(view, proposerSeat))

	// Mirroring strategies watch offers even while their player responds.
	if observer, ok := responder.Proposer.(OpponentObserver); ok {
		observer.ObserveOpponentOffer(offer)
	}

	accepted := responder.Responder.Respond(offer, view, responderSeat)

	var proposerDelta, responderDelta float64
	if accepted {
		if g.cfg.PResetOnAccept {
			g.pCurrent = g.cfg.PBase
		}
		proposerDelta = offer
		responderDelta = -offer
	} else {
		g.pCurrent = math.Min(1, g.pCurrent+g.cfg.PRejectBump)
		proposerDelta = g.cfg.RejectUtility(proposerSeat, true) +
			randutil.Uniform(g.rng, g.cfg.ProposerPenaltyRange.Min, g.cfg.ProposerPenaltyRange.Max)
		responderDelta = g.cfg.RejectUtility(responderSeat, false) +
			randutil.Uniform(g.rng, g.cfg.ReceiverPenaltyRange.Min, g.cfg.ReceiverPenaltyRange.Max)
	}
	proposer.utility += proposerDelta
	responder.utility += responderDelta

	record := Round{
		Round:          len(g.history) + 1,
		Proposer:       proposer.Name,
		Responder:      responder.Name,
		Offer:          offer,
		Accepted:       accepted,
		ProposerDelta:  proposerDelta,
		ResponderDelta: responderDelta,
		Player1Utility: g.players[SeatOne].utility,
		Player2Utility: g.players[SeatTwo].utility,
		NextSwitchProb: g.pCurrent,
	}
	g.history = append(g.history, record)

	if accepted {
		g.logger.Debug("Offer accepted",
			"round", record.Round,
			"proposer", proposer.Name,
			"responder", responder.Name,
			"offer", offer)
	} else {
		g.logger.Debug("Offer rejected",
			"round", record.Round,
			"proposer", proposer.Name,
			"responder", responder.Name,
			"offer", offer,
			"proposer_penalty", proposerDelta,
			"responder_penalty", responderDelta,
			"p_current", g.pCurrent)
	}

	// Only the proposer hears how its offer fared; responders track their
	// own history inside Respond.
	if receiver, ok := proposer.Proposer.(FeedbackReceiver); ok {
		settled := g.View()
		settled.round = record.Round
		receiver.ReceiveFeedback(accepted, offer, settled)
	}

	g.maybeSwitchRoles()
	return record
}

func (g *Game) maybeSwitchRoles() {
	if g.rng.Float64() < g.pCurrent {
		g.proposer = g.proposer.Other()
		g.logger.Debug("Roles switched", "proposer", g.players[g.proposer].Name)
	}
}
