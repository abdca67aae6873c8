// Package tournament plays every pairing of proposer and responder
// strategies against every other pairing, several trials each, and records
// the final utilities of each game.
package tournament

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/randutil"
	"github.com/lox/bargainsim/internal/runid"
	"github.com/lox/bargainsim/internal/strategy"
)

const (
	DefaultRounds = 100
	DefaultTrials = 50
	DefaultP      = 0.3
)

// Player names used in every tournament game.
const (
	Player1 = "Player 1"
	Player2 = "Player 2"
)

// DefaultGameConfig returns the game played in tournaments unless configured
// otherwise: switch probability DefaultP, flat rejection cost 10 for both
// players, an extra 5 for the proposer and 5 back for the responder.
func DefaultGameConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.PBase = DefaultP
	cfg.Player1Bad = -10
	cfg.Player2Bad = -10
	cfg.ProposerBad = -5
	cfg.ReceiverBad = 5
	return cfg
}

// NamedProposer is a proposer strategy entered into a tournament.
type NamedProposer struct {
	Name string
	New  strategy.ProposerFactory
}

// NamedResponder is a responder strategy entered into a tournament.
type NamedResponder struct {
	Name string
	New  strategy.ResponderFactory
}

// Config holds configuration for a tournament.
type Config struct {
	Proposers  []NamedProposer
	Responders []NamedResponder
	Rounds     int
	Trials     int
	Game       game.Config
	Seed       int64
	// Workers bounds the number of trials played at once. Zero means
	// GOMAXPROCS.
	Workers int
	Clock   quartz.Clock
	Logger  *log.Logger
	// OnProgress is called after each finished trial. Calls are serialised
	// and done increases by one each time.
	OnProgress func(done, total int)
}

// Tournament is a validated round robin ready to run.
type Tournament struct {
	config     Config
	matchups   []Matchup
	proposers  map[string]strategy.ProposerFactory
	responders map[string]strategy.ResponderFactory
}

// New validates cfg and fills in defaults.
func New(cfg Config) (*Tournament, error) {
	if len(cfg.Proposers) == 0 {
		return nil, game.NewConfigError("proposers", "at least one proposer strategy is required")
	}
	if len(cfg.Responders) == 0 {
		return nil, game.NewConfigError("responders", "at least one responder strategy is required")
	}
	if cfg.Rounds < 1 {
		return nil, game.NewConfigError("rounds", "must be at least 1, got %d", cfg.Rounds)
	}
	if cfg.Trials < 1 {
		return nil, game.NewConfigError("trials", "must be at least 1, got %d", cfg.Trials)
	}
	if cfg.Workers < 0 {
		return nil, game.NewConfigError("workers", "must not be negative, got %d", cfg.Workers)
	}
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}

	t := &Tournament{
		config:     cfg,
		proposers:  make(map[string]strategy.ProposerFactory, len(cfg.Proposers)),
		responders: make(map[string]strategy.ResponderFactory, len(cfg.Responders)),
	}
	for _, p := range cfg.Proposers {
		if p.New == nil {
			return nil, game.NewConfigError("proposers", "proposer %q has no factory", p.Name)
		}
		if _, dup := t.proposers[p.Name]; dup {
			return nil, game.NewConfigError("proposers", "duplicate proposer name %q", p.Name)
		}
		t.proposers[p.Name] = p.New
	}
	for _, r := range cfg.Responders {
		if r.New == nil {
			return nil, game.NewConfigError("responders", "responder %q has no factory", r.Name)
		}
		if _, dup := t.responders[r.Name]; dup {
			return nil, game.NewConfigError("responders", "duplicate responder name %q", r.Name)
		}
		t.responders[r.Name] = r.New
	}

	if t.config.Workers == 0 {
		t.config.Workers = runtime.GOMAXPROCS(0)
	}
	if t.config.Clock == nil {
		t.config.Clock = quartz.NewReal()
	}
	if t.config.Logger == nil {
		t.config.Logger = log.New(io.Discard)
	}

	pairs := Pairs(cfg.Proposers, cfg.Responders)
	t.matchups = make([]Matchup, 0, len(pairs)*len(pairs))
	for _, p1 := range pairs {
		for _, p2 := range pairs {
			t.matchups = append(t.matchups, Matchup{Player1: p1, Player2: p2})
		}
	}
	return t, nil
}

// Matchups returns the matchups in play order.
func (t *Tournament) Matchups() []Matchup {
	return append([]Matchup(nil), t.matchups...)
}

// Total returns the number of games the tournament plays.
func (t *Tournament) Total() int {
	return len(t.matchups) * t.config.Trials
}

// Run plays every trial and returns the records in matchup-then-trial order,
// independent of scheduling. Cancelling ctx stops scheduling new trials and
// aborts the ones in flight.
func (t *Tournament) Run(ctx context.Context) (*Result, error) {
	total := t.Total()
	result := &Result{
		RunID:   runid.New(),
		Started: t.config.Clock.Now(),
		Rounds:  t.config.Rounds,
		Trials:  t.config.Trials,
		Seed:    t.config.Seed,
		Game:    t.config.Game,
		Records: make([]TrialRecord, total),
	}

	t.config.Logger.Info("Starting tournament",
		"run_id", result.RunID,
		"matchups", len(t.matchups),
		"trials", t.config.Trials,
		"rounds", t.config.Rounds,
		"workers", t.config.Workers,
		"seed", t.config.Seed)

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.config.Workers)
	for i := 0; i < total; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := t.playTrial(gctx, i)
			if err != nil {
				return err
			}
			result.Records[i] = record

			if t.config.OnProgress != nil {
				mu.Lock()
				done++
				t.config.OnProgress(done, total)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Duration = t.config.Clock.Since(result.Started)
	t.config.Logger.Info("Tournament finished",
		"run_id", result.RunID,
		"games", total,
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// playTrial plays game i. Its engine and each of the four strategies get
// their own stream derived from the run seed and i.
func (t *Tournament) playTrial(ctx context.Context, i int) (TrialRecord, error) {
	m := t.matchups[i/t.config.Trials]
	trial := i % t.config.Trials
	seed := randutil.Derive(t.config.Seed, i)
	streams := randutil.Streams(seed, 5)

	p1, err := t.newPlayer(Player1, m.Player1, streams[1], streams[2])
	if err != nil {
		return TrialRecord{}, err
	}
	p2, err := t.newPlayer(Player2, m.Player2, streams[3], streams[4])
	if err != nil {
		return TrialRecord{}, err
	}

	logger := t.config.Logger.With("matchup", m.String(), "trial", trial)
	g, err := game.New(p1, p2, t.config.Game, game.WithRand(streams[0]), game.WithLogger(logger))
	if err != nil {
		return TrialRecord{}, err
	}
	if err := g.RunContext(ctx, t.config.Rounds); err != nil {
		return TrialRecord{}, err
	}

	return TrialRecord{
		P1Proposer:  m.Player1.Proposer,
		P1Responder: m.Player1.Responder,
		P2Proposer:  m.Player2.Proposer,
		P2Responder: m.Player2.Responder,
		Trial:       trial,
		Seed:        seed,
		P1Utility:   p1.Utility(),
		P2Utility:   p2.Utility(),
		Rejections:  g.Rejections(),
	}, nil
}

func (t *Tournament) newPlayer(name string, pair Pair, proposerRNG, responderRNG *rand.Rand) (*game.Player, error) {
	proposer, err := t.proposers[pair.Proposer](proposerRNG)
	if err != nil {
		return nil, fmt.Errorf("create proposer %q: %w", pair.Proposer, err)
	}
	responder, err := t.responders[pair.Responder](responderRNG)
	if err != nil {
		return nil, fmt.Errorf("create responder %q: %w", pair.Responder, err)
	}
	return game.NewPlayer(name, proposer, responder), nil
}
