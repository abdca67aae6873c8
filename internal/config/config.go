// Package config loads simulator settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/strategy"
	"github.com/lox/bargainsim/internal/tournament"
)

// File mirrors the layout of a configuration file. Every block and attribute
// is optional.
type File struct {
	Game       *GameBlock        `hcl:"game,block"`
	Tournament *TournamentBlock  `hcl:"tournament,block"`
	Proposers  []strategy.Params `hcl:"proposer,block"`
	Responders []strategy.Params `hcl:"responder,block"`
}

// GameBlock holds the game parameters.
type GameBlock struct {
	P              *float64 `hcl:"p,optional"`
	PRejectBump    *float64 `hcl:"p_reject_bump,optional"`
	PResetOnAccept *bool    `hcl:"p_reset_on_accept,optional"`
	Player1Bad     *float64 `hcl:"player_1_bad,optional"`
	Player2Bad     *float64 `hcl:"player_2_bad,optional"`
	ProposerBad    *float64 `hcl:"proposer_bad,optional"`
	ReceiverBad    *float64 `hcl:"receiver_bad,optional"`
	MinOffer       *float64 `hcl:"min_offer,optional"`
	MaxOffer       *float64 `hcl:"max_offer,optional"`
	// Penalty jitter ranges are written as [min, max].
	ProposerPenaltyRange []float64 `hcl:"proposer_random_penalty_range,optional"`
	ReceiverPenaltyRange []float64 `hcl:"receiver_random_penalty_range,optional"`
}

// TournamentBlock holds the tournament parameters.
type TournamentBlock struct {
	Rounds  *int   `hcl:"rounds,optional"`
	Trials  *int   `hcl:"trials,optional"`
	Seed    *int64 `hcl:"seed,optional"`
	Workers *int   `hcl:"workers,optional"`
}

// Config is a fully resolved configuration.
type Config struct {
	Game       game.Config
	Rounds     int
	Trials     int
	Seed       int64
	Workers    int
	Proposers  []strategy.Params
	Responders []strategy.Params
}

// Default returns the configuration used when no file exists: the default
// tournament game with every built-in strategy under its kind name.
func Default() *Config {
	return &Config{
		Game:       tournament.DefaultGameConfig(),
		Rounds:     tournament.DefaultRounds,
		Trials:     tournament.DefaultTrials,
		Proposers:  strategy.DefaultProposers(),
		Responders: strategy.DefaultResponders(),
	}
}

// Load reads and validates filename. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes and validates HCL source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg, err := f.resolve()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve applies f on top of Default.
func (f *File) resolve() (*Config, error) {
	cfg := Default()

	if g := f.Game; g != nil {
		setFloat(&cfg.Game.PBase, g.P)
		setFloat(&cfg.Game.PRejectBump, g.PRejectBump)
		if g.PResetOnAccept != nil {
			cfg.Game.PResetOnAccept = *g.PResetOnAccept
		}
		setFloat(&cfg.Game.Player1Bad, g.Player1Bad)
		setFloat(&cfg.Game.Player2Bad, g.Player2Bad)
		setFloat(&cfg.Game.ProposerBad, g.ProposerBad)
		setFloat(&cfg.Game.ReceiverBad, g.ReceiverBad)
		setFloat(&cfg.Game.MinOffer, g.MinOffer)
		setFloat(&cfg.Game.MaxOffer, g.MaxOffer)

		var err error
		if cfg.Game.ProposerPenaltyRange, err = penaltyRange("proposer_random_penalty_range", g.ProposerPenaltyRange); err != nil {
			return nil, err
		}
		if cfg.Game.ReceiverPenaltyRange, err = penaltyRange("receiver_random_penalty_range", g.ReceiverPenaltyRange); err != nil {
			return nil, err
		}
	}

	if t := f.Tournament; t != nil {
		setInt(&cfg.Rounds, t.Rounds)
		setInt(&cfg.Trials, t.Trials)
		setInt(&cfg.Workers, t.Workers)
		if t.Seed != nil {
			cfg.Seed = *t.Seed
		}
	}

	if len(f.Proposers) > 0 {
		cfg.Proposers = f.Proposers
	}
	if len(f.Responders) > 0 {
		cfg.Responders = f.Responders
	}
	return cfg, nil
}

func penaltyRange(param string, values []float64) (game.Range, error) {
	switch len(values) {
	case 0:
		return game.Range{}, nil
	case 2:
		return game.Range{Min: values[0], Max: values[1]}, nil
	default:
		return game.Range{}, game.NewConfigError(param, "expected [min, max], got %d values", len(values))
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks the configuration, including that every strategy block
// names a known kind with usable parameters.
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if c.Rounds < 1 {
		return game.NewConfigError("rounds", "must be at least 1, got %d", c.Rounds)
	}
	if c.Trials < 1 {
		return game.NewConfigError("trials", "must be at least 1, got %d", c.Trials)
	}
	if c.Workers < 0 {
		return game.NewConfigError("workers", "must not be negative, got %d", c.Workers)
	}
	if _, _, err := c.Strategies(); err != nil {
		return err
	}
	return nil
}

// Strategies resolves the strategy blocks into tournament entries.
func (c *Config) Strategies() ([]tournament.NamedProposer, []tournament.NamedResponder, error) {
	if len(c.Proposers) == 0 {
		return nil, nil, game.NewConfigError("proposer", "at least one proposer must be configured")
	}
	if len(c.Responders) == 0 {
		return nil, nil, game.NewConfigError("responder", "at least one responder must be configured")
	}

	seen := make(map[string]bool)
	proposers := make([]tournament.NamedProposer, 0, len(c.Proposers))
	for _, p := range c.Proposers {
		if seen[p.Name] {
			return nil, nil, game.NewConfigError("proposer", "duplicate name %q", p.Name)
		}
		seen[p.Name] = true
		f, err := strategy.NewProposerFactory(p)
		if err != nil {
			return nil, nil, err
		}
		proposers = append(proposers, tournament.NamedProposer{Name: p.Name, New: f})
	}

	clear(seen)
	responders := make([]tournament.NamedResponder, 0, len(c.Responders))
	for _, p := range c.Responders {
		if seen[p.Name] {
			return nil, nil, game.NewConfigError("responder", "duplicate name %q", p.Name)
		}
		seen[p.Name] = true
		f, err := strategy.NewResponderFactory(p)
		if err != nil {
			return nil, nil, err
		}
		responders = append(responders, tournament.NamedResponder{Name: p.Name, New: f})
	}
	return proposers, responders, nil
}

// Proposer returns the proposer block called name. Names that match no block
// are taken as a built-in kind with default parameters.
func (c *Config) Proposer(name string) strategy.Params {
	return find(c.Proposers, name)
}

// Responder returns the responder block called name, falling back to a
// built-in kind like Proposer.
func (c *Config) Responder(name string) strategy.Params {
	return find(c.Responders, name)
}

func find(params []strategy.Params, name string) strategy.Params {
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	return strategy.Params{Name: name, Kind: name}
}
