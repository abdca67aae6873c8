package main

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/bargainsim/internal/config"
	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/randutil"
	"github.com/lox/bargainsim/internal/report"
	"github.com/lox/bargainsim/internal/strategy"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

type PlayCmd struct {
	P1Proposer  string   `name:"p1-proposer" default:"conceding" help:"Player 1 proposer (configured name or built-in kind)"`
	P1Responder string   `name:"p1-responder" default:"utilitarian" help:"Player 1 responder (configured name or built-in kind)"`
	P2Proposer  string   `name:"p2-proposer" default:"risk-aware" help:"Player 2 proposer (configured name or built-in kind)"`
	P2Responder string   `name:"p2-responder" default:"strategic-rejector" help:"Player 2 responder (configured name or built-in kind)"`
	Rounds      int      `short:"n" help:"Rounds to play (defaults to the configured tournament rounds)"`
	Seed        int64    `help:"Random seed (0 picks one from the clock)"`
	P           *float64 `help:"Override the base role-switch probability"`
	Format      string   `short:"f" default:"table" enum:"table,json,yaml,csv" help:"Output format (${enum})"`
	Out         string   `type:"path" help:"Write the round history to a file instead of stdout; the extension picks the format"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	rounds := cfg.Rounds
	if c.Rounds > 0 {
		rounds = c.Rounds
	}
	gameCfg := cfg.Game
	if c.P != nil {
		gameCfg.PBase = *c.P
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	streams := randutil.Streams(seed, 5)
	p1, err := newPlayer(cfg, "Player 1", c.P1Proposer, c.P1Responder, streams[1], streams[2])
	if err != nil {
		return err
	}
	p2, err := newPlayer(cfg, "Player 2", c.P2Proposer, c.P2Responder, streams[3], streams[4])
	if err != nil {
		return err
	}
	sim, err := game.New(p1, p2, gameCfg, game.WithRand(streams[0]), game.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	logger.Debug("Starting game", "seed", seed, "rounds", rounds, "p", gameCfg.PBase)
	if err := sim.RunContext(ctx, rounds); err != nil {
		return err
	}
	history := sim.History()

	if c.Out != "" {
		outFormat := report.FormatForPath(c.Out, format)
		if err := report.WriteFile(c.Out, func(w io.Writer) error {
			return report.History(w, outFormat, history)
		}); err != nil {
			return fmt.Errorf("write %s: %w", c.Out, err)
		}
		logger.Info("Wrote game history", "path", c.Out, "rounds", len(history))
	} else if err := report.History(os.Stdout, format, history); err != nil {
		return err
	}

	if format == report.FormatTable || c.Out != "" {
		printOutcome(os.Stdout, sim, c, seed)
	}
	return nil
}

func newPlayer(cfg *config.Config, name, proposerName, responderName string, proposerRNG, responderRNG *rand.Rand) (*game.Player, error) {
	newProposer, err := strategy.NewProposerFactory(cfg.Proposer(proposerName))
	if err != nil {
		return nil, err
	}
	newResponder, err := strategy.NewResponderFactory(cfg.Responder(responderName))
	if err != nil {
		return nil, err
	}
	proposer, err := newProposer(proposerRNG)
	if err != nil {
		return nil, err
	}
	responder, err := newResponder(responderRNG)
	if err != nil {
		return nil, err
	}
	return game.NewPlayer(name, proposer, responder), nil
}

func printOutcome(w io.Writer, sim *game.Game, c *PlayCmd, seed int64) {
	history := sim.History()
	fmt.Fprintf(w, "%s %s %s\n",
		labelStyle.Render(sim.Player1().Name+":"),
		fmt.Sprintf("%.2f", sim.Player1().Utility()),
		mutedStyle.Render("("+c.P1Proposer+"/"+c.P1Responder+")"))
	fmt.Fprintf(w, "%s %s %s\n",
		labelStyle.Render(sim.Player2().Name+":"),
		fmt.Sprintf("%.2f", sim.Player2().Utility()),
		mutedStyle.Render("("+c.P2Proposer+"/"+c.P2Responder+")"))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d of %d offers rejected, seed %d",
		game.Rejections(history), len(history), seed)))
}
