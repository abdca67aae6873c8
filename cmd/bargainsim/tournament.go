package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/coder/quartz"
	"github.com/mattn/go-isatty"

	"github.com/lox/bargainsim/internal/progress"
	"github.com/lox/bargainsim/internal/report"
	"github.com/lox/bargainsim/internal/store"
	"github.com/lox/bargainsim/internal/tournament"
)

type TournamentCmd struct {
	Rounds     int      `help:"Rounds per game (overrides the config)"`
	Trials     int      `help:"Trials per matchup (overrides the config)"`
	Seed       *int64   `help:"Base seed (overrides the config)"`
	Workers    int      `help:"Games played concurrently (overrides the config, 0 = all CPUs)"`
	P          *float64 `help:"Base role-switch probability (overrides the config)"`
	Proposers  []string `help:"Only enter these proposers"`
	Responders []string `help:"Only enter these responders"`
	Format     string   `short:"f" default:"table" enum:"table,json,yaml,csv" help:"Summary format (${enum})"`
	Out        string   `type:"path" help:"Write per-trial records to a file; the extension picks the format (default CSV)"`
	DB         string   `name:"db" type:"path" help:"Save the run to this SQLite database"`
	NoProgress bool     `help:"Disable the progress display"`
}

func (c *TournamentCmd) Run(g *Globals) error {
	logger := g.logger()
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Rounds > 0 {
		cfg.Rounds = c.Rounds
	}
	if c.Trials > 0 {
		cfg.Trials = c.Trials
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.P != nil {
		cfg.Game.PBase = *c.P
	}
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	proposers, responders, err := cfg.Strategies()
	if err != nil {
		return err
	}
	if proposers, err = only(proposers, c.Proposers, func(p tournament.NamedProposer) string { return p.Name }); err != nil {
		return err
	}
	if responders, err = only(responders, c.Responders, func(r tournament.NamedResponder) string { return r.Name }); err != nil {
		return err
	}

	clock := quartz.NewReal()
	var reporter progress.Reporter = progress.Discard{}
	tc := tournament.Config{
		Proposers:  proposers,
		Responders: responders,
		Rounds:     cfg.Rounds,
		Trials:     cfg.Trials,
		Game:       cfg.Game,
		Seed:       cfg.Seed,
		Workers:    cfg.Workers,
		Clock:      clock,
		Logger:     logger,
		OnProgress: func(done, total int) { reporter.Update(done, total) },
	}
	t, err := tournament.New(tc)
	if err != nil {
		return err
	}

	switch {
	case c.NoProgress:
	case isatty.IsTerminal(os.Stderr.Fd()):
		reporter = progress.NewBar(os.Stderr, "Tournament", t.Total(), clock)
	default:
		reporter = progress.NewLog(logger, clock)
	}

	ctx, stop := signalContext()
	defer stop()

	res, err := t.Run(ctx)
	reporter.Finish()
	if bar, ok := reporter.(*progress.Bar); ok && bar.Err() != nil {
		logger.Warn("Progress display failed", "err", bar.Err())
	}
	if err != nil {
		return err
	}

	if err := report.Tournament(os.Stdout, format, report.Summarize(res)); err != nil {
		return err
	}

	if c.Out != "" {
		outFormat := report.FormatForPath(c.Out, report.FormatCSV)
		if err := report.WriteFile(c.Out, func(w io.Writer) error {
			return report.Trials(w, outFormat, res.Records)
		}); err != nil {
			return fmt.Errorf("write %s: %w", c.Out, err)
		}
		logger.Info("Wrote trial records", "path", c.Out, "records", len(res.Records))
	}

	if c.DB != "" {
		st, err := store.Open(c.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveRun(ctx, res); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("Saved run", "run_id", res.RunID, "db", c.DB)
	}
	return nil
}

// only keeps the entries named in names, in the order of names. An empty
// filter keeps everything.
func only[T any](entries []T, names []string, name func(T) string) ([]T, error) {
	if len(names) == 0 {
		return entries, nil
	}
	out := make([]T, 0, len(names))
	for _, n := range names {
		i := slices.IndexFunc(entries, func(e T) bool { return name(e) == n })
		if i < 0 {
			return nil, fmt.Errorf("no strategy named %q in the configuration", n)
		}
		out = append(out, entries[i])
	}
	return out, nil
}
