package main

import (
	"context"
	"os"

	"github.com/lox/bargainsim/internal/report"
	"github.com/lox/bargainsim/internal/runid"
	"github.com/lox/bargainsim/internal/store"
)

type RunsCmd struct {
	ID     string `arg:"" optional:"" help:"Run to summarise; lists all runs when omitted"`
	DB     string `name:"db" type:"path" default:"bargainsim.db" help:"SQLite database written by 'tournament --db'"`
	Trials bool   `help:"Print per-trial records instead of the summary"`
	Format string `short:"f" default:"table" enum:"table,json,yaml,csv" help:"Output format (${enum})"`
}

func (c *RunsCmd) Run() error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	st, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if c.ID == "" {
		runs, err := st.Runs(ctx)
		if err != nil {
			return err
		}
		return report.Runs(os.Stdout, format, runs)
	}

	if err := runid.Validate(c.ID); err != nil {
		return err
	}
	res, err := st.Result(ctx, c.ID)
	if err != nil {
		return err
	}
	if c.Trials {
		return report.Trials(os.Stdout, format, res.Records)
	}
	return report.Tournament(os.Stdout, format, report.Summarize(res))
}
