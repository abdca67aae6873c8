package main

import (
	"os"
	"slices"

	"github.com/lox/bargainsim/internal/report"
	"github.com/lox/bargainsim/internal/strategy"
)

type StrategiesCmd struct {
	Role   string `default:"all" enum:"all,proposer,responder" help:"Which strategies to list (${enum})"`
	Format string `short:"f" default:"table" enum:"table,json,yaml,csv" help:"Output format (${enum})"`
}

func (c *StrategiesCmd) Run() error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	var kinds []strategy.KindInfo
	if c.Role != string(strategy.RoleResponder) {
		kinds = slices.Concat(kinds, strategy.ProposerKinds())
	}
	if c.Role != string(strategy.RoleProposer) {
		kinds = slices.Concat(kinds, strategy.ResponderKinds())
	}
	return report.Kinds(os.Stdout, format, kinds)
}
