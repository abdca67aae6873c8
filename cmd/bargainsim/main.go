package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/bargainsim/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" type:"path" default:"bargainsim.hcl" help:"HCL configuration file; built-in defaults apply when it does not exist"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	NoColor  bool   `help:"Disable coloured output"`
}

func (g *Globals) logger() *log.Logger {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: true})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", g.Config, err)
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Play       PlayCmd          `cmd:"" help:"Play a single game between two players"`
	Tournament TournamentCmd    `cmd:"" help:"Play every strategy pairing against every other"`
	Strategies StrategiesCmd    `cmd:"" help:"List the built-in strategies and their parameters"`
	Runs       RunsCmd          `cmd:"" help:"Inspect tournament runs stored in a database"`
	VersionCmd VersionCmd       `cmd:"" name:"version" help:"Print the version"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bargainsim"),
		kong.Description("Repeated bargaining game simulator with shifting control"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println("bargainsim", version)
	return nil
}
