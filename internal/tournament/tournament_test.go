package tournament

import (
	"context"
	"errors"
	"io"
	rand "math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/runid"
	"github.com/lox/bargainsim/internal/strategy"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})
}

func proposer(t *testing.T, kind string) NamedProposer {
	t.Helper()
	f, err := strategy.NewProposerFactory(strategy.Params{Name: kind, Kind: kind})
	require.NoError(t, err)
	return NamedProposer{Name: kind, New: f}
}

func responder(t *testing.T, kind string) NamedResponder {
	t.Helper()
	f, err := strategy.NewResponderFactory(strategy.Params{Name: kind, Kind: kind})
	require.NoError(t, err)
	return NamedResponder{Name: kind, New: f}
}

func testConfig(t *testing.T) Config {
	return Config{
		Proposers:  []NamedProposer{proposer(t, "conceding"), proposer(t, "random")},
		Responders: []NamedResponder{responder(t, "utilitarian"), responder(t, "probabilistic")},
		Rounds:     20,
		Trials:     3,
		Game:       DefaultGameConfig(),
		Seed:       42,
		Workers:    4,
		Clock:      quartz.NewMock(t),
		Logger:     quietLogger(),
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no proposers", func(c *Config) { c.Proposers = nil }},
		{"no responders", func(c *Config) { c.Responders = nil }},
		{"zero rounds", func(c *Config) { c.Rounds = 0 }},
		{"zero trials", func(c *Config) { c.Trials = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"bad game", func(c *Config) { c.Game.PBase = 2 }},
		{"duplicate proposer", func(c *Config) { c.Proposers = append(c.Proposers, c.Proposers[0]) }},
		{"duplicate responder", func(c *Config) { c.Responders = append(c.Responders, c.Responders[0]) }},
		{"nil factory", func(c *Config) { c.Proposers[0].New = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.ErrorIs(t, err, game.ErrInvalidConfig)
		})
	}
}

func TestMatchups(t *testing.T) {
	t.Parallel()

	tr, err := New(testConfig(t))
	require.NoError(t, err)

	matchups := tr.Matchups()
	require.Len(t, matchups, 16, "4 pairs against 4 pairs")
	assert.Equal(t, 48, tr.Total())

	first := Pair{Proposer: "conceding", Responder: "utilitarian"}
	assert.Equal(t, Matchup{Player1: first, Player2: first}, matchups[0])
	assert.Equal(t, Pair{Proposer: "conceding", Responder: "probabilistic"}, matchups[1].Player2)
	assert.Equal(t, "conceding/utilitarian vs conceding/probabilistic", matchups[1].String())
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()

	run := func(workers int) *Result {
		cfg := testConfig(t)
		cfg.Workers = workers
		tr, err := New(cfg)
		require.NoError(t, err)
		res, err := tr.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	serial := run(1)
	parallel := run(8)
	assert.Equal(t, serial.Records, parallel.Records, "scheduling does not change outcomes")
	assert.NotEqual(t, serial.RunID, parallel.RunID)
	require.NoError(t, runid.Validate(serial.RunID))

	tr, err := New(testConfig(t))
	require.NoError(t, err)
	for i, rec := range serial.Records {
		assert.Equal(t, tr.Matchups()[i/3], rec.Matchup())
		assert.Equal(t, i%3, rec.Trial)
	}
}

func TestRunSeedMatters(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	a, err := New(cfg)
	require.NoError(t, err)
	cfg.Seed = 43
	b, err := New(cfg)
	require.NoError(t, err)

	ra, err := a.Run(context.Background())
	require.NoError(t, err)
	rb, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, ra.Records, rb.Records)
}

func TestRunKnownOutcome(t *testing.T) {
	t.Parallel()

	start := 0.0
	f, err := strategy.NewProposerFactory(strategy.Params{Name: "free", Kind: "conceding", StartOffer: &start})
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Proposers = []NamedProposer{{Name: "free", New: f}}
	cfg.Responders = []NamedResponder{responder(t, "utilitarian")}
	tr, err := New(cfg)
	require.NoError(t, err)

	res, err := tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	for _, rec := range res.Records {
		assert.Equal(t, 0, rec.Rejections, "a zero offer beats every rejection")
		assert.Equal(t, 0.0, rec.P1Utility)
		assert.Equal(t, 0.0, rec.P2Utility)
	}
}

func TestRunProgressAndTiming(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	cfg := testConfig(t)
	cfg.Clock = clock
	cfg.Workers = 1

	var calls []int
	cfg.OnProgress = func(done, total int) {
		assert.Equal(t, 48, total)
		calls = append(calls, done)
		clock.Advance(time.Second)
	}
	tr, err := New(cfg)
	require.NoError(t, err)

	started := clock.Now()
	res, err := tr.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, calls, 48)
	for i, done := range calls {
		assert.Equal(t, i+1, done)
	}
	assert.Equal(t, started, res.Started)
	assert.Equal(t, 48*time.Second, res.Duration)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	tr, err := New(testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunFactoryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	cfg := testConfig(t)
	cfg.Responders = []NamedResponder{{
		Name: "broken",
		New:  func(*rand.Rand) (game.Responder, error) { return nil, boom },
	}}
	tr, err := New(cfg)
	require.NoError(t, err)

	_, err = tr.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `create responder "broken"`)
}
