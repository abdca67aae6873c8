package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/store"
	"github.com/lox/bargainsim/internal/strategy"
	"github.com/lox/bargainsim/internal/tournament"
)

func sampleHistory() []game.Round {
	return []game.Round{
		{Round: 1, Proposer: "alice", Responder: "bob", Offer: 100, ProposerDelta: -15, ResponderDelta: -5,
			Player1Utility: -15, Player2Utility: -5, NextSwitchProb: 0.35},
		{Round: 2, Proposer: "alice", Responder: "bob", Offer: 0, Accepted: true,
			Player1Utility: -15, Player2Utility: -5, NextSwitchProb: 0.3},
	}
}

func sampleResult() *tournament.Result {
	a := tournament.Pair{Proposer: "conceding", Responder: "utilitarian"}
	b := tournament.Pair{Proposer: "random", Responder: "tit-for-tat"}
	rec := func(p1, p2 tournament.Pair, trial int, u1, u2 float64) tournament.TrialRecord {
		return tournament.TrialRecord{
			P1Proposer: p1.Proposer, P1Responder: p1.Responder,
			P2Proposer: p2.Proposer, P2Responder: p2.Responder,
			Trial: trial, Seed: int64(100 + trial), P1Utility: u1, P2Utility: u2, Rejections: trial,
		}
	}
	return &tournament.Result{
		RunID:    "01234567890abcdefghjkmnpqr",
		Started:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration: 1500 * time.Millisecond,
		Rounds:   10,
		Trials:   2,
		Seed:     7,
		Game:     tournament.DefaultGameConfig(),
		Records: []tournament.TrialRecord{
			rec(a, b, 0, 30, -40),
			rec(a, b, 1, 10, -20),
			rec(b, a, 0, -5, 5),
			rec(b, a, 1, -15, 15),
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range Formats() {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("out/run.JSON", FormatTable))
	assert.Equal(t, FormatYAML, FormatForPath("run.yml", FormatTable))
	assert.Equal(t, FormatCSV, FormatForPath("run.csv", FormatTable))
	assert.Equal(t, FormatTable, FormatForPath("run.txt", FormatJSON))
	assert.Equal(t, FormatJSON, FormatForPath("run", FormatJSON))
}

func TestHistoryJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, FormatJSON, sampleHistory()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, false, got[0]["accepted"])
	assert.Equal(t, 0.35, got[0]["next_round_switching_prob"])
	assert.Equal(t, -15.0, got[1]["player1_utility"])
}

func TestHistoryEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, FormatJSON, nil))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, FormatTable, sampleHistory()))

	out := buf.String()
	assert.Contains(t, out, "Round")
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "accepted")
	assert.Contains(t, out, "100.00")
}

func TestTrialsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Trials(&buf, FormatCSV, sampleResult().Records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "P1 Proposer", rows[0][0])
	assert.Equal(t, []string{"conceding", "utilitarian", "random", "tit-for-tat", "1", "101", "10.00", "-20.00", "1"}, rows[2])
}

func TestTournamentYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tournament(&buf, FormatYAML, Summarize(sampleResult())))

	var got Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "01234567890abcdefghjkmnpqr", got.RunID)
	assert.Equal(t, "1.5s", got.Duration)
	assert.Equal(t, 0.3, got.Game.PBase)
	require.Len(t, got.Leaderboard, 2)
	assert.Equal(t, "conceding", got.Leaderboard[0].Pair.Proposer)
	require.Len(t, got.Matchups, 2)
	assert.Equal(t, 20.0, got.Matchups[0].P1Utility.Mean)
}

func TestTournamentTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tournament(&buf, FormatTable, Summarize(sampleResult())))

	out := buf.String()
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "conceding/utilitarian")
	assert.Contains(t, out, "random/tit-for-tat")
}

func TestTournamentCSVIsLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tournament(&buf, FormatCSV, Summarize(sampleResult())))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "trials.csv")

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		return Trials(w, FormatCSV, sampleResult().Records)
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "conceding,utilitarian")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFileRenderError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	boom := errors.New("boom")
	err := WriteFile(path, func(io.Writer) error { return boom })
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data), "failed renders leave the old file alone")
}

func TestKindsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Kinds(&buf, FormatCSV, strategy.ResponderKinds()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Role", "Kind", "Description", "Parameters"}, rows[0])
	assert.Equal(t, "responder", rows[1][0])
}

func TestRunsJSON(t *testing.T) {
	runs := []store.Run{{
		ID:       "01234567890abcdefghjkmnpqr",
		Started:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration: 2 * time.Second,
		Rounds:   100,
		Trials:   50,
		Seed:     9,
		Game:     tournament.DefaultGameConfig(),
		Games:    800,
	}}

	var buf bytes.Buffer
	require.NoError(t, Runs(&buf, FormatJSON, runs))
	assert.JSONEq(t, `[{"id":"01234567890abcdefghjkmnpqr","started":"2025-01-02 03:04:05","duration":"2s",
		"rounds":100,"trials":50,"games":800,"seed":9,"p":0.3}]`, buf.String())
}
