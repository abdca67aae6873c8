package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/bargainsim/internal/runid"
	"github.com/lox/bargainsim/internal/tournament"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func result(started time.Time, records ...tournament.TrialRecord) *tournament.Result {
	return &tournament.Result{
		RunID:    runid.New(),
		Started:  started,
		Duration: 2500 * time.Millisecond,
		Rounds:   100,
		Trials:   len(records),
		Seed:     42,
		Game:     tournament.DefaultGameConfig(),
		Records:  records,
	}
}

func trial(i int, u1, u2 float64) tournament.TrialRecord {
	return tournament.TrialRecord{
		P1Proposer:  "conceding",
		P1Responder: "utilitarian",
		P2Proposer:  "risk-aware",
		P2Responder: "strategic-rejector",
		Trial:       i,
		Seed:        int64(1000 + i),
		P1Utility:   u1,
		P2Utility:   u2,
		Rejections:  i * 2,
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)

	started := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	res := result(started, trial(0, 10, -10), trial(1, -3.5, 7.25), trial(2, 0, 0))
	require.NoError(t, s.SaveRun(ctx, res))

	got, err := s.Result(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, res, got)
}

func TestRunsNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)

	older := result(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), trial(0, 1, 1))
	newer := result(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), trial(0, 1, 1), trial(1, 2, 2))
	require.NoError(t, s.SaveRun(ctx, older))
	require.NoError(t, s.SaveRun(ctx, newer))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.RunID, runs[0].ID)
	assert.Equal(t, 2, runs[0].Games)
	assert.Equal(t, older.RunID, runs[1].ID)
	assert.Equal(t, 1, runs[1].Games)
	assert.Equal(t, 0.3, runs[1].Game.PBase)
}

func TestDuplicateRunRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newStore(t)

	res := result(time.Now().UTC().Truncate(time.Millisecond), trial(0, 1, 1))
	require.NoError(t, s.SaveRun(ctx, res))
	assert.Error(t, s.SaveRun(ctx, res))

	records, err := s.Trials(ctx, res.RunID)
	require.NoError(t, err)
	assert.Len(t, records, 1, "failed save is rolled back")
}

func TestResultNotFound(t *testing.T) {
	t.Parallel()

	_, err := newStore(t).Result(context.Background(), runid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(path)
	require.NoError(t, err)
	res := result(time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC), trial(0, 4, -4))
	require.NoError(t, s.SaveRun(ctx, res))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	records, err := s.Trials(ctx, res.RunID)
	require.NoError(t, err)
	assert.Equal(t, res.Records, records)
}
