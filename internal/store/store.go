// Package store persists tournament runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lox/bargainsim/internal/game"
	"github.com/lox/bargainsim/internal/tournament"

	_ "modernc.org/sqlite"
)

const (
	runTable   = "runs"
	trialTable = "trials"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Run describes a stored tournament run without its trial records.
type Run struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Rounds   int
	Trials   int
	Seed     int64
	Game     game.Config
	Games    int
}

// Store persists tournament results in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite serialises writers anyway, and a single connection keeps an
	// in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	s, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database and ensures the schema exists.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			trials INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			game_json BLOB NOT NULL
		);`, runTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			run_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			p1_proposer TEXT NOT NULL,
			p1_responder TEXT NOT NULL,
			p2_proposer TEXT NOT NULL,
			p2_responder TEXT NOT NULL,
			trial INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			p1_utility REAL NOT NULL,
			p2_utility REAL NOT NULL,
			rejections INTEGER NOT NULL,
			PRIMARY KEY(run_id, idx)
		);`, trialTable, runTable),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a tournament result and its trial records in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, res *tournament.Result) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}
	gameJSON, err := json.Marshal(res.Game)
	if err != nil {
		return fmt.Errorf("encode game config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, started_at, duration_ns, rounds, trials, seed, game_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, runTable),
		res.RunID, res.Started.UTC().UnixMilli(), int64(res.Duration),
		res.Rounds, res.Trials, res.Seed, gameJSON)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", res.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s
		(run_id, idx, p1_proposer, p1_responder, p2_proposer, p2_responder, trial, seed, p1_utility, p2_utility, rejections)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, trialTable))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range res.Records {
		_, err := stmt.ExecContext(ctx, res.RunID, i,
			r.P1Proposer, r.P1Responder, r.P2Proposer, r.P2Responder,
			r.Trial, r.Seed, r.P1Utility, r.P2Utility, r.Rejections)
		if err != nil {
			return fmt.Errorf("insert trial %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT r.id, r.started_at, r.duration_ns, r.rounds, r.trials, r.seed, r.game_json,
			(SELECT COUNT(*) FROM %s t WHERE t.run_id = r.id)
		FROM %s r ORDER BY r.started_at DESC, r.id DESC`, trialTable, runTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Result loads a stored run with its trial records.
func (s *Store) Result(ctx context.Context, runID string) (*tournament.Result, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT r.id, r.started_at, r.duration_ns, r.rounds, r.trials, r.seed, r.game_json,
			(SELECT COUNT(*) FROM %s t WHERE t.run_id = r.id)
		FROM %s r WHERE r.id = ?`, trialTable, runTable), runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	records, err := s.Trials(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &tournament.Result{
		RunID:    run.ID,
		Started:  run.Started,
		Duration: run.Duration,
		Rounds:   run.Rounds,
		Trials:   run.Trials,
		Seed:     run.Seed,
		Game:     run.Game,
		Records:  records,
	}, nil
}

// Trials returns the trial records of a run in play order.
func (s *Store) Trials(ctx context.Context, runID string) ([]tournament.TrialRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT p1_proposer, p1_responder, p2_proposer, p2_responder,
			trial, seed, p1_utility, p2_utility, rejections
		FROM %s WHERE run_id = ? ORDER BY idx`, trialTable), runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []tournament.TrialRecord
	for rows.Next() {
		var r tournament.TrialRecord
		if err := rows.Scan(&r.P1Proposer, &r.P1Responder, &r.P2Proposer, &r.P2Responder,
			&r.Trial, &r.Seed, &r.P1Utility, &r.P2Utility, &r.Rejections); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run        Run
		startedMS  int64
		durationNS int64
		gameJSON   []byte
	)
	if err := sc.Scan(&run.ID, &startedMS, &durationNS, &run.Rounds, &run.Trials, &run.Seed, &gameJSON, &run.Games); err != nil {
		return Run{}, err
	}
	run.Started = time.UnixMilli(startedMS).UTC()
	run.Duration = time.Duration(durationNS)
	if err := json.Unmarshal(gameJSON, &run.Game); err != nil {
		return Run{}, fmt.Errorf("decode game config of run %s: %w", run.ID, err)
	}
	return run, nil
}
