package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/anicheck/internal/harness"
)

// ErrRunNotFound is returned when no run matches the requested id.
var ErrRunNotFound = errors.New("run not found")

// LatestRef selects the most recent run in Resolve.
const LatestRef = "latest"

// Run is one stored harness run.
//
// ID is a UUIDv7 unless the caller presets it. Seq is a per-database
// counter starting at 1 and is the only ordering used by the store.
// Report carries the counts and the ordered failures exactly as they were
// rendered when the run finished.
type Run struct {
	ID        string          `json:"id"`
	Seq       int64           `json:"seq"`
	Label     string          `json:"label,omitempty"`
	Corpus    string          `json:"corpus"`
	Engine    string          `json:"engine,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Report    *harness.Report `json:"report"`
}

// RunSummary is a run without its failure list.
// ListRuns returns these so that listing never reads the failures table.
type RunSummary struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Label     string    `json:"label,omitempty"`
	Corpus    string    `json:"corpus"`
	Engine    string    `json:"engine,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
}

// SaveRun stores run and its failures in one transaction. ID, Seq and
// CreatedAt are assigned here; a preset ID is kept.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	if run.Report == nil {
		return errors.New("save run: report is nil")
	}
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}
	run.CreatedAt = s.clock.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return fmt.Errorf("save run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, label, corpus, engine, passed, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Label,
		run.Corpus,
		run.Engine,
		run.Report.Passed,
		run.Report.Failed,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	for i, f := range run.Report.Failures {
		errs := f.Errors
		if errs == nil {
			errs = []string{}
		}
		errsJSON, err := json.Marshal(errs)
		if err != nil {
			return fmt.Errorf("save run: failure %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO failures (run_id, position, file_name, errors)
			VALUES (?, ?, ?, ?)
		`, run.ID, i, f.FileName, string(errsJSON))
		if err != nil {
			return fmt.Errorf("save run: failure %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run: commit: %w", err)
	}
	return nil
}

// LoadRun returns the run with the given id, including its failures.
func (s *Store) LoadRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, label, corpus, engine, passed, failed, created_at
		FROM runs
		WHERE id = ?
	`, id)

	sum, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	failures, err := s.readFailures(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Run{
		ID:        sum.ID,
		Seq:       sum.Seq,
		Label:     sum.Label,
		Corpus:    sum.Corpus,
		Engine:    sum.Engine,
		CreatedAt: sum.CreatedAt,
		Report: &harness.Report{
			Passed:   sum.Passed,
			Failed:   sum.Failed,
			Failures: failures,
		},
	}, nil
}

// LatestRun returns the run with the highest seq.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: history is empty", ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return s.LoadRun(ctx, id)
}

// Resolve loads a run by id, or the latest run for LatestRef.
func (s *Store) Resolve(ctx context.Context, ref string) (*Run, error) {
	if ref == LatestRef {
		return s.LatestRun(ctx)
	}
	return s.LoadRun(ctx, ref)
}

// ListRuns returns run summaries, newest first. limit <= 0 returns all.
// The result is never nil.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, label, corpus, engine, passed, failed, created_at
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *Store) readFailures(ctx context.Context, runID string) ([]harness.Failure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_name, errors
		FROM failures
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	failures := []harness.Failure{}
	for rows.Next() {
		var (
			f        harness.Failure
			errsJSON string
		)
		if err := rows.Scan(&f.FileName, &errsJSON); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		if err := json.Unmarshal([]byte(errsJSON), &f.Errors); err != nil {
			return nil, fmt.Errorf("decode failure errors for %s: %w", f.FileName, err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}
	return failures, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (RunSummary, error) {
	var (
		sum     RunSummary
		created string
	)
	err := row.Scan(&sum.ID, &sum.Seq, &sum.Label, &sum.Corpus, &sum.Engine, &sum.Passed, &sum.Failed, &created)
	if err != nil {
		return RunSummary{}, err
	}
	sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return RunSummary{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	return sum, nil
}
