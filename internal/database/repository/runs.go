package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrRunNotFound is returned when an update targets a missing run.
var ErrRunNotFound = errors.New("run not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RunRepo handles saved test runs.
type RunRepo struct {
	db DBTX
}

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{db: db} }

// WithTx returns a repo whose statements run inside tx.
func (r *RunRepo) WithTx(tx *sql.Tx) *RunRepo { return &RunRepo{db: tx} }

const runColumns = `id, created_at, show_instructions, allow_to_save, inference_id, has_impairment,
	confidence, recording_id, recorded_at, duration_ms, frames, feedback, feedback_at`

func (r *RunRepo) Insert(ctx context.Context, run Run) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO test_runs(`+runColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL);
	`, run.ID, run.CreatedAt.UTC(), run.ShowInstructions, run.AllowToSave, run.InferenceID, run.HasImpairment,
		run.Confidence, run.RecordingID, run.RecordedAt.UTC(), run.Duration.Milliseconds(), run.Frames)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the run with id, or nil when there is none.
func (r *RunRepo) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM test_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// List returns the most recent runs first. limit <= 0 means no limit.
func (r *RunRepo) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+runColumns+` FROM test_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// SetFeedback records whether the result matched the user's expectation.
func (r *RunRepo) SetFeedback(ctx context.Context, id string, matched bool, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE test_runs SET feedback = ?, feedback_at = ? WHERE id = ?`, matched, at.UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// DeleteAll removes every saved run and returns how many were removed.
func (r *RunRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM test_runs`)
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		run        Run
		recordedAt sql.NullTime
		durationMS int64
		feedback   sql.NullBool
		feedbackAt sql.NullTime
	)
	if err := s.Scan(&run.ID, &run.CreatedAt, &run.ShowInstructions, &run.AllowToSave, &run.InferenceID,
		&run.HasImpairment, &run.Confidence, &run.RecordingID, &recordedAt, &durationMS, &run.Frames,
		&feedback, &feedbackAt); err != nil {
		return Run{}, err
	}
	if recordedAt.Valid {
		run.RecordedAt = recordedAt.Time
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if feedback.Valid {
		v := feedback.Bool
		run.Feedback = &v
	}
	if feedbackAt.Valid {
		t := feedbackAt.Time
		run.FeedbackAt = &t
	}
	return run, nil
}
