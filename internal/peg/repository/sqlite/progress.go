package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// EnsureProgress creates the cursor with baseline unless it already exists.
func (r *Repository) EnsureProgress(ctx context.Context, name model.ProgressName, baseline uint64) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("ensure_progress", err, started)
	}()

	const query = `
INSERT INTO progress (name, value)
VALUES (?, ?)
ON CONFLICT (name) DO NOTHING`

	if _, err = r.db.ExecContext(ctx, query, string(name), baseline); err != nil {
		return fmt.Errorf("ensure progress %s: %w", name, err)
	}
	return nil
}

// Progress returns the committed value of a cursor.
func (r *Repository) Progress(ctx context.Context, name model.ProgressName) (value uint64, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("progress", err, started)
	}()
	return progress(ctx, r.db, name)
}

func (t *Tx) Progress(ctx context.Context, name model.ProgressName) (value uint64, err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("tx_progress", err, started)
	}()
	return progress(ctx, t.tx, name)
}

func (t *Tx) SetProgress(ctx context.Context, name model.ProgressName, value uint64) (err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("set_progress", err, started)
	}()
	return setProgress(ctx, t.tx, name, value)
}

func progress(ctx context.Context, q querier, name model.ProgressName) (uint64, error) {
	const query = `SELECT value FROM progress WHERE name = ?`

	var value uint64
	if err := q.QueryRowContext(ctx, query, string(name)).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("progress %s: %w", name, ErrNotFound)
		}
		return 0, fmt.Errorf("query progress %s: %w", name, err)
	}
	return value, nil
}

func setProgress(ctx context.Context, q querier, name model.ProgressName, value uint64) error {
	const query = `
INSERT INTO progress (name, value)
VALUES (?, ?)
ON CONFLICT (name) DO UPDATE SET value = excluded.value`

	if _, err := q.ExecContext(ctx, query, string(name), value); err != nil {
		return fmt.Errorf("set progress %s: %w", name, err)
	}
	return nil
}
