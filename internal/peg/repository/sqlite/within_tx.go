package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/ledger"
)

// Tx is the SQLite unit of work handed to WithinTx callbacks.
type Tx struct {
	tx      *sql.Tx
	metrics Metrics
}

var _ ledger.Tx = (*Tx)(nil)

// WithinTx runs fn inside a database transaction. The transaction commits only
// when fn returns nil; any error or panic rolls it back.
func (r *Repository) WithinTx(ctx context.Context, fn func(tx ledger.Tx) error) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("within_tx", err, started)
	}()

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && err != nil {
			err = errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
	}()

	if err = fn(&Tx{tx: sqlTx, metrics: r.metrics}); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
