package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// RecomputeAuditCursor derives the audit cursor from the least verified unspent
// federation utxo and stores it. fallback is stored when no unspent row exists.
func (t *Tx) RecomputeAuditCursor(ctx context.Context, fallback uint64) (cursor uint64, err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("recompute_audit_cursor", err, started)
	}()

	const query = `SELECT MIN(last_verified_height) FROM federation_utxos WHERE unspent = 1`

	var least sql.NullInt64
	if err = t.tx.QueryRowContext(ctx, query).Scan(&least); err != nil {
		return 0, fmt.Errorf("query least verified height: %w", err)
	}

	cursor = fallback
	if least.Valid {
		cursor = uint64(least.Int64)
	}
	if err = setProgress(ctx, t.tx, model.ProgressBaseChainAudit, cursor); err != nil {
		return 0, err
	}
	return cursor, nil
}
