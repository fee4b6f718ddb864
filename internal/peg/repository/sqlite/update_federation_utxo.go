package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// MarkUtxoSpent records that the outpoint was spent in the block at height.
// It fails with ErrNotFound when no unspent row matches.
func (t *Tx) MarkUtxoSpent(ctx context.Context, outpoint model.Outpoint, height uint64, spentAt time.Time) (err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("mark_utxo_spent", err, started)
	}()

	const query = `
UPDATE federation_utxos
SET unspent = 0,
    spent_time = ?,
    last_verified_height = MAX(last_verified_height, ?)
WHERE txid = ? AND output_index = ? AND unspent = 1`

	res, err := t.tx.ExecContext(ctx, query, unixOrZero(spentAt), height, outpoint.TxID, outpoint.Index)
	if err != nil {
		return fmt.Errorf("mark federation utxo %s spent: %w", outpoint, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unspent federation utxo %s: %w", outpoint, ErrNotFound)
	}
	return nil
}

// AdvanceUtxoVerification raises last_verified_height of an unspent row to height.
// Spent rows and rows already verified past height are left untouched.
func (t *Tx) AdvanceUtxoVerification(ctx context.Context, outpoint model.Outpoint, height uint64) (err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("advance_utxo_verification", err, started)
	}()

	const query = `
UPDATE federation_utxos
SET last_verified_height = ?
WHERE txid = ? AND output_index = ? AND unspent = 1 AND last_verified_height < ?`

	if _, err = t.tx.ExecContext(ctx, query, height, outpoint.TxID, outpoint.Index, height); err != nil {
		return fmt.Errorf("advance federation utxo %s to %d: %w", outpoint, height, err)
	}
	return nil
}
