package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// InsertFederationUtxo stores utxo unless its outpoint is already tracked.
func (t *Tx) InsertFederationUtxo(ctx context.Context, utxo model.FederationUtxo) (inserted bool, err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("insert_federation_utxo", err, started)
	}()

	const query = `
INSERT INTO federation_utxos (
    txid,
    output_index,
    address,
    amount,
    created_height,
    created_time,
    unspent,
    last_verified_height,
    spent_time
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL)
ON CONFLICT (txid, output_index) DO NOTHING`

	res, err := t.tx.ExecContext(ctx, query,
		utxo.TxID,
		utxo.Index,
		utxo.Address,
		utxo.Amount,
		utxo.CreatedHeight,
		unixOrZero(utxo.CreatedTime),
		boolToInt(utxo.Unspent),
		utxo.LastVerifiedHeight,
	)
	if err != nil {
		return false, fmt.Errorf("insert federation utxo %s: %w", utxo.Outpoint, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected == 1, nil
}
