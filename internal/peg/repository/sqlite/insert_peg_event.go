package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// InsertPegEvent stores event and reports whether a new row was written.
// Re-inserting an event with the same side-chain outpoint is a no-op.
func (t *Tx) InsertPegEvent(ctx context.Context, event model.PegEvent) (inserted bool, err error) {
	started := time.Now()
	defer func() {
		t.metrics.Observe("insert_peg_event", err, started)
	}()

	const query = `
INSERT INTO peg_events (
    side_height,
    side_time,
    amount,
    side_txid,
    side_index,
    base_address,
    base_txid,
    base_index,
    base_height,
    base_time,
    is_final
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (side_txid, side_index) DO NOTHING`

	res, err := t.tx.ExecContext(ctx, query,
		event.SideHeight,
		unixOrZero(event.SideTime),
		event.Amount,
		event.SideTxID,
		event.SideIndex,
		event.BaseAddress,
		event.BaseTxID,
		event.BaseIndex,
		event.BaseHeight,
		unixOrZero(event.BaseTime),
		boolToInt(event.IsFinal),
	)
	if err != nil {
		return false, fmt.Errorf("insert peg event %s:%d: %w", event.SideTxID, event.SideIndex, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected == 1, nil
}
