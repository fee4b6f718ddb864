package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// HasPegIns reports whether at least one peg-in has ever been recorded.
func (r *Repository) HasPegIns(ctx context.Context) (found bool, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("has_peg_ins", err, started)
	}()

	const query = `SELECT EXISTS (SELECT 1 FROM peg_events WHERE amount > 0)`

	if err = r.db.QueryRowContext(ctx, query).Scan(&found); err != nil {
		return false, fmt.Errorf("query peg-ins: %w", err)
	}
	return found, nil
}

// PegEvents returns recorded peg events, newest first.
func (r *Repository) PegEvents(ctx context.Context, limit, offset uint64) (events []model.PegEvent, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("peg_events", err, started)
	}()

	const query = `
SELECT
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
FROM peg_events
ORDER BY side_height DESC, side_txid, side_index
LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query peg events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			event    model.PegEvent
			sideTime int64
			baseTime int64
		)
		if err = rows.Scan(
			&event.SideHeight,
			&sideTime,
			&event.Amount,
			&event.SideTxID,
			&event.SideIndex,
			&event.BaseAddress,
			&event.BaseTxID,
			&event.BaseIndex,
			&event.BaseHeight,
			&baseTime,
			&event.IsFinal,
		); err != nil {
			return nil, fmt.Errorf("scan peg event: %w", err)
		}
		event.SideTime = fromUnix(sideTime)
		event.BaseTime = fromUnix(baseTime)
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate peg events: %w", err)
	}
	return events, nil
}
