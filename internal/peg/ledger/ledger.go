// Package ledger describes the unit of work both sync engines write through.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// ErrNotFound is returned by stores when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Tx is one atomic unit of ledger writes. Nothing written through a Tx is
// visible to other readers until the owning WithinTx call commits.
type Tx interface {
	// InsertPegEvent stores the event unless one with the same side-chain outpoint exists.
	InsertPegEvent(ctx context.Context, event model.PegEvent) (bool, error)
	InsertFederationAddress(ctx context.Context, address string, firstSeenHeight uint64) error
	// InsertFederationUtxo stores the utxo unless a row with the same outpoint exists.
	InsertFederationUtxo(ctx context.Context, utxo model.FederationUtxo) (bool, error)
	// MarkUtxoSpent flips an unspent row to spent. It returns ErrNotFound when no
	// unspent row matches the outpoint, including one that is already spent.
	MarkUtxoSpent(ctx context.Context, outpoint model.Outpoint, height uint64, spentAt time.Time) error
	// AdvanceUtxoVerification raises last_verified_height of an unspent row, never lowering it.
	AdvanceUtxoVerification(ctx context.Context, outpoint model.Outpoint, height uint64) error
	Progress(ctx context.Context, name model.ProgressName) (uint64, error)
	SetProgress(ctx context.Context, name model.ProgressName, value uint64) error
	// RecomputeAuditCursor stores min(last_verified_height) over unspent rows as the audit
	// cursor, or fallback when no unspent row exists, and returns the stored value.
	RecomputeAuditCursor(ctx context.Context, fallback uint64) (uint64, error)
}
