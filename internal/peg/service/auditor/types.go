package auditor

import (
	"context"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/ledger"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BaseChain interface {
		TipHeight(ctx context.Context) (uint64, error)
		SyncStatus(ctx context.Context) (chain.SyncStatus, error)
		BlockByHeight(ctx context.Context, height uint64) (*chain.Block, error)
		UtxoExists(ctx context.Context, outpoint model.Outpoint) (bool, error)
	}
	Repository interface {
		HasPegIns(ctx context.Context) (bool, error)
		Progress(ctx context.Context, name model.ProgressName) (uint64, error)
		UtxosDueForVerification(ctx context.Context, height uint64) ([]model.FederationUtxo, error)
		WithinTx(ctx context.Context, fn func(tx ledger.Tx) error) error
	}
	Metrics interface {
		ObserveRun(err error, started time.Time)
		ObserveHeight(err error, height uint64, started time.Time)
		ObserveFastPath(checked, confirmed int)
		ObserveSlowPath(spent, discovered, advanced int)
	}
)
