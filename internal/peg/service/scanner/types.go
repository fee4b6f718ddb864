package scanner

import (
	"context"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/ledger"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	SideChain interface {
		TipHeight(ctx context.Context) (uint64, error)
		BlockByHeight(ctx context.Context, height uint64) (*chain.Block, error)
	}
	// BaseChain resolves the deposits claimed by peg-in inputs.
	BaseChain interface {
		Transaction(ctx context.Context, txid string) (*chain.Transaction, error)
		BlockByHash(ctx context.Context, hash string) (*chain.Block, error)
	}
	Repository interface {
		Progress(ctx context.Context, name model.ProgressName) (uint64, error)
		WithinTx(ctx context.Context, fn func(tx ledger.Tx) error) error
	}
	Metrics interface {
		ObserveRun(err error, started time.Time)
		ObserveHeight(err error, height uint64, started time.Time)
		ObservePegEvent(kind string)
	}
)
