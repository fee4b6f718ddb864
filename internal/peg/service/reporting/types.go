package reporting

import (
	"context"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		Progress(ctx context.Context, name model.ProgressName) (uint64, error)
		PegBalance(ctx context.Context) (int64, error)
		ReserveBalance(ctx context.Context) (int64, error)
		PegsByMonth(ctx context.Context) ([]model.MonthlyAmount, error)
		ReservesByMonth(ctx context.Context) ([]model.MonthlyAmount, error)
		TopAddresses(ctx context.Context) ([]model.AddressBalance, error)
		FederationAddresses(ctx context.Context) ([]string, error)
		UnspentFederationUtxos(ctx context.Context) ([]model.FederationUtxo, error)
		FederationUtxo(ctx context.Context, outpoint model.Outpoint) (model.FederationUtxo, error)
		PegEvents(ctx context.Context, limit, offset uint64) ([]model.PegEvent, error)
	}
	// BaseChain reports the base node's own sync state for the audit status.
	BaseChain interface {
		SyncStatus(ctx context.Context) (chain.SyncStatus, error)
	}
)
