package transport

import (
	"context"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Reporting interface {
		CurrentSupply(ctx context.Context) (model.CurrentSupply, error)
		CurrentReserves(ctx context.Context) (model.CurrentReserves, error)
		AuditStatus(ctx context.Context) (model.AuditStatus, error)
		PegsByMonth(ctx context.Context) ([]model.PegMonth, error)
		ReservesByMonth(ctx context.Context) ([]model.MonthlyAmount, error)
		TopAddresses(ctx context.Context) ([]model.AddressBalance, error)
		AddressesTotal(ctx context.Context) (model.AddressesTotal, error)
		FederationAddresses(ctx context.Context) ([]string, error)
		FederationUtxos(ctx context.Context) ([]model.UtxoView, error)
		FederationUtxo(ctx context.Context, outpoint model.Outpoint) (model.UtxoView, error)
		PegEvents(ctx context.Context, limit, offset uint64) ([]model.PegEventView, error)
	}
)
