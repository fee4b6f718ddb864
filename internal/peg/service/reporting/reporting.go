// Package reporting projects the committed ledger into the read API shapes.
package reporting

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/ledger"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

// ErrNotFound is returned when a requested utxo is not part of the reserves.
var ErrNotFound = errors.New("not found")

type Service struct {
	repo Repository
	base BaseChain
}

func NewService(repo Repository, base BaseChain) *Service {
	return &Service{repo: repo, base: base}
}

// CurrentSupply returns the net pegged amount and the side-chain height it covers.
func (s *Service) CurrentSupply(ctx context.Context) (model.CurrentSupply, error) {
	amount, err := s.repo.PegBalance(ctx)
	if err != nil {
		return model.CurrentSupply{}, fmt.Errorf("peg balance: %w", err)
	}
	height, err := s.progress(ctx, model.ProgressSideChainHeight)
	if err != nil {
		return model.CurrentSupply{}, err
	}
	return model.CurrentSupply{Amount: amount, LastSideHeight: height}, nil
}

// CurrentReserves returns the unspent federation balance and the audit height it is verified at.
func (s *Service) CurrentReserves(ctx context.Context) (model.CurrentReserves, error) {
	amount, err := s.repo.ReserveBalance(ctx)
	if err != nil {
		return model.CurrentReserves{}, fmt.Errorf("reserve balance: %w", err)
	}
	height, err := s.progress(ctx, model.ProgressBaseChainAudit)
	if err != nil {
		return model.CurrentReserves{}, err
	}
	return model.CurrentReserves{Amount: amount, LastAuditHeight: height}, nil
}

// AuditStatus compares the audit cursor with the base node. The audit is synced
// when the node trails its headers by at most two blocks and the audit trails
// the node by at most three.
func (s *Service) AuditStatus(ctx context.Context) (model.AuditStatus, error) {
	status, err := s.base.SyncStatus(ctx)
	if err != nil {
		return model.AuditStatus{}, fmt.Errorf("base chain sync status: %w", err)
	}
	audit, err := s.progress(ctx, model.ProgressBaseChainAudit)
	if err != nil {
		return model.AuditStatus{}, err
	}

	var auditLag uint64
	if status.Blocks > audit {
		auditLag = status.Blocks - audit
	}
	return model.AuditStatus{
		CurrentBaseHeight: status.Blocks,
		BaseHeaderHeight:  status.Headers,
		LastAuditHeight:   audit,
		IsSynced:          status.Lag() <= maxHeaderLag && auditLag <= maxAuditLag,
	}, nil
}

func (s *Service) PegsByMonth(ctx context.Context) ([]model.PegMonth, error) {
	months, err := s.repo.PegsByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("pegs by month: %w", err)
	}
	out := make([]model.PegMonth, 0, len(months))
	for _, m := range months {
		out = append(out, model.PegMonth{Date: m.Date, NetAmount: m.Amount})
	}
	return out, nil
}

func (s *Service) ReservesByMonth(ctx context.Context) ([]model.MonthlyAmount, error) {
	months, err := s.repo.ReservesByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserves by month: %w", err)
	}
	return months, nil
}

func (s *Service) TopAddresses(ctx context.Context) ([]model.AddressBalance, error) {
	balances, err := s.repo.TopAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("top addresses: %w", err)
	}
	return balances, nil
}

// AddressesTotal counts the distinct addresses holding at least one unspent utxo.
func (s *Service) AddressesTotal(ctx context.Context) (model.AddressesTotal, error) {
	balances, err := s.repo.TopAddresses(ctx)
	if err != nil {
		return model.AddressesTotal{}, fmt.Errorf("top addresses: %w", err)
	}
	return model.AddressesTotal{Total: len(balances)}, nil
}

// FederationAddresses lists every address a peg-in was ever sent to.
func (s *Service) FederationAddresses(ctx context.Context) ([]string, error) {
	addresses, err := s.repo.FederationAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("federation addresses: %w", err)
	}
	return addresses, nil
}

// FederationUtxos lists the unspent reserves, newest first.
func (s *Service) FederationUtxos(ctx context.Context) ([]model.UtxoView, error) {
	utxos, err := s.repo.UnspentFederationUtxos(ctx)
	if err != nil {
		return nil, fmt.Errorf("unspent federation utxos: %w", err)
	}
	out := make([]model.UtxoView, 0, len(utxos))
	for _, u := range utxos {
		out = append(out, utxoView(u))
	}
	return out, nil
}

// FederationUtxo returns one unspent reserve output. Spent and unknown outpoints
// yield ErrNotFound.
func (s *Service) FederationUtxo(ctx context.Context, outpoint model.Outpoint) (model.UtxoView, error) {
	utxo, err := s.repo.FederationUtxo(ctx, outpoint)
	if errors.Is(err, ledger.ErrNotFound) {
		return model.UtxoView{}, fmt.Errorf("federation utxo %s: %w", outpoint, ErrNotFound)
	}
	if err != nil {
		return model.UtxoView{}, fmt.Errorf("federation utxo %s: %w", outpoint, err)
	}
	if !utxo.Unspent {
		return model.UtxoView{}, fmt.Errorf("federation utxo %s spent: %w", outpoint, ErrNotFound)
	}
	return utxoView(utxo), nil
}

// PegEvents pages through recorded peg events, newest first. A zero limit
// selects the default page size; larger limits are capped.
func (s *Service) PegEvents(ctx context.Context, limit, offset uint64) ([]model.PegEventView, error) {
	switch {
	case limit == 0:
		limit = DefaultPegEventsLimit
	case limit > MaxPegEventsLimit:
		limit = MaxPegEventsLimit
	}
	events, err := s.repo.PegEvents(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("peg events: %w", err)
	}
	out := make([]model.PegEventView, 0, len(events))
	for _, e := range events {
		out = append(out, model.PegEventView{
			SideHeight:  e.SideHeight,
			SideTime:    e.SideTime,
			Amount:      e.Amount,
			SideTxID:    e.SideTxID,
			SideIndex:   e.SideIndex,
			BaseAddress: e.BaseAddress,
			BaseTxID:    e.BaseTxID,
			BaseIndex:   e.BaseIndex,
			IsFinal:     e.IsFinal,
		})
	}
	return out, nil
}

// progress reads a cursor, treating one not yet seeded by the engines as zero.
func (s *Service) progress(ctx context.Context, name model.ProgressName) (uint64, error) {
	value, err := s.repo.Progress(ctx, name)
	if errors.Is(err, ledger.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("progress %s: %w", name, err)
	}
	return value, nil
}

func utxoView(u model.FederationUtxo) model.UtxoView {
	return model.UtxoView{
		TxID:        u.TxID,
		OutputIndex: u.Index,
		Address:     u.Address,
		Amount:      u.Amount,
		CreatedTime: u.CreatedTime,
	}
}
