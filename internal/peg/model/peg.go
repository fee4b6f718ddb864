// Package model defines domain models for the peg ledger and federation reserves.
package model

import (
	"fmt"
	"time"
)

// PegEvent is a single peg-in or peg-out observed on the side chain.
// Amount is positive for peg-ins and negative for peg-outs.
type PegEvent struct {
	SideHeight  uint64
	SideTime    time.Time
	Amount      int64
	SideTxID    string
	SideIndex   uint32
	BaseAddress string
	BaseTxID    string
	BaseIndex   uint32
	BaseHeight  uint64
	BaseTime    time.Time
	IsFinal     bool
}

// IsPegIn reports whether the event moved funds into the side chain.
func (e PegEvent) IsPegIn() bool {
	return e.Amount > 0
}

// Outpoint references a single base-chain transaction output.
type Outpoint struct {
	TxID  string
	Index uint32
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.Index)
}

// FederationUtxo is a base-chain output held (or once held) by the federation.
type FederationUtxo struct {
	Outpoint
	Address            string
	Amount             int64
	CreatedHeight      uint64
	CreatedTime        time.Time
	Unspent            bool
	LastVerifiedHeight uint64
	SpentTime          time.Time
}

// ProgressName identifies a persisted progress cursor.
type ProgressName string

var (
	// ProgressSideChainHeight is the highest side-chain height fully committed by the peg scanner.
	ProgressSideChainHeight ProgressName = "last_side_chain_height"
	// ProgressBaseChainAudit is the highest base-chain height every live federation UTXO is verified at.
	ProgressBaseChainAudit ProgressName = "last_base_chain_audit_height"
)
