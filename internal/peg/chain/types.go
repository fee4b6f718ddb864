// Package chain defines chain-neutral block data shared by the peg scanner and the federation auditor.
package chain

import (
	"errors"
	"time"
)

// ErrTxNotInBlock is returned when a transaction is known to the node but not yet mined.
var ErrTxNotInBlock = errors.New("transaction not in any block")

// Block is a decoded block. Transactions are empty for header-only lookups.
type Block struct {
	Height       uint64
	Hash         string
	Time         time.Time
	Transactions []Transaction
}

// Transaction is a decoded transaction; BlockHash is set when it was fetched by txid.
type Transaction struct {
	TxID      string
	BlockHash string
	Inputs    []Input
	Outputs   []Output
}

// Input references the output it spends.
type Input struct {
	TxID       string
	Vout       uint32
	IsCoinbase bool
	// IsPegIn marks a side-chain input claiming a base-chain deposit.
	IsPegIn bool
}

// Output is a transaction output with its value converted to satoshis.
type Output struct {
	Index      uint32
	Value      int64
	HasValue   bool
	Address    string
	ScriptType string
	// Asset is the side-chain asset id; empty on the base chain.
	Asset string
	// PegoutChain is set when the output carries an explicit peg-out instruction.
	PegoutChain   string
	PegoutAddress string
}

// OutputByIndex returns the output with index n.
func (t Transaction) OutputByIndex(n uint32) (Output, bool) {
	if int(n) < len(t.Outputs) && t.Outputs[n].Index == n {
		return t.Outputs[n], true
	}
	for _, out := range t.Outputs {
		if out.Index == n {
			return out, true
		}
	}
	return Output{}, false
}

// SyncStatus reports how far a node has validated relative to the headers it knows.
type SyncStatus struct {
	Blocks  uint64
	Headers uint64
}

// Lag returns how many known headers are not yet validated.
func (s SyncStatus) Lag() uint64 {
	if s.Headers <= s.Blocks {
		return 0
	}
	return s.Headers - s.Blocks
}
