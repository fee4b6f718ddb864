package model

import "time"

// CurrentSupply is the net pegged amount and the side-chain height it reflects.
type CurrentSupply struct {
	Amount         int64  `json:"amount"`
	LastSideHeight uint64 `json:"lastSideHeight"`
}

// CurrentReserves is the federation's unspent reserve and its audit height.
type CurrentReserves struct {
	Amount          int64  `json:"amount"`
	LastAuditHeight uint64 `json:"lastAuditHeight"`
}

// AuditStatus describes how far the audit trails the base chain.
type AuditStatus struct {
	CurrentBaseHeight uint64 `json:"currentBaseHeight"`
	BaseHeaderHeight  uint64 `json:"baseHeaderHeight"`
	LastAuditHeight   uint64 `json:"lastAuditHeight"`
	IsSynced          bool   `json:"isSynced"`
}

// MonthlyAmount is an amount aggregated over a calendar month (date is YYYY-MM-01).
type MonthlyAmount struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
}

// PegMonth is the net amount pegged in during a calendar month (date is YYYY-MM-01).
type PegMonth struct {
	Date      string `json:"date"`
	NetAmount int64  `json:"netAmount"`
}

// AddressesTotal counts the federation addresses currently holding reserves.
type AddressesTotal struct {
	Total int `json:"total"`
}

// AddressBalance is the unspent federation balance held by one address.
type AddressBalance struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// UtxoView is the public projection of an unspent federation UTXO.
type UtxoView struct {
	TxID        string    `json:"txid"`
	OutputIndex uint32    `json:"outputIndex"`
	Address     string    `json:"address"`
	Amount      int64     `json:"amount"`
	CreatedTime time.Time `json:"createdTime"`
}

// PegEventView is the public projection of a recorded peg event.
type PegEventView struct {
	SideHeight  uint64    `json:"sideHeight"`
	SideTime    time.Time `json:"sideTime"`
	Amount      int64     `json:"amount"`
	SideTxID    string    `json:"sideTxid"`
	SideIndex   uint32    `json:"sideIndex"`
	BaseAddress string    `json:"baseAddress"`
	BaseTxID    string    `json:"baseTxid"`
	BaseIndex   uint32    `json:"baseIndex"`
	IsFinal     bool      `json:"isFinal"`
}
