// Package elements implements the side-chain client over an elementsd node.
package elements

import (
	"fmt"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/bitcoin"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
)

func convertBlock(src blockResult) (*chain.Block, error) {
	if src.Height < 0 {
		return nil, fmt.Errorf("block %s has negative height %d", src.Hash, src.Height)
	}
	txs := make([]chain.Transaction, 0, len(src.Tx))
	for _, raw := range src.Tx {
		tx, err := convertTransaction(raw)
		if err != nil {
			return nil, err
		}
		tx.BlockHash = src.Hash
		txs = append(txs, tx)
	}
	return &chain.Block{
		Height:       uint64(src.Height),
		Hash:         src.Hash,
		Time:         bitcoin.BlockTime(src.Time),
		Transactions: txs,
	}, nil
}

func convertTransaction(tx txResult) (chain.Transaction, error) {
	inputs := make([]chain.Input, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		inputs = append(inputs, chain.Input{
			TxID:       vin.TxID,
			Vout:       vin.Vout,
			IsCoinbase: vin.Coinbase != "",
			IsPegIn:    vin.IsPegIn,
		})
	}

	outputs := make([]chain.Output, 0, len(tx.Vout))
	for _, vout := range tx.Vout {
		out := chain.Output{
			Index:         vout.N,
			Address:       firstNonEmpty(vout.ScriptPubKey.Address, vout.ScriptPubKey.Addresses),
			ScriptType:    vout.ScriptPubKey.Type,
			Asset:         vout.Asset,
			PegoutChain:   vout.ScriptPubKey.PegoutChain,
			PegoutAddress: firstNonEmpty(vout.ScriptPubKey.PegoutAddress, vout.ScriptPubKey.PegoutAddresses),
		}
		if vout.Value != nil {
			value, err := bitcoin.BtcToSatoshis(*vout.Value)
			if err != nil {
				return chain.Transaction{}, fmt.Errorf("tx %s output %d value: %w", tx.TxID, vout.N, err)
			}
			out.Value = value
			out.HasValue = true
		}
		outputs = append(outputs, out)
	}

	return chain.Transaction{
		TxID:    tx.TxID,
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}

func firstNonEmpty(single string, list []string) string {
	if single != "" {
		return single
	}
	if len(list) > 0 {
		return list[0]
	}
	return ""
}
