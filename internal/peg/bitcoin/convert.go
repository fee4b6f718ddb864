// Package bitcoin implements the base-chain client over a bitcoind node.
package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
)

// BtcToSatoshis converts a decimal coin amount from RPC into satoshis.
func BtcToSatoshis(value float64) (int64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return int64(amt), nil
}

// BlockTime converts a unix timestamp from RPC to UTC.
func BlockTime(unix int64) time.Time {
	return time.Unix(unix, 0).UTC()
}

func convertTransaction(tx btcjson.TxRawResult, decoder ScriptDecoder) (chain.Transaction, error) {
	inputs := make([]chain.Input, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		inputs = append(inputs, chain.Input{
			TxID:       vin.Txid,
			Vout:       vin.Vout,
			IsCoinbase: vin.IsCoinBase(),
		})
	}

	outputs := make([]chain.Output, 0, len(tx.Vout))
	for _, vout := range tx.Vout {
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return chain.Transaction{}, fmt.Errorf("tx %s output %d value: %w", tx.Txid, vout.N, err)
		}
		address, err := decoder.Address(vout)
		if err != nil {
			return chain.Transaction{}, fmt.Errorf("tx %s output %d address: %w", tx.Txid, vout.N, err)
		}
		outputs = append(outputs, chain.Output{
			Index:      vout.N,
			Value:      value,
			HasValue:   true,
			Address:    address,
			ScriptType: vout.ScriptPubKey.Type,
		})
	}

	return chain.Transaction{
		TxID:      tx.Txid,
		BlockHash: tx.BlockHash,
		Inputs:    inputs,
		Outputs:   outputs,
	}, nil
}
