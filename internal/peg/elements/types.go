package elements

import "encoding/json"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCClient issues raw JSON-RPC calls to an elementsd node.
	RPCClient interface {
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}
)

// Verbose getblock/getrawtransaction shapes as returned by elementsd.
// Confidential outputs omit value and asset.
type (
	blockResult struct {
		Hash   string     `json:"hash"`
		Height int64      `json:"height"`
		Time   int64      `json:"time"`
		Tx     []txResult `json:"tx"`
	}

	txResult struct {
		TxID string       `json:"txid"`
		Vin  []vinResult  `json:"vin"`
		Vout []voutResult `json:"vout"`
	}

	vinResult struct {
		TxID     string `json:"txid"`
		Vout     uint32 `json:"vout"`
		Coinbase string `json:"coinbase"`
		IsPegIn  bool   `json:"is_pegin"`
	}

	voutResult struct {
		Value        *float64           `json:"value"`
		Asset        string             `json:"asset"`
		N            uint32             `json:"n"`
		ScriptPubKey scriptPubKeyResult `json:"scriptPubKey"`
	}

	scriptPubKeyResult struct {
		Type            string   `json:"type"`
		Hex             string   `json:"hex"`
		Address         string   `json:"address"`
		Addresses       []string `json:"addresses"`
		PegoutChain     string   `json:"pegout_chain"`
		PegoutAddress   string   `json:"pegout_address"`
		PegoutAddresses []string `json:"pegout_addresses"`
	}

	blockchainInfoResult struct {
		Chain   string `json:"chain"`
		Blocks  int64  `json:"blocks"`
		Headers int64  `json:"headers"`
	}
)
