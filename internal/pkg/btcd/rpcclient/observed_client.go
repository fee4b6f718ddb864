// Package rpcclient wraps the btcd RPC client with metrics and request throttling.
package rpcclient

import (
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"go.uber.org/ratelimit"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
	// Client is the subset of *rpcclient.Client used by the chain adapters.
	Client interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerbose(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseResult, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		GetTxOut(txHash *chainhash.Hash, index uint32, mempool bool) (*btcjson.GetTxOutResult, error)
		GetBlockChainInfo() (*btcjson.GetBlockChainInfoResult, error)
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}
)

var _ Client = (*rpcclient.Client)(nil)

// ObservedClient records every call and spaces calls out to at most rps per second.
type ObservedClient struct {
	client     Client
	rpcMetrics RPCMetrics
	limiter    ratelimit.Limiter
}

// NewObservedClient wraps client. A non-positive rps disables throttling.
func NewObservedClient(client Client, rpcMetrics RPCMetrics, rps int) *ObservedClient {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		limiter:    limiter,
	}
}

func (r *ObservedClient) GetBlockCount() (count int64, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

func (r *ObservedClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

func (r *ObservedClient) GetBlockVerbose(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseResult, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose", err, started)
	}()
	return r.client.GetBlockVerbose(blockHash)
}

func (r *ObservedClient) GetBlockVerboseTx(blockHash *chainhash.Hash) (res *btcjson.GetBlockVerboseTxResult, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe("get_block_verbose_tx", err, started)
	}()
	return r.client.GetBlockVerboseTx(blockHash)
}

func (r *ObservedClient) GetRawTransactionVerbose(txHash *chainhash.Hash) (res *btcjson.TxRawResult, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe("get_raw_transaction_verbose", err, started)
	}()
	return r.client.GetRawTransactionVerbose(txHash)
}

func (r *ObservedClient) GetTxOut(txHash *chainhash.Hash, index uint32, mempool bool) (res *btcjson.GetTxOutResult, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe("get_tx_out", err, started)
	}()
	return r.client.GetTxOut(txHash, index, mempool)
}

func (r *ObservedClient) GetBlockChainInfo() (res *btcjson.GetBlockChainInfoResult, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe("get_blockchain_info", err, started)
	}()
	return r.client.GetBlockChainInfo()
}

// RawRequest issues an arbitrary call; the method name is used as the metrics operation.
func (r *ObservedClient) RawRequest(method string, params []json.RawMessage) (res json.RawMessage, err error) {
	started := r.take()
	defer func() {
		r.rpcMetrics.Observe(method, err, started)
	}()
	return r.client.RawRequest(method, params)
}

// take blocks until the limiter admits the call; the returned time excludes the wait.
func (r *ObservedClient) take() time.Time {
	return r.limiter.Take()
}
