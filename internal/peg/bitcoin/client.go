package bitcoin

import (
	"context"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/goodnatureofminers/pegaudit-backend/pkg/safe"
)

// Client is the base-chain client used by the peg scanner and the federation auditor.
type Client struct {
	rpc     RPCClient
	decoder ScriptDecoder
}

// NewClient creates a Client for the given network.
func NewClient(rpc RPCClient, network model.Network) (*Client, error) {
	decoder, err := NewScriptDecoder(network)
	if err != nil {
		return nil, err
	}
	return &Client{rpc: rpc, decoder: decoder}, nil
}

// TipHeight returns the height of the best validated block.
func (c *Client) TipHeight(_ context.Context) (uint64, error) {
	count, err := c.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockByHeight fetches the block at height with fully decoded transactions.
func (c *Client) BlockByHeight(ctx context.Context, height uint64) (*chain.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	hash, err := c.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := c.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	blockHeight, err := safe.Uint64(src.Height)
	if err != nil {
		return nil, fmt.Errorf("block %s height: %w", hash, err)
	}

	txs := make([]chain.Transaction, 0, len(src.Tx))
	for _, raw := range src.Tx {
		tx, err := convertTransaction(raw, c.decoder)
		if err != nil {
			return nil, err
		}
		if tx.BlockHash == "" {
			tx.BlockHash = src.Hash
		}
		txs = append(txs, tx)
	}

	return &chain.Block{
		Height:       blockHeight,
		Hash:         src.Hash,
		Time:         BlockTime(src.Time),
		Transactions: txs,
	}, nil
}

// BlockByHash fetches block metadata (height and time) without transactions.
func (c *Client) BlockByHash(ctx context.Context, hash string) (*chain.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blockHash, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("parse block hash %q: %w", hash, err)
	}
	src, err := c.rpc.GetBlockVerbose(blockHash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return nil, fmt.Errorf("block %s height: %w", hash, err)
	}
	return &chain.Block{
		Height: height,
		Hash:   src.Hash,
		Time:   BlockTime(src.Time),
	}, nil
}

// Transaction fetches a confirmed transaction by id. The node must run with -txindex.
func (c *Client) Transaction(ctx context.Context, txid string) (*chain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txHash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %q: %w", txid, err)
	}
	raw, err := c.rpc.GetRawTransactionVerbose(txHash)
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}
	if raw.BlockHash == "" {
		return nil, fmt.Errorf("transaction %s: %w", txid, chain.ErrTxNotInBlock)
	}
	tx, err := convertTransaction(*raw, c.decoder)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// UtxoExists reports whether the outpoint is unspent in the current best chain.
// Mempool spends are ignored.
func (c *Client) UtxoExists(ctx context.Context, outpoint model.Outpoint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	txHash, err := chainhash.NewHashFromStr(outpoint.TxID)
	if err != nil {
		return false, fmt.Errorf("parse txid %q: %w", outpoint.TxID, err)
	}
	res, err := c.rpc.GetTxOut(txHash, outpoint.Index, false)
	if err != nil {
		return false, fmt.Errorf("get tx out %s: %w", outpoint, err)
	}
	return res != nil, nil
}

// SyncStatus reports validated blocks against known headers.
func (c *Client) SyncStatus(_ context.Context) (chain.SyncStatus, error) {
	info, err := c.rpc.GetBlockChainInfo()
	if err != nil {
		return chain.SyncStatus{}, fmt.Errorf("get blockchain info: %w", err)
	}
	blocks, err := safe.Uint64(info.Blocks)
	if err != nil {
		return chain.SyncStatus{}, fmt.Errorf("blocks: %w", err)
	}
	headers, err := safe.Uint64(info.Headers)
	if err != nil {
		return chain.SyncStatus{}, fmt.Errorf("headers: %w", err)
	}
	return chain.SyncStatus{Blocks: blocks, Headers: headers}, nil
}
