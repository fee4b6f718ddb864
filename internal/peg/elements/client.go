package elements

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
	"github.com/goodnatureofminers/pegaudit-backend/pkg/safe"
)

// getblock verbosity that inlines decoded transactions.
const verbosityWithTx = 2

// Client reads blocks from an elementsd node. Elements extends the bitcoind
// verbose JSON with peg fields, so responses are decoded by hand from RawRequest.
type Client struct {
	rpc RPCClient
}

func NewClient(rpc RPCClient) *Client {
	return &Client{rpc: rpc}
}

func (c *Client) TipHeight(_ context.Context) (uint64, error) {
	var count int64
	if err := c.call("getblockcount", nil, &count); err != nil {
		return 0, err
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
	var hash string
	if err := c.call("getblockhash", []any{height}, &hash); err != nil {
		return nil, fmt.Errorf("height %d: %w", height, err)
	}
	var block blockResult
	if err := c.call("getblock", []any{hash, verbosityWithTx}, &block); err != nil {
		return nil, err
	}
	return convertBlock(block)
}

func (c *Client) SyncStatus(_ context.Context) (chain.SyncStatus, error) {
	var info blockchainInfoResult
	if err := c.call("getblockchaininfo", nil, &info); err != nil {
		return chain.SyncStatus{}, err
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

func (c *Client) call(method string, args []any, out any) error {
	params := make([]json.RawMessage, 0, len(args))
	for _, arg := range args {
		raw, err := json.Marshal(arg)
		if err != nil {
			return fmt.Errorf("%s: marshal param: %w", method, err)
		}
		params = append(params, raw)
	}
	res, err := c.rpc.RawRequest(method, params)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if err := json.Unmarshal(res, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	return nil
}
