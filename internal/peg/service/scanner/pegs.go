package scanner

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/goodnatureofminers/pegaudit-backend/pkg/workerpool"
)

// pegIn is a resolved peg-in together with the federation utxo it creates.
type pegIn struct {
	event model.PegEvent
	utxo  model.FederationUtxo
}

// pegOut is a side-chain withdrawal; burn marks a bare burn of the native asset.
type pegOut struct {
	event model.PegEvent
	burn  bool
}

type blockPegs struct {
	pegIns  []pegIn
	pegOuts []pegOut
}

// pegInRef locates a peg-in input inside a side-chain block.
type pegInRef struct {
	sideTxID  string
	sideIndex uint32
	input     chain.Input
}

// collectPegs finds every peg in block. Peg-ins are resolved against the base
// chain concurrently; their order follows the block.
func (s *Service) collectPegs(ctx context.Context, block *chain.Block) (blockPegs, error) {
	var (
		pegs blockPegs
		refs []pegInRef
	)
	for _, tx := range block.Transactions {
		for i, in := range tx.Inputs {
			if in.IsPegIn {
				refs = append(refs, pegInRef{sideTxID: tx.TxID, sideIndex: uint32(i), input: in})
			}
		}
		for _, out := range tx.Outputs {
			if p, ok := s.pegOutFromOutput(block, tx.TxID, out); ok {
				pegs.pegOuts = append(pegs.pegOuts, p)
			}
		}
	}

	pegIns, err := workerpool.Map(ctx, s.workers, refs, func(ctx context.Context, ref pegInRef) (pegIn, error) {
		return s.resolvePegIn(ctx, block, ref.sideTxID, ref.sideIndex, ref.input)
	})
	if err != nil {
		return blockPegs{}, err
	}
	pegs.pegIns = pegIns
	return pegs, nil
}

func (s *Service) resolvePegIn(ctx context.Context, block *chain.Block, sideTxID string, sideIndex uint32, in chain.Input) (pegIn, error) {
	deposit, err := s.base.Transaction(ctx, in.TxID)
	if err != nil {
		return pegIn{}, fmt.Errorf("peg-in %s:%d deposit %s: %w", sideTxID, sideIndex, in.TxID, err)
	}
	out, ok := deposit.OutputByIndex(in.Vout)
	if !ok {
		return pegIn{}, fmt.Errorf("peg-in %s:%d: deposit %s has no output %d", sideTxID, sideIndex, in.TxID, in.Vout)
	}
	depositBlock, err := s.base.BlockByHash(ctx, deposit.BlockHash)
	if err != nil {
		return pegIn{}, fmt.Errorf("peg-in %s:%d deposit block %s: %w", sideTxID, sideIndex, deposit.BlockHash, err)
	}

	event := model.PegEvent{
		SideHeight:  block.Height,
		SideTime:    block.Time,
		Amount:      out.Value,
		SideTxID:    sideTxID,
		SideIndex:   sideIndex,
		BaseAddress: out.Address,
		BaseTxID:    deposit.TxID,
		BaseIndex:   out.Index,
		BaseHeight:  depositBlock.Height,
		BaseTime:    depositBlock.Time,
		IsFinal:     true,
	}

	// Seeded one block before confirmation so the audit verifies it at least once.
	var lastVerified uint64
	if depositBlock.Height > 0 {
		lastVerified = depositBlock.Height - 1
	}
	utxo := model.FederationUtxo{
		Outpoint:           model.Outpoint{TxID: deposit.TxID, Index: out.Index},
		Address:            out.Address,
		Amount:             out.Value,
		CreatedHeight:      depositBlock.Height,
		CreatedTime:        depositBlock.Time,
		Unspent:            true,
		LastVerifiedHeight: lastVerified,
	}
	return pegIn{event: event, utxo: utxo}, nil
}

func (s *Service) pegOutFromOutput(block *chain.Block, txid string, out chain.Output) (pegOut, bool) {
	event := model.PegEvent{
		SideHeight:  block.Height,
		SideTime:    block.Time,
		Amount:      -out.Value,
		SideTxID:    txid,
		SideIndex:   out.Index,
		BaseAddress: out.PegoutAddress,
	}

	if out.PegoutChain != "" {
		return pegOut{event: event}, true
	}

	if out.ScriptType == scriptTypeNullData && out.HasValue && out.Value > 0 && out.Asset == s.nativeAsset {
		event.IsFinal = true
		return pegOut{event: event, burn: true}, true
	}
	return pegOut{}, false
}
