package auditor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/chain"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/ledger"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/goodnatureofminers/pegaudit-backend/pkg/workerpool"
	"go.uber.org/zap"
)

// heightResult counts what one audited height changed.
type heightResult struct {
	confirmed  int
	spent      int
	discovered int
	advanced   int
	cursor     uint64
}

// auditHeight verifies every utxo due at height and commits the outcome with
// the recomputed audit cursor in one transaction.
func (s *Service) auditHeight(ctx context.Context, logger *zap.Logger, height, confirmedTip uint64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveHeight(err, height, started)
	}()

	candidates, err := s.repo.UtxosDueForVerification(ctx, height)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}

	nearTip := confirmedTip-height <= s.fastPathWindow
	confirmed, pending, err := s.fastPath(ctx, nearTip, candidates)
	if err != nil {
		return err
	}

	var block *chain.Block
	if len(pending) > 0 {
		if block, err = s.base.BlockByHeight(ctx, height); err != nil {
			return fmt.Errorf("fetch block: %w", err)
		}
	}

	var res heightResult
	err = s.repo.WithinTx(ctx, func(tx ledger.Tx) error {
		res = heightResult{confirmed: len(confirmed)}
		for _, outpoint := range confirmed {
			if err := tx.AdvanceUtxoVerification(ctx, outpoint, confirmedTip); err != nil {
				return err
			}
		}
		if block != nil {
			if err := s.slowPath(ctx, tx, block, pending, &res); err != nil {
				return err
			}
		}
		cursor, err := tx.RecomputeAuditCursor(ctx, height)
		if err != nil {
			return err
		}
		res.cursor = cursor
		return nil
	})
	if err != nil {
		return err
	}

	if nearTip && len(candidates) > 0 {
		s.metrics.ObserveFastPath(len(candidates), res.confirmed)
	}
	if block != nil {
		s.metrics.ObserveSlowPath(res.spent, res.discovered, res.advanced)
	}
	logger.Debug("base chain height audited",
		zap.Uint64("height", height),
		zap.Uint64("confirmed_tip", confirmedTip),
		zap.Int("candidates", len(candidates)),
		zap.Int("fast_path_confirmed", res.confirmed),
		zap.Int("spent", res.spent),
		zap.Int("discovered", res.discovered),
		zap.Int("advanced", res.advanced),
		zap.Uint64("audit_cursor", res.cursor),
	)
	return nil
}

// fastPath splits candidates into outpoints proven unspent at the tip and those
// that need a block scan. Far from the tip every candidate needs the scan, since
// an existence check at the tip says nothing about a spend at the audited height.
func (s *Service) fastPath(ctx context.Context, nearTip bool, candidates []model.FederationUtxo) ([]model.Outpoint, map[model.Outpoint]model.FederationUtxo, error) {
	pending := make(map[model.Outpoint]model.FederationUtxo, len(candidates))
	if !nearTip {
		for _, c := range candidates {
			pending[c.Outpoint] = c
		}
		return nil, pending, nil
	}

	exists, err := workerpool.Map(ctx, s.workers, candidates, func(ctx context.Context, c model.FederationUtxo) (bool, error) {
		ok, err := s.base.UtxoExists(ctx, c.Outpoint)
		if err != nil {
			return false, fmt.Errorf("check utxo %s: %w", c.Outpoint, err)
		}
		return ok, nil
	})
	if err != nil {
		return nil, nil, err
	}

	confirmed := make([]model.Outpoint, 0, len(candidates))
	for i, c := range candidates {
		if exists[i] {
			confirmed = append(confirmed, c.Outpoint)
			continue
		}
		pending[c.Outpoint] = c
	}
	return confirmed, pending, nil
}

// slowPath scans block for spends of pending utxos and for new outputs paying a
// federation change address. Discovered outputs join pending so a spend later in
// the same block is caught.
func (s *Service) slowPath(ctx context.Context, tx ledger.Tx, block *chain.Block, pending map[model.Outpoint]model.FederationUtxo, res *heightResult) error {
	for _, t := range block.Transactions {
		for _, in := range t.Inputs {
			if in.IsCoinbase {
				continue
			}
			outpoint := model.Outpoint{TxID: in.TxID, Index: in.Vout}
			if _, ok := pending[outpoint]; !ok {
				continue
			}
			if err := tx.MarkUtxoSpent(ctx, outpoint, block.Height, block.Time); err != nil {
				return err
			}
			delete(pending, outpoint)
			res.spent++
		}

		for _, out := range t.Outputs {
			if _, ok := s.changeAddresses[out.Address]; !ok {
				continue
			}
			utxo := model.FederationUtxo{
				Outpoint:           model.Outpoint{TxID: t.TxID, Index: out.Index},
				Address:            out.Address,
				Amount:             out.Value,
				CreatedHeight:      block.Height,
				CreatedTime:        block.Time,
				Unspent:            true,
				LastVerifiedHeight: block.Height,
			}
			inserted, err := tx.InsertFederationUtxo(ctx, utxo)
			if err != nil {
				return err
			}
			if inserted {
				pending[utxo.Outpoint] = utxo
				res.discovered++
			}
		}
	}

	survivors := make([]model.Outpoint, 0, len(pending))
	for outpoint, utxo := range pending {
		if utxo.LastVerifiedHeight < block.Height {
			survivors = append(survivors, outpoint)
		}
	}
	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].TxID != survivors[j].TxID {
			return survivors[i].TxID < survivors[j].TxID
		}
		return survivors[i].Index < survivors[j].Index
	})
	for _, outpoint := range survivors {
		if err := tx.AdvanceUtxoVerification(ctx, outpoint, block.Height); err != nil {
			return err
		}
		res.advanced++
	}
	return nil
}
