// Package scanner walks the side chain and records peg events and the federation
// utxos created by peg-ins.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/clock"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/ledger"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	// NativeAsset is the side-chain asset id whose burns count as peg-outs.
	NativeAsset string
	// Workers bounds concurrent base-chain lookups for the peg-ins of one block.
	Workers      int
	PollInterval time.Duration
}

// Service is the peg scanner. Run is safe to trigger repeatedly: a call made
// while another is in flight returns immediately.
type Service struct {
	logger       *zap.Logger
	side         SideChain
	base         BaseChain
	repo         Repository
	metrics      Metrics
	nativeAsset  string
	workers      int
	pollInterval time.Duration
	blockSignal  <-chan struct{}
	wait         func(ctx context.Context, signal <-chan struct{}, d time.Duration) error
	running      atomic.Bool
}

// NewService builds a peg scanner. blockSignal may be nil, in which case Loop polls.
func NewService(
	cfg Config,
	side SideChain,
	base BaseChain,
	repo Repository,
	metrics Metrics,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("peg scanner metrics is required")
	}
	if cfg.NativeAsset == "" {
		return nil, errors.New("native asset id is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	return &Service{
		logger:       logger.With(zap.String("chain", string(model.SideChain))),
		side:         side,
		base:         base,
		repo:         repo,
		metrics:      metrics,
		nativeAsset:  cfg.NativeAsset,
		workers:      cfg.Workers,
		pollInterval: cfg.PollInterval,
		blockSignal:  blockSignal,
		wait:         clock.Wait,
	}, nil
}

// Loop runs the scanner on every block signal or poll tick until ctx is canceled.
// A failed run is logged; the next trigger resumes from the committed cursor.
func (s *Service) Loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("peg scan failed", zap.Error(err))
		}
		if err := s.wait(ctx, s.blockSignal, s.pollInterval); err != nil {
			return err
		}
	}
}

// Run scans every side-chain height above the committed cursor up to the tip
// observed at call time, committing each height in its own transaction.
func (s *Service) Run(ctx context.Context) (err error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug("peg scan already running")
		return nil
	}
	defer s.running.Store(false)

	started := time.Now()
	defer func() {
		s.metrics.ObserveRun(err, started)
	}()

	logger := s.logger.With(zap.String("run_id", uuid.NewString()))

	tip, err := s.side.TipHeight(ctx)
	if err != nil {
		return fmt.Errorf("side chain tip: %w", err)
	}
	cursor, err := s.repo.Progress(ctx, model.ProgressSideChainHeight)
	if err != nil {
		return fmt.Errorf("side chain cursor: %w", err)
	}
	if cursor >= tip {
		logger.Debug("side chain up to date", zap.Uint64("height", cursor))
		return nil
	}

	logger.Info("scanning side chain", zap.Uint64("from", cursor+1), zap.Uint64("to", tip))
	for height := cursor + 1; height <= tip; height++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = s.scanHeight(ctx, logger, height); err != nil {
			logger.Error("scan height failed", zap.Uint64("height", height), zap.Error(err))
			return fmt.Errorf("scan side chain height %d: %w", height, err)
		}
	}
	logger.Info("side chain scanned", zap.Uint64("height", tip))
	return nil
}

func (s *Service) scanHeight(ctx context.Context, logger *zap.Logger, height uint64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveHeight(err, height, started)
	}()

	block, err := s.side.BlockByHeight(ctx, height)
	if err != nil {
		return fmt.Errorf("fetch block: %w", err)
	}
	pegs, err := s.collectPegs(ctx, block)
	if err != nil {
		return err
	}

	var recorded []string
	err = s.repo.WithinTx(ctx, func(tx ledger.Tx) error {
		recorded = recorded[:0]
		for _, p := range pegs.pegIns {
			inserted, err := s.recordPegIn(ctx, tx, p)
			if err != nil {
				return err
			}
			if inserted {
				recorded = append(recorded, kindPegIn)
			}
		}
		for _, p := range pegs.pegOuts {
			inserted, err := tx.InsertPegEvent(ctx, p.event)
			if err != nil {
				return err
			}
			if inserted {
				kind := kindPegOut
				if p.burn {
					kind = kindBurn
				}
				recorded = append(recorded, kind)
			}
		}
		return tx.SetProgress(ctx, model.ProgressSideChainHeight, height)
	})
	if err != nil {
		return err
	}

	for _, kind := range recorded {
		s.metrics.ObservePegEvent(kind)
	}
	logger.Debug("side chain height committed",
		zap.Uint64("height", height),
		zap.Int("peg_ins", len(pegs.pegIns)),
		zap.Int("peg_outs", len(pegs.pegOuts)),
		zap.Int("recorded", len(recorded)),
	)
	return nil
}

func (s *Service) recordPegIn(ctx context.Context, tx ledger.Tx, p pegIn) (bool, error) {
	inserted, err := tx.InsertPegEvent(ctx, p.event)
	if err != nil || !inserted {
		return false, err
	}
	if p.utxo.Address != "" {
		if err := tx.InsertFederationAddress(ctx, p.utxo.Address, p.utxo.CreatedHeight); err != nil {
			return false, err
		}
	}
	if _, err := tx.InsertFederationUtxo(ctx, p.utxo); err != nil {
		return false, err
	}
	current, err := tx.Progress(ctx, model.ProgressBaseChainAudit)
	if err != nil {
		return false, err
	}
	if _, err := tx.RecomputeAuditCursor(ctx, current); err != nil {
		return false, err
	}
	return true, nil
}
