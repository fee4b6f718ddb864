// Package auditor walks the base chain and keeps the federation utxo set verified.
package auditor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/clock"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	// ChangeAddresses are federation addresses whose new outputs are tracked as reserves.
	ChangeAddresses []string
	// ConfirmationOffset keeps the audit this many blocks behind the base-chain tip.
	// Zero selects the default of 1; the audit never runs at the tip itself.
	ConfirmationOffset uint64
	// FastPathWindow is the distance from the confirmed tip within which
	// candidates are checked with a single existence query instead of a block scan.
	// Zero selects the default of 150; the fast path cannot be turned off.
	FastPathWindow uint64
	// Workers bounds concurrent existence checks on the fast path.
	Workers      int
	PollInterval time.Duration
}

// Service is the federation audit engine. Run is safe to trigger repeatedly:
// a call made while another is in flight returns immediately.
type Service struct {
	logger             *zap.Logger
	base               BaseChain
	repo               Repository
	metrics            Metrics
	changeAddresses    map[string]struct{}
	confirmationOffset uint64
	fastPathWindow     uint64
	workers            int
	pollInterval       time.Duration
	blockSignal        <-chan struct{}
	wait               func(ctx context.Context, signal <-chan struct{}, d time.Duration) error
	running            atomic.Bool
}

// NewService builds an audit engine. Zero ConfirmationOffset and FastPathWindow
// fall back to 1 block and 150 blocks.
func NewService(
	cfg Config,
	base BaseChain,
	repo Repository,
	metrics Metrics,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("federation auditor metrics is required")
	}
	if cfg.ConfirmationOffset == 0 {
		cfg.ConfirmationOffset = defaultConfirmationOffset
	}
	if cfg.FastPathWindow == 0 {
		cfg.FastPathWindow = defaultFastPathWindow
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	changeAddresses := make(map[string]struct{}, len(cfg.ChangeAddresses))
	for _, address := range cfg.ChangeAddresses {
		if address != "" {
			changeAddresses[address] = struct{}{}
		}
	}

	return &Service{
		logger:             logger.With(zap.String("chain", string(model.BaseChain))),
		base:               base,
		repo:               repo,
		metrics:            metrics,
		changeAddresses:    changeAddresses,
		confirmationOffset: cfg.ConfirmationOffset,
		fastPathWindow:     cfg.FastPathWindow,
		workers:            cfg.Workers,
		pollInterval:       cfg.PollInterval,
		blockSignal:        blockSignal,
		wait:               clock.Wait,
	}, nil
}

// Loop runs the audit on every block signal or poll tick until ctx is canceled.
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
			s.logger.Error("federation audit failed", zap.Error(err))
		}
		if err := s.wait(ctx, s.blockSignal, s.pollInterval); err != nil {
			return err
		}
	}
}

// Run audits base-chain heights above the audit cursor up to the confirmed tip.
// It does nothing until a peg-in exists or while the base node is still syncing.
func (s *Service) Run(ctx context.Context) (err error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug("federation audit already running")
		return nil
	}
	defer s.running.Store(false)

	started := time.Now()
	defer func() {
		s.metrics.ObserveRun(err, started)
	}()

	logger := s.logger.With(zap.String("run_id", uuid.NewString()))

	confirmedTip, ready, err := s.confirmedTip(ctx, logger)
	if err != nil || !ready {
		return err
	}

	for {
		if err = ctx.Err(); err != nil {
			return err
		}
		cursor, err := s.repo.Progress(ctx, model.ProgressBaseChainAudit)
		if err != nil {
			return fmt.Errorf("audit cursor: %w", err)
		}
		height := cursor + 1
		if height > confirmedTip {
			logger.Debug("federation audit up to date", zap.Uint64("height", cursor), zap.Uint64("confirmed_tip", confirmedTip))
			return nil
		}
		if err = s.auditHeight(ctx, logger, height, confirmedTip); err != nil {
			logger.Error("audit height failed", zap.Uint64("height", height), zap.Error(err))
			return fmt.Errorf("audit base chain height %d: %w", height, err)
		}
	}
}

// confirmedTip reports the highest height the audit may reach, or ready=false
// when the audit has nothing to do yet.
func (s *Service) confirmedTip(ctx context.Context, logger *zap.Logger) (uint64, bool, error) {
	hasPegIns, err := s.repo.HasPegIns(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("check peg-ins: %w", err)
	}
	if !hasPegIns {
		logger.Debug("no peg-ins recorded yet; skipping audit")
		return 0, false, nil
	}

	status, err := s.base.SyncStatus(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("base chain sync status: %w", err)
	}
	if status.Lag() > maxSyncLag {
		logger.Debug("base chain node still syncing; skipping audit",
			zap.Uint64("blocks", status.Blocks),
			zap.Uint64("headers", status.Headers),
		)
		return 0, false, nil
	}

	tip, err := s.base.TipHeight(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("base chain tip: %w", err)
	}
	if tip < s.confirmationOffset {
		return 0, false, nil
	}
	return tip - s.confirmationOffset, true, nil
}
