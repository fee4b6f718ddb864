package sqlite

import (
	"errors"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/ledger"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

func (s *RepositorySuite) TestWithinTxCommits() {
	s.allowMetrics()

	err := s.repo.WithinTx(s.testCtx, func(tx ledger.Tx) error {
		inserted, err := tx.InsertPegEvent(s.testCtx, model.PegEvent{SideHeight: 100, Amount: 5, SideTxID: "a"})
		if err != nil {
			return err
		}
		s.True(inserted)
		return tx.SetProgress(s.testCtx, model.ProgressSideChainHeight, 100)
	})
	s.Require().NoError(err)

	s.Equal(uint64(1), s.countRows("peg_events"))
	got, err := s.repo.Progress(s.testCtx, model.ProgressSideChainHeight)
	s.Require().NoError(err)
	s.Equal(uint64(100), got)
}

func (s *RepositorySuite) TestWithinTxRollsBackOnError() {
	s.allowMetrics()
	s.Require().NoError(s.repo.EnsureProgress(s.testCtx, model.ProgressSideChainHeight, 99))

	fault := errors.New("fault")
	err := s.repo.WithinTx(s.testCtx, func(tx ledger.Tx) error {
		if _, err := tx.InsertPegEvent(s.testCtx, model.PegEvent{SideHeight: 100, Amount: 5, SideTxID: "a"}); err != nil {
			return err
		}
		if _, err := tx.InsertFederationUtxo(s.testCtx, newUtxo("T1", 0, "A", 5, 900, 899)); err != nil {
			return err
		}
		if err := tx.SetProgress(s.testCtx, model.ProgressSideChainHeight, 100); err != nil {
			return err
		}
		return fault
	})
	s.Require().ErrorIs(err, fault)

	s.Equal(uint64(0), s.countRows("peg_events"))
	s.Equal(uint64(0), s.countRows("federation_utxos"))
	got, err := s.repo.Progress(s.testCtx, model.ProgressSideChainHeight)
	s.Require().NoError(err)
	s.Equal(uint64(99), got)
}

func (s *RepositorySuite) TestWithinTxRollsBackOnPanic() {
	s.allowMetrics()

	s.Require().Panics(func() {
		_ = s.repo.WithinTx(s.testCtx, func(tx ledger.Tx) error {
			if _, err := tx.InsertPegEvent(s.testCtx, model.PegEvent{SideHeight: 100, Amount: 5, SideTxID: "a"}); err != nil {
				return err
			}
			panic("boom")
		})
	})

	s.Equal(uint64(0), s.countRows("peg_events"))
	// the single connection must be usable again after the panic
	s.Require().NoError(s.repo.EnsureProgress(s.testCtx, model.ProgressSideChainHeight, 1))
}

func (s *RepositorySuite) TestWithinTxObservesError() {
	fault := errors.New("fault")
	s.metrics.EXPECT().Observe("within_tx", fault, gomock.Any()).Times(1)

	s.Require().ErrorIs(s.repo.WithinTx(s.testCtx, func(ledger.Tx) error { return fault }), fault)
}
