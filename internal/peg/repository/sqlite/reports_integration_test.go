package sqlite

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
)

func (s *RepositorySuite) seedLedger() {
	jan := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 3, 8, 0, 0, 0, time.UTC)

	s.seed(func(tx *Tx) {
		for _, e := range []model.PegEvent{
			{SideHeight: 100, SideTime: jan, Amount: 50_000_000, SideTxID: "in1", BaseAddress: "A", BaseTxID: "T1", BaseHeight: 900, BaseTime: jan, IsFinal: true},
			{SideHeight: 101, SideTime: jan, Amount: -20_000_000, SideTxID: "out1", BaseAddress: "B"},
			{SideHeight: 150, SideTime: feb, Amount: 30_000_000, SideTxID: "in2", BaseAddress: "C", BaseTxID: "T2", BaseHeight: 950, BaseTime: feb, IsFinal: true},
		} {
			_, err := tx.InsertPegEvent(s.testCtx, e)
			s.Require().NoError(err)
		}

		s.Require().NoError(tx.InsertFederationAddress(s.testCtx, "C", 950))
		s.Require().NoError(tx.InsertFederationAddress(s.testCtx, "A", 900))
		s.Require().NoError(tx.InsertFederationAddress(s.testCtx, "A", 990))

		for _, u := range []model.FederationUtxo{
			{Outpoint: model.Outpoint{TxID: "T1"}, Address: "A", Amount: 50_000_000, CreatedHeight: 900, CreatedTime: jan, Unspent: true, LastVerifiedHeight: 899},
			{Outpoint: model.Outpoint{TxID: "T2"}, Address: "C", Amount: 30_000_000, CreatedHeight: 950, CreatedTime: feb, Unspent: true, LastVerifiedHeight: 949},
			{Outpoint: model.Outpoint{TxID: "T3"}, Address: "A", Amount: 5_000_000, CreatedHeight: 960, CreatedTime: feb, Unspent: true, LastVerifiedHeight: 960},
			{Outpoint: model.Outpoint{TxID: "T4"}, Address: "C", Amount: 70_000_000, CreatedHeight: 960, CreatedTime: feb, Unspent: true, LastVerifiedHeight: 960},
		} {
			_, err := tx.InsertFederationUtxo(s.testCtx, u)
			s.Require().NoError(err)
		}
		s.Require().NoError(tx.MarkUtxoSpent(s.testCtx, model.Outpoint{TxID: "T4"}, 961, feb))
	})
}

func (s *RepositorySuite) TestBalances() {
	s.allowMetrics()
	s.seedLedger()

	supply, err := s.repo.PegBalance(s.testCtx)
	s.Require().NoError(err)
	s.Equal(int64(60_000_000), supply)

	reserves, err := s.repo.ReserveBalance(s.testCtx)
	s.Require().NoError(err)
	s.Equal(int64(85_000_000), reserves)
}

func (s *RepositorySuite) TestBalancesOnEmptyLedger() {
	s.metrics.EXPECT().Observe("peg_balance", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("reserve_balance", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("has_peg_ins", gomock.Nil(), gomock.Any()).Times(1)

	supply, err := s.repo.PegBalance(s.testCtx)
	s.Require().NoError(err)
	s.Zero(supply)

	reserves, err := s.repo.ReserveBalance(s.testCtx)
	s.Require().NoError(err)
	s.Zero(reserves)

	found, err := s.repo.HasPegIns(s.testCtx)
	s.Require().NoError(err)
	s.False(found)
}

func (s *RepositorySuite) TestHasPegIns() {
	s.allowMetrics()

	s.seed(func(tx *Tx) {
		_, err := tx.InsertPegEvent(s.testCtx, model.PegEvent{SideHeight: 1, Amount: -5, SideTxID: "out"})
		s.Require().NoError(err)
	})
	found, err := s.repo.HasPegIns(s.testCtx)
	s.Require().NoError(err)
	s.False(found, "peg-outs alone do not enable the audit")

	s.seedLedger()
	found, err = s.repo.HasPegIns(s.testCtx)
	s.Require().NoError(err)
	s.True(found)
}

func (s *RepositorySuite) TestMonthlySeries() {
	s.allowMetrics()
	s.seedLedger()

	pegs, err := s.repo.PegsByMonth(s.testCtx)
	s.Require().NoError(err)
	s.Equal([]model.MonthlyAmount{
		{Date: "2024-01-01", Amount: 30_000_000},
		{Date: "2024-02-01", Amount: 30_000_000},
	}, pegs)

	reserves, err := s.repo.ReservesByMonth(s.testCtx)
	s.Require().NoError(err)
	s.Equal([]model.MonthlyAmount{
		{Date: "2024-01-01", Amount: 50_000_000},
		{Date: "2024-02-01", Amount: 35_000_000},
	}, reserves)
}

func (s *RepositorySuite) TestTopAddresses() {
	s.allowMetrics()
	s.seedLedger()

	top, err := s.repo.TopAddresses(s.testCtx)
	s.Require().NoError(err)
	s.Equal([]model.AddressBalance{
		{Address: "A", Balance: 55_000_000},
		{Address: "C", Balance: 30_000_000},
	}, top)
}

func (s *RepositorySuite) TestFederationAddresses() {
	s.allowMetrics()
	s.seedLedger()

	addresses, err := s.repo.FederationAddresses(s.testCtx)
	s.Require().NoError(err)
	s.Equal([]string{"A", "C"}, addresses)
}

func (s *RepositorySuite) TestUnspentFederationUtxosNewestFirst() {
	s.allowMetrics()
	s.seedLedger()

	utxos, err := s.repo.UnspentFederationUtxos(s.testCtx)
	s.Require().NoError(err)
	s.Require().Len(utxos, 3)
	s.Equal("T2", utxos[0].TxID)
	s.Equal("T3", utxos[1].TxID)
	s.Equal("T1", utxos[2].TxID)
}

func (s *RepositorySuite) TestPegEventsPaging() {
	s.allowMetrics()
	s.seedLedger()

	page, err := s.repo.PegEvents(s.testCtx, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("in2", page[0].SideTxID)
	s.Equal("out1", page[1].SideTxID)
	s.False(page[1].IsFinal)
	s.True(page[1].BaseTime.IsZero())

	page, err = s.repo.PegEvents(s.testCtx, 2, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("in1", page[0].SideTxID)
	s.Equal(uint64(900), page[0].BaseHeight)
	s.True(page[0].IsFinal)
}
