package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukabox/M4tracking-sub000/internal/bus"
	"github.com/bukabox/M4tracking-sub000/internal/config"
	"github.com/bukabox/M4tracking-sub000/internal/dataset"
	"github.com/bukabox/M4tracking-sub000/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCollections() dataset.Collections {
	return dataset.Collections{
		Transactions: []model.Transaction{
			{ID: "TXN-1", Kind: model.KindIncome, Date: day(2025, 1, 5), Label: "Sale", Amount: decimal.NewFromInt(40000000), ProductID: "P1"},
			{ID: "TXN-2", Kind: model.KindExpense, Date: day(2025, 1, 8), Label: "Hosting", Amount: decimal.NewFromInt(10000000)},
			{ID: "TXN-3", Kind: model.KindInvestment, Date: day(2025, 1, 10), Label: "BTC", Amount: decimal.NewFromInt(1000000), Note: "dca batch 4"},
		},
		Holdings: []model.Holding{
			{
				Symbol:   "BTC",
				Units:    decimal.RequireFromString("0.01"),
				Invested: decimal.NewFromInt(1000000),
				Buys: []model.BuyEntry{
					{ID: "B1", Date: day(2025, 1, 10), Units: decimal.RequireFromString("0.01"), Invested: decimal.NewFromInt(1000000)},
				},
			},
		},
		Products: []model.Product{
			{ID: "P1", Name: "Widget", Enabled: true},
		},
		Capital: []model.CapitalItem{
			{ID: "C1", Name: "Gear", Amount: decimal.NewFromInt(25000000), Depreciable: true, PeriodMonths: 25, Residual: decimal.Zero},
		},
	}
}

func newTestService() *Service {
	return NewService(config.Default(), bus.New(), zerolog.Nop())
}

func TestRebuild_Summary(t *testing.T) {
	svc := newTestService()
	svc.SetCollections(testCollections())
	svc.Rebuild()

	snap, ok := svc.Snapshot()
	require.True(t, ok)

	// depreciation = 25M/25 = 1M; net = 40M - 10M - 1M; roi = 29M/25M.
	// The 1M investment transaction does not reduce net profit.
	assert.InDelta(t, 29000000, snap.Summary.NetProfit, 0.5)
	assert.InDelta(t, 116, snap.Summary.ROIPercent, 1e-9)
	assert.InDelta(t, 1000000, snap.Summary.TotalDepreciation, 0.5)
	assert.Equal(t, "Rp 29.000.000", snap.Summary.NetProfitIDR)
	assert.InDelta(t, 1.0, snap.Summary.Progress, 1e-9, "ROI above default target clamps to full gauge")
	assert.Equal(t, "USD", snap.Summary.AltCurrency)
	assert.InDelta(t, 1812.5, snap.Summary.NetProfitAlt, 1e-6, "29M IDR at the default 16000 rate")
}

func TestRebuild_MonthsAndProducts(t *testing.T) {
	svc := newTestService()
	svc.SetCollections(testCollections())
	svc.Rebuild()

	snap, _ := svc.Snapshot()
	require.Len(t, snap.Months, 1)
	assert.Equal(t, "2025-01", snap.Months[0].Key)
	assert.InDelta(t, 40000000, snap.Months[0].Income, 0.5)
	assert.Equal(t, 3, snap.Months[0].Transactions)

	require.NotEmpty(t, snap.Products)
	assert.Equal(t, "Widget", snap.Products[0].Name)
	assert.InDelta(t, 40000000, snap.Products[0].Revenue, 0.5)
}

func TestRebuild_HoldingsBackfillNote(t *testing.T) {
	svc := newTestService()
	cols := testCollections()
	svc.SetCollections(cols)
	svc.SetQuotes(map[string]decimal.Decimal{"BTC": decimal.NewFromInt(1600000000)})
	svc.Rebuild()

	snap, _ := svc.Snapshot()
	require.Len(t, snap.Holdings, 1)
	h := snap.Holdings[0]
	assert.Equal(t, "BTC", h.Symbol)
	assert.Equal(t, "0.01", h.Units)
	assert.InDelta(t, 16000000, h.Value, 0.5)

	require.Len(t, h.Buys, 1)
	assert.Equal(t, "dca batch 4", h.Buys[0].Note,
		"note recovered from the best-matching investment transaction")
}

func TestRebuild_EmptyCollectionsDegradeToZeros(t *testing.T) {
	svc := newTestService()
	svc.SetCollections(dataset.Collections{})
	svc.Rebuild()

	snap, ok := svc.Snapshot()
	require.True(t, ok)
	assert.Zero(t, snap.Summary.NetProfit)
	assert.Zero(t, snap.Summary.ROIPercent)
	assert.Empty(t, snap.Months)
	assert.Empty(t, snap.Holdings)
}

func TestTransactionsPage(t *testing.T) {
	svc := newTestService()
	svc.SetCollections(testCollections())
	svc.Rebuild()

	views, info := svc.TransactionsPage(1)
	require.Len(t, views, 3)
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 3, info.Total)

	// Date descending.
	assert.Equal(t, "TXN-3", views[0].ID)
	assert.Equal(t, "TXN-1", views[2].ID)

	// Past-end pages clamp to the last page.
	_, info = svc.TransactionsPage(50)
	assert.Equal(t, 1, info.Page)
}

func TestStaleLifecycle(t *testing.T) {
	svc := newTestService()
	svc.SetCollections(testCollections())
	assert.True(t, svc.Stale())

	svc.Rebuild()
	assert.False(t, svc.Stale())

	svc.SetTransactions(nil)
	assert.True(t, svc.Stale())
}

func TestRun_RebuildsOnChangeSignal(t *testing.T) {
	changes := bus.New()
	svc := NewService(config.Default(), changes, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	svc.SetTransactions(testCollections().Transactions)

	// Re-publish while polling in case the first signal fired before the
	// run loop subscribed.
	require.Eventually(t, func() bool {
		changes.Publish(bus.TopicTransactions)
		snap, ok := svc.Snapshot()
		return ok && !svc.Stale() && len(snap.Months) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
