package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bukabox/M4tracking-sub000/internal/aggregate"
	"github.com/bukabox/M4tracking-sub000/internal/metrics"
	"github.com/bukabox/M4tracking-sub000/internal/model"
	"github.com/bukabox/M4tracking-sub000/internal/numeric"
)

// Snapshot is one computed pass of dashboard data. Raw values are float64
// for chart consumption; the *IDR fields carry the formatted display string.
type Snapshot struct {
	Summary     SummaryView   `json:"summary"`
	Months      []MonthView   `json:"months"`
	Products    []ProductView `json:"products"`
	Holdings    []HoldingView `json:"holdings"`
	LastRebuild time.Time     `json:"lastRebuild"`

	// full date-ordered ledger backing TransactionsPage
	transactions []model.Transaction
}

// SummaryView is the derived metrics triple plus the ROI progress gauge.
type SummaryView struct {
	LifetimeIncome       float64 `json:"lifetimeIncome"`
	LifetimeExpense      float64 `json:"lifetimeExpense"`
	LifetimeInvestment   float64 `json:"lifetimeInvestment"`
	NetProfit            float64 `json:"netProfit"`
	NetProfitIDR         string  `json:"netProfitIdr"`
	ROIPercent           float64 `json:"roiPercent"`
	TotalDepreciation    float64 `json:"totalDepreciation"`
	TotalDepreciationIDR string  `json:"totalDepreciationIdr"`
	NetProfitAlt         float64 `json:"netProfitAlt,omitempty"` // in the configured alternate currency
	AltCurrency          string  `json:"altCurrency,omitempty"`
	Progress             float64 `json:"progress"` // min(roi, target)/target in [0,1]
}

func makeSummaryView(sum metrics.Summary, sums aggregate.LifetimeSums, target decimal.Decimal, conv numeric.Converter, altCurrency string) SummaryView {
	view := SummaryView{
		LifetimeIncome:       sums.Income.InexactFloat64(),
		LifetimeExpense:      sums.Expense.InexactFloat64(),
		LifetimeInvestment:   sums.Investment.InexactFloat64(),
		NetProfit:            sum.NetProfit.InexactFloat64(),
		NetProfitIDR:         numeric.FormatIDR(sum.NetProfit),
		ROIPercent:           sum.ROIPercent.InexactFloat64(),
		TotalDepreciation:    sum.TotalDepreciation.InexactFloat64(),
		TotalDepreciationIDR: numeric.FormatIDR(sum.TotalDepreciation),
		Progress:             metrics.Progress(sum.ROIPercent, target),
	}
	if altCurrency != "" && conv.Rate.IsPositive() {
		view.AltCurrency = altCurrency
		view.NetProfitAlt = conv.ToAlternate(sum.NetProfit).InexactFloat64()
	}
	return view
}

// MonthView is one calendar month's per-kind sums.
type MonthView struct {
	Key          string  `json:"key"` // YYYY-MM
	Income       float64 `json:"income"`
	Expense      float64 `json:"expense"`
	Investment   float64 `json:"investment"`
	Transactions int     `json:"transactions"`
}

func makeMonthViews(buckets []aggregate.MonthBucket) []MonthView {
	views := make([]MonthView, 0, len(buckets))
	for _, b := range buckets {
		views = append(views, MonthView{
			Key:          b.Key,
			Income:       b.Income.InexactFloat64(),
			Expense:      b.Expense.InexactFloat64(),
			Investment:   b.Investment.InexactFloat64(),
			Transactions: len(b.Transactions),
		})
	}
	return views
}

// ProductView is one row of the revenue-per-product breakdown.
type ProductView struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	RevenueIDR string  `json:"revenueIdr"`
	Count      int     `json:"count"`
}

func makeProductViews(rows []aggregate.ProductRevenue) []ProductView {
	views := make([]ProductView, 0, len(rows))
	for _, r := range rows {
		views = append(views, ProductView{
			Key:        r.Key,
			Name:       r.Name,
			Revenue:    r.Revenue.InexactFloat64(),
			RevenueIDR: numeric.FormatIDR(r.Revenue),
			Count:      r.Count,
		})
	}
	return views
}

// HoldingView is one asset position with its annotated buy lots.
type HoldingView struct {
	Symbol       string    `json:"symbol"`
	Units        string    `json:"units"`
	Invested     float64   `json:"invested"`
	InvestedIDR  string    `json:"investedIdr"`
	CurrentPrice float64   `json:"currentPrice"`
	Value        float64   `json:"value"`
	ValueIDR     string    `json:"valueIdr"`
	GainLoss     float64   `json:"gainLoss"`
	Buys         []BuyView `json:"buys,omitempty"`
}

// BuyView is one buy lot; Note is backfilled from the best-matching ledger
// transaction when the lot itself has none.
type BuyView struct {
	ID       string  `json:"id,omitempty"`
	Date     string  `json:"date,omitempty"`
	Units    string  `json:"units"`
	Invested float64 `json:"invested"`
	Price    float64 `json:"price"`
	Note     string  `json:"note,omitempty"`
}

// TransactionView is one ledger row for the paginated transaction table.
type TransactionView struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Date      string  `json:"date"`
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	AmountIDR string  `json:"amountIdr"`
	Note      string  `json:"note,omitempty"`
	ProductID string  `json:"productId,omitempty"`
}

func makeTransactionView(tx model.Transaction) TransactionView {
	return TransactionView{
		ID:        tx.ID,
		Kind:      string(tx.Kind),
		Date:      formatDate(tx.Date),
		Label:     tx.Label,
		Amount:    tx.Amount.InexactFloat64(),
		AmountIDR: numeric.FormatIDR(tx.Amount),
		Note:      tx.Note,
		ProductID: tx.ProductID,
	}
}
