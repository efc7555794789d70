package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a ledger transaction.
type Kind string

const (
	KindIncome     Kind = "income"
	KindExpense    Kind = "expense"
	KindInvestment Kind = "investment"
)

// Valid reports whether k is one of the three known transaction kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindInvestment:
		return true
	}
	return false
}

// Transaction is a single recorded money movement. Once fetched it is
// treated as an immutable snapshot; the engine never writes it back.
type Transaction struct {
	ID        string
	Kind      Kind
	Date      time.Time // calendar date, time-of-day ignored
	Label     string    // free-text label or category
	Amount    decimal.Decimal
	Note      string
	ProductID string          // empty when not tied to a product
	PriceIDR  decimal.Decimal // unit price at purchase, crypto entries only
	BTCAmount decimal.Decimal // unit quantity, crypto entries only
}

// SameDay reports whether the transaction falls on the given calendar date.
func (t Transaction) SameDay(d time.Time) bool {
	y1, m1, d1 := t.Date.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MonthKey returns the transaction's period key in YYYY-MM form.
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
