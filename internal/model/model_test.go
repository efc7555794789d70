package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestKindValid(t *testing.T) {
	assert.True(t, KindIncome.Valid())
	assert.True(t, KindExpense.Valid())
	assert.True(t, KindInvestment.Valid())
	assert.False(t, Kind("transfer").Valid())
	assert.False(t, Kind("").Valid())
}

func TestTransactionSameDay(t *testing.T) {
	tx := Transaction{Date: time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)}
	assert.True(t, tx.SameDay(time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, tx.SameDay(time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)))
}

func TestTransactionMonthKey(t *testing.T) {
	tx := Transaction{Date: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2025-01", tx.MonthKey())
}

func TestBuyEntryUnitPrice(t *testing.T) {
	explicit := BuyEntry{Price: decimal.NewFromInt(500)}
	assert.True(t, explicit.UnitPrice().Equal(decimal.NewFromInt(500)))

	derived := BuyEntry{
		Units:    decimal.RequireFromString("0.01"),
		Invested: decimal.NewFromInt(1000000),
	}
	assert.True(t, derived.UnitPrice().Equal(decimal.NewFromInt(100000000)))

	empty := BuyEntry{}
	assert.True(t, empty.UnitPrice().IsZero())
}

func TestHoldingValue(t *testing.T) {
	h := Holding{Units: decimal.RequireFromString("0.5")}
	assert.True(t, h.Value(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(50)))
}
