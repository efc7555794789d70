package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuyEntry is one lot of an asset purchase, independent of the ledger.
type BuyEntry struct {
	ID       string
	Date     time.Time
	Units    decimal.Decimal // e.g. BTC amount
	Invested decimal.Decimal // fiat spent on this lot
	Price    decimal.Decimal // unit price; derived from Invested/Units when absent
	Note     string
}

// UnitPrice returns the lot's unit price, deriving it from the invested
// amount when no explicit price was recorded.
func (b BuyEntry) UnitPrice() decimal.Decimal {
	if !b.Price.IsZero() {
		return b.Price
	}
	if b.Units.IsZero() {
		return decimal.Zero
	}
	return b.Invested.Div(b.Units)
}

// Holding is the aggregate position in one asset. Buys may be empty when
// the upstream backend already pre-aggregated the position.
type Holding struct {
	Symbol   string
	Units    decimal.Decimal
	Invested decimal.Decimal
	Buys     []BuyEntry
}

// Value returns the holding's current worth at the given unit price.
func (h Holding) Value(price decimal.Decimal) decimal.Decimal {
	return h.Units.Mul(price)
}
