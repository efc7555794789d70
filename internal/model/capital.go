package model

import "github.com/shopspring/decimal"

// CapitalItem is one item of the capital structure. Independent of the
// transaction ledger; feeds straight-line depreciation.
type CapitalItem struct {
	ID           string
	Name         string
	Amount       decimal.Decimal
	Depreciable  bool
	PeriodMonths int
	Residual     decimal.Decimal
}

// LegacyCapital is the single aggregate amount/period/residual triple used
// before capital items were itemized. It serves as a fallback when no
// itemized capital exists.
type LegacyCapital struct {
	Amount       decimal.Decimal
	PeriodMonths int
	Residual     decimal.Decimal
}
