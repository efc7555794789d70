package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/bukabox/M4tracking-sub000/internal/model"
)

var hundred = decimal.NewFromInt(100)

// MonthlyDepreciation returns the straight-line monthly depreciation for
// one capital item. Non-depreciable items and items with a period of zero
// or less depreciate at zero; the result is never negative.
func MonthlyDepreciation(item model.CapitalItem) decimal.Decimal {
	if !item.Depreciable || item.PeriodMonths <= 0 {
		return decimal.Zero
	}
	monthly := item.Amount.Sub(item.Residual).Div(decimal.NewFromInt(int64(item.PeriodMonths)))
	if monthly.IsNegative() {
		return decimal.Zero
	}
	return monthly
}

// TotalDepreciation sums monthly depreciation across all capital items.
// When no itemized capital exists it falls back to a single aggregate
// computation from the legacy amount/period/residual triple.
func TotalDepreciation(items []model.CapitalItem, legacy model.LegacyCapital) decimal.Decimal {
	if len(items) == 0 {
		return MonthlyDepreciation(model.CapitalItem{
			Amount:       legacy.Amount,
			Depreciable:  true,
			PeriodMonths: legacy.PeriodMonths,
			Residual:     legacy.Residual,
		})
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(MonthlyDepreciation(item))
	}
	return total
}

// InitialCapital sums all capital item amounts, falling back to the legacy
// aggregate amount when nothing is itemized.
func InitialCapital(items []model.CapitalItem, legacy model.LegacyCapital) decimal.Decimal {
	if len(items) == 0 {
		return legacy.Amount
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// NetProfit computes lifetime income minus lifetime expense minus total
// depreciation. Investment-kind outflows are deliberately not subtracted:
// they are capital redeployment, not expense. That is a recorded business
// rule, not an oversight.
func NetProfit(income, expense, totalDepreciation decimal.Decimal) decimal.Decimal {
	return income.Sub(expense).Sub(totalDepreciation)
}

// ROIPercent expresses net profit as a percentage of initial capital.
// Zero or negative capital yields zero rather than a division blow-up.
func ROIPercent(netProfit, initialCapital decimal.Decimal) decimal.Decimal {
	if !initialCapital.IsPositive() {
		return decimal.Zero
	}
	return netProfit.Div(initialCapital).Mul(hundred)
}

// Progress maps an ROI percentage onto a [0, 1] gauge against a target:
// min(roi, target) / target, clamped. A non-positive target reads as no
// progress.
func Progress(roiPercent, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	v := roiPercent
	if v.GreaterThan(target) {
		v = target
	}
	p := v.Div(target).InexactFloat64()
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Summary is the derived metrics triple exposed to the display layer.
type Summary struct {
	NetProfit         decimal.Decimal
	ROIPercent        decimal.Decimal
	TotalDepreciation decimal.Decimal
}

// Compute derives the metrics triple from lifetime sums and the capital
// structure. Pure; recomputed from current inputs on every pass.
func Compute(income, expense decimal.Decimal, items []model.CapitalItem, legacy model.LegacyCapital) Summary {
	dep := TotalDepreciation(items, legacy)
	net := NetProfit(income, expense, dep)
	return Summary{
		NetProfit:         net,
		ROIPercent:        ROIPercent(net, InitialCapital(items, legacy)),
		TotalDepreciation: dep,
	}
}
