package numeric

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencyFormat renders decimal amounts in a fixed display style.
type CurrencyFormat struct {
	fraction  int
	formatter *money.Formatter
}

// NewCurrencyFormat builds a formatter. fraction is the number of displayed
// decimal places; dec and thou are the decimal and thousands separators;
// grapheme is the currency symbol substituted for "$" in template.
func NewCurrencyFormat(fraction int, dec, thou, grapheme, template string) *CurrencyFormat {
	return &CurrencyFormat{
		fraction:  fraction,
		formatter: money.NewFormatter(fraction, dec, thou, grapheme, template),
	}
}

// Format renders d, rounding to the formatter's fraction.
func (f *CurrencyFormat) Format(d decimal.Decimal) string {
	minor := d.Shift(int32(f.fraction)).Round(0).IntPart()
	return f.formatter.Format(minor)
}

// idrFormat is the base-currency display: thousands-grouped, no decimals.
var idrFormat = NewCurrencyFormat(0, ",", ".", "Rp", "$ 1")

// FormatIDR renders a rupiah amount like "Rp 12.000.000".
func FormatIDR(d decimal.Decimal) string {
	return idrFormat.Format(d)
}

// Converter applies a linear exchange rate for alternate-currency display.
// Rate is base-currency units per one alternate unit (e.g. IDR per USD).
type Converter struct {
	Rate decimal.Decimal
}

// ToAlternate converts a base-currency amount into the alternate currency.
// A zero or negative rate yields zero rather than dividing by zero.
func (c Converter) ToAlternate(base decimal.Decimal) decimal.Decimal {
	if !c.Rate.IsPositive() {
		return decimal.Zero
	}
	return base.Div(c.Rate)
}

// FromAlternate converts an alternate-currency amount back into base units.
func (c Converter) FromAlternate(alt decimal.Decimal) decimal.Decimal {
	return alt.Mul(c.Rate)
}

// FormatUnits renders a crypto unit quantity with up to 8 fractional
// digits, trailing zeros stripped.
func FormatUnits(d decimal.Decimal) string {
	s := d.Round(8).StringFixed(8)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
