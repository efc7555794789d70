package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/bukabox/M4tracking-sub000/internal/model"
)

// Tolerances for amount comparison between a buy entry and a candidate
// transaction. Fiat amounts may differ by rounding at the currency unit;
// unit quantities by floating-point dust.
var (
	fiatTolerance = decimal.NewFromInt(1)
	unitTolerance = decimal.RequireFromString("0.000000001")
)

// Rule is one weighted predicate contributing to a match score.
type Rule struct {
	Name   string
	Weight int
	Match  func(buy model.BuyEntry, tx model.Transaction) bool
}

// DefaultRules returns the scoring rules used to associate a buy entry with
// the ledger transaction that likely recorded it. Weights are ordered so an
// exact invested-amount hit outweighs a same-day hit, and a populated note
// acts as a tie-break bonus favoring more informative candidates.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:   "same-date",
			Weight: 3,
			Match: func(buy model.BuyEntry, tx model.Transaction) bool {
				return tx.SameDay(buy.Date)
			},
		},
		{
			Name:   "invested-amount",
			Weight: 4,
			Match: func(buy model.BuyEntry, tx model.Transaction) bool {
				return tx.Amount.Sub(buy.Invested).Abs().LessThanOrEqual(fiatTolerance)
			},
		},
		{
			Name:   "unit-quantity",
			Weight: 2,
			Match: func(buy model.BuyEntry, tx model.Transaction) bool {
				return tx.BTCAmount.Sub(buy.Units).Abs().LessThanOrEqual(unitTolerance)
			},
		},
		{
			Name:   "has-note",
			Weight: 1,
			Match: func(_ model.BuyEntry, tx model.Transaction) bool {
				return tx.Note != ""
			},
		},
	}
}

// Matcher scores investment transactions against buy entries.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a Matcher with the given rules; nil means DefaultRules.
func NewMatcher(rules []Rule) *Matcher {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Matcher{rules: rules}
}

// Score returns the total rule weight for one buy/transaction pair.
// Non-investment transactions always score zero.
func (m *Matcher) Score(buy model.BuyEntry, tx model.Transaction) int {
	if tx.Kind != model.KindInvestment {
		return 0
	}
	score := 0
	for _, r := range m.rules {
		if r.Match(buy, tx) {
			score += r.Weight
		}
	}
	return score
}

// Match returns the best-scoring candidate for buy, or false when no
// candidate scores above zero. Ties keep the first-supplied candidate, so
// results are stable across runs. This is a best-effort heuristic, not a
// foreign key: two buys may both claim the same transaction, and a false
// positive is accepted rather than surfaced as an error.
func (m *Matcher) Match(buy model.BuyEntry, candidates []model.Transaction) (model.Transaction, bool) {
	best := -1
	bestScore := 0
	for i, tx := range candidates {
		if s := m.Score(buy, tx); s > bestScore {
			best = i
			bestScore = s
		}
	}
	if best < 0 {
		return model.Transaction{}, false
	}
	return candidates[best], true
}

// DisplayNote recovers a human-readable note for a buy entry: the matched
// transaction's note, else the buy's own note, else "".
func (m *Matcher) DisplayNote(buy model.BuyEntry, candidates []model.Transaction) string {
	if tx, ok := m.Match(buy, candidates); ok && tx.Note != "" {
		return tx.Note
	}
	return buy.Note
}
