package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bukabox/M4tracking-sub000/internal/catalog"
	"github.com/bukabox/M4tracking-sub000/internal/model"
	"github.com/bukabox/M4tracking-sub000/internal/txid"
)

// GroupByProduct groups transactions by product identity. A transaction
// with a product reference known to the catalog lands in that product's
// bucket under the catalog's normalized name, whatever its own label says;
// otherwise it falls back to its normalized label. Every catalog entry gets
// a bucket even when empty, so zero-transaction products still render.
// Transactions with neither a known product nor a usable label are skipped.
func GroupByProduct(txs []model.Transaction, cat *catalog.Service) map[string][]model.Transaction {
	buckets := make(map[string][]model.Transaction)
	for _, p := range cat.All() {
		buckets[catalog.NormalizeName(p.Name)] = nil
	}

	for _, tx := range txs {
		key := ""
		if tx.ProductID != "" {
			if name, ok := cat.NormalizedName(tx.ProductID); ok {
				key = name
			}
		}
		if key == "" {
			key = catalog.NormalizeName(tx.Label)
		}
		if key == "" {
			continue
		}
		buckets[key] = append(buckets[key], tx)
	}

	for key := range buckets {
		sortBucket(buckets[key])
	}
	return buckets
}

// sortBucket orders transactions date-descending, tie-broken by the
// numeric suffix of the ID, descending.
func sortBucket(txs []model.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txid.Less(txs[i].ID, txs[j].ID)
	})
}

// MonthBucket holds one calendar month of transactions with per-kind sums.
type MonthBucket struct {
	Key          string // YYYY-MM
	Transactions []model.Transaction
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Investment   decimal.Decimal
}

// GroupByMonth buckets transactions by YYYY-MM key, newest month first.
func GroupByMonth(txs []model.Transaction) []MonthBucket {
	byKey := make(map[string]*MonthBucket)
	for _, tx := range txs {
		key := tx.MonthKey()
		b, ok := byKey[key]
		if !ok {
			b = &MonthBucket{
				Key:        key,
				Income:     decimal.Zero,
				Expense:    decimal.Zero,
				Investment: decimal.Zero,
			}
			byKey[key] = b
		}
		b.Transactions = append(b.Transactions, tx)
		switch tx.Kind {
		case model.KindIncome:
			b.Income = b.Income.Add(tx.Amount)
		case model.KindExpense:
			b.Expense = b.Expense.Add(tx.Amount)
		case model.KindInvestment:
			b.Investment = b.Investment.Add(tx.Amount)
		}
	}

	buckets := make([]MonthBucket, 0, len(byKey))
	for _, b := range byKey {
		sortBucket(b.Transactions)
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key > buckets[j].Key
	})
	return buckets
}

// LifetimeSums returns the all-time income, expense, and investment totals.
type LifetimeSums struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Investment decimal.Decimal
}

// SumByKind computes lifetime per-kind totals over the full transaction set.
func SumByKind(txs []model.Transaction) LifetimeSums {
	sums := LifetimeSums{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Investment: decimal.Zero,
	}
	for _, tx := range txs {
		switch tx.Kind {
		case model.KindIncome:
			sums.Income = sums.Income.Add(tx.Amount)
		case model.KindExpense:
			sums.Expense = sums.Expense.Add(tx.Amount)
		case model.KindInvestment:
			sums.Investment = sums.Investment.Add(tx.Amount)
		}
	}
	return sums
}

// ProductRevenue is one row of the revenue-per-product breakdown.
type ProductRevenue struct {
	Key     string // normalized bucket key
	Name    string // catalog display name when known, else the key
	Revenue decimal.Decimal
	Count   int // number of live income transactions in the bucket
}

// RevenueByProduct sums live income-kind transactions per product bucket.
// A possibly-stale precomputed total from fallbackTotals (keyed like the
// buckets) is used only when a bucket has no live transactions at all.
// Rows are ordered by revenue descending, then key ascending.
func RevenueByProduct(txs []model.Transaction, cat *catalog.Service, fallbackTotals map[string]decimal.Decimal) []ProductRevenue {
	buckets := GroupByProduct(txs, cat)

	names := make(map[string]string, len(buckets))
	for _, p := range cat.All() {
		names[catalog.NormalizeName(p.Name)] = p.Name
	}

	rows := make([]ProductRevenue, 0, len(buckets))
	for key, bucket := range buckets {
		row := ProductRevenue{Key: key, Name: key, Revenue: decimal.Zero}
		if name, ok := names[key]; ok {
			row.Name = name
		}
		for _, tx := range bucket {
			if tx.Kind == model.KindIncome {
				row.Revenue = row.Revenue.Add(tx.Amount)
				row.Count++
			}
		}
		if len(bucket) == 0 {
			if total, ok := fallbackTotals[key]; ok {
				row.Revenue = total
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}
