package numeric

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// probeKeys are the object keys the normalizer probes, in priority order.
// These are the field names the backend uses for monetary values.
var probeKeys = []string{"invested_idr", "total_invested_idr", "price_idr", "amount", "value"}

// Normalize converts an arbitrary decoded JSON value into a finite number.
// The boolean is false when the value carries no usable number ("null").
// It never panics; malformed input degrades to (0, false).
//
// Strings are cleaned of currency symbols, whitespace, and locale grouping
// separators before parsing, so "Rp 12.000.000" and "5,000" both normalize.
// Objects are probed at a fixed set of domain keys first, then at every
// remaining value in sorted key order so results stay deterministic.
func Normalize(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return x, true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(x), true
	case float32:
		return Normalize(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return decimal.NewFromUint64(uint64(x)), true
	case uint64:
		return decimal.NewFromUint64(x), true
	case json.Number:
		return parseCleaned(string(x))
	case string:
		return parseCleaned(x)
	case map[string]any:
		return normalizeObject(x)
	case []any:
		for _, el := range x {
			if d, ok := Normalize(el); ok {
				return d, true
			}
		}
		return decimal.Zero, false
	default:
		return decimal.Zero, false
	}
}

// NormalizeOrZero is Normalize with unknown collapsed to zero, for callers
// that feed straight into sums.
func NormalizeOrZero(v any) decimal.Decimal {
	d, ok := Normalize(v)
	if !ok {
		return decimal.Zero
	}
	return d
}

func normalizeObject(obj map[string]any) (decimal.Decimal, bool) {
	for _, key := range probeKeys {
		if inner, present := obj[key]; present {
			return Normalize(inner)
		}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if d, ok := Normalize(obj[k]); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

// parseCleaned strips non-numeric decoration from s and parses the rest.
func parseCleaned(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '+', r == '-', r == '.', r == ',', r == 'e', r == 'E':
			b.WriteRune(r)
		}
	}
	cleaned := resolveSeparators(b.String())
	if cleaned == "" || cleaned == "+" || cleaned == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// resolveSeparators decides which of '.' and ',' (if any) is the decimal
// point and removes grouping separators. With both present the one that
// occurs last is the decimal point. With a single kind present, one
// occurrence followed by exactly three digits is grouping ("5,000"), more
// than one occurrence is always grouping ("12.000.000").
func resolveSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			s = strings.ReplaceAll(s, ",", "")
			return dropAllButLast(s, '.')
		}
		s = strings.ReplaceAll(s, ".", "")
		s = dropAllButLast(s, ',')
		return strings.ReplaceAll(s, ",", ".")
	case lastComma >= 0:
		return resolveSingle(s, ',')
	case lastDot >= 0:
		return resolveSingle(s, '.')
	default:
		return s
	}
}

func resolveSingle(s string, sep byte) string {
	if strings.Count(s, string(sep)) > 1 {
		return strings.ReplaceAll(s, string(sep), "")
	}
	idx := strings.IndexByte(s, sep)
	tail := s[idx+1:]
	if idx > 0 && len(tail) == 3 && allDigits(tail) {
		return strings.ReplaceAll(s, string(sep), "")
	}
	if sep == ',' {
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}

// dropAllButLast removes every occurrence of sep except the final one, so
// malformed strings like "1.2.3" still parse as grouping plus decimals.
func dropAllButLast(s string, sep byte) string {
	last := strings.LastIndexByte(s, sep)
	if last < 0 {
		return s
	}
	head := strings.ReplaceAll(s[:last], string(sep), "")
	return head + s[last:]
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
