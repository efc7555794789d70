// Package dataset decodes the backend's JSON collections into model types.
// Decoding is one tolerant pass per entity kind: numeric fields go through
// the normalizer, field aliases from older backend versions are accepted,
// and malformed elements are skipped rather than failing the collection.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bukabox/M4tracking-sub000/internal/model"
	"github.com/bukabox/M4tracking-sub000/internal/numeric"
)

// dateFormats are the date layouts the backend has been seen to emit.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// DecodeTransactions parses the transactions collection. Elements that are
// not objects, carry an unknown kind, or have an unparseable date are
// skipped. Only top-level malformed JSON is an error.
func DecodeTransactions(data []byte) ([]model.Transaction, error) {
	elements, err := decodeArray(data)
	if err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}

	var txs []model.Transaction
	for _, obj := range elements {
		kind := model.Kind(stringField(obj, "type", "kind"))
		if !kind.Valid() {
			continue
		}
		date, ok := dateField(obj, "date")
		if !ok {
			continue
		}
		txs = append(txs, model.Transaction{
			ID:        stringField(obj, "id"),
			Kind:      kind,
			Date:      date,
			Label:     stringField(obj, "label", "category"),
			Amount:    numeric.NormalizeOrZero(obj["amount"]),
			Note:      stringField(obj, "note"),
			ProductID: stringField(obj, "product_id"),
			PriceIDR:  numeric.NormalizeOrZero(obj["price_idr"]),
			BTCAmount: numeric.NormalizeOrZero(obj["btc_amount"]),
		})
	}
	return txs, nil
}

// DecodeHoldings parses the holdings collection. A holding without buys is
// a pre-aggregated position; when the aggregate unit or invested fields are
// absent they are reconstructed by summing the buys.
func DecodeHoldings(data []byte) ([]model.Holding, error) {
	elements, err := decodeArray(data)
	if err != nil {
		return nil, fmt.Errorf("decoding holdings: %w", err)
	}

	var holdings []model.Holding
	for _, obj := range elements {
		symbol := stringField(obj, "symbol", "name")
		if symbol == "" {
			continue
		}
		h := model.Holding{
			Symbol:   symbol,
			Units:    numeric.NormalizeOrZero(obj["amount"]),
			Invested: numeric.NormalizeOrZero(obj["total_invested_idr"]),
		}
		if raw, ok := obj["buys"].([]any); ok {
			h.Buys = decodeBuys(raw)
		}
		if h.Units.IsZero() {
			for _, b := range h.Buys {
				h.Units = h.Units.Add(b.Units)
			}
		}
		if h.Invested.IsZero() {
			for _, b := range h.Buys {
				h.Invested = h.Invested.Add(b.Invested)
			}
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

func decodeBuys(raw []any) []model.BuyEntry {
	var buys []model.BuyEntry
	for _, el := range raw {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		date, _ := dateField(obj, "date")
		buys = append(buys, model.BuyEntry{
			ID:       stringField(obj, "id"),
			Date:     date,
			Units:    numeric.NormalizeOrZero(obj["amount"]),
			Invested: numeric.NormalizeOrZero(obj["invested_idr"]),
			Price:    numeric.NormalizeOrZero(obj["price_idr"]),
			Note:     stringField(obj, "note"),
		})
	}
	return buys
}

// DecodeProducts parses the product catalog. The enabled flag defaults to
// true when absent so new catalog entries render until explicitly disabled.
func DecodeProducts(data []byte) ([]model.Product, error) {
	elements, err := decodeArray(data)
	if err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	var products []model.Product
	for _, obj := range elements {
		id := stringField(obj, "product_id", "id")
		name := stringField(obj, "name", "label")
		if id == "" && name == "" {
			continue
		}
		enabled := true
		if raw, present := obj["enabled"]; present {
			enabled = boolField(raw)
		}
		products = append(products, model.Product{
			ID:          id,
			Name:        name,
			Category:    stringField(obj, "category"),
			Stream:      stringField(obj, "stream"),
			Enabled:     enabled,
			ThumbnailID: stringField(obj, "url_id"),
		})
	}
	return products, nil
}

// DecodeCapital parses the capital collection, which is either an array of
// itemized capital items or the single legacy aggregate triple
// {initialModal, periode, residu}. An item without an explicit depreciable
// flag is treated as depreciable when it carries a positive period.
func DecodeCapital(data []byte) ([]model.CapitalItem, model.LegacyCapital, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		obj, err := decodeObject(trimmed)
		if err != nil {
			return nil, model.LegacyCapital{}, fmt.Errorf("decoding capital: %w", err)
		}
		legacy := model.LegacyCapital{
			Amount:       numeric.NormalizeOrZero(obj["initialModal"]),
			PeriodMonths: intField(obj, "periode"),
			Residual:     numeric.NormalizeOrZero(obj["residu"]),
		}
		return nil, legacy, nil
	}

	elements, err := decodeArray(trimmed)
	if err != nil {
		return nil, model.LegacyCapital{}, fmt.Errorf("decoding capital: %w", err)
	}

	var items []model.CapitalItem
	for _, obj := range elements {
		period := intField(obj, "periode", "period_months")
		depreciable := period > 0
		if raw, present := obj["depreciable"]; present {
			depreciable = boolField(raw)
		}
		items = append(items, model.CapitalItem{
			ID:           stringField(obj, "id"),
			Name:         stringField(obj, "name"),
			Amount:       numeric.NormalizeOrZero(obj["amount"]),
			Depreciable:  depreciable,
			PeriodMonths: period,
			Residual:     numeric.NormalizeOrZero(obj["residu"]),
		})
	}
	return items, model.LegacyCapital{}, nil
}

// decodeArray unmarshals a JSON array keeping numbers as json.Number so the
// normalizer sees exact digits. Non-object elements are dropped here.
func decodeArray(data []byte) ([]map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	var objs []map[string]any
	for _, el := range raw {
		if obj, ok := el.(map[string]any); ok {
			objs = append(objs, obj)
		}
	}
	return objs, nil
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// stringField returns the first present key coerced to a string.
func stringField(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func dateField(obj map[string]any, key string) (time.Time, bool) {
	s, ok := obj[key].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func intField(obj map[string]any, keys ...string) int {
	for _, k := range keys {
		if raw, present := obj[k]; present {
			if d, ok := numeric.Normalize(raw); ok {
				return int(d.IntPart())
			}
		}
	}
	return 0
}

func boolField(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x == "true" || x == "1"
	case json.Number:
		return x.String() != "0"
	default:
		return false
	}
}
