package catalog

import (
	"strings"

	"github.com/bukabox/M4tracking-sub000/internal/model"
)

// NormalizeName folds a product or label name to its grouping key:
// trimmed, case-folded. Transactions without a known product reference are
// grouped by this key applied to their own label text.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Service provides in-memory lookup over the product catalog.
type Service struct {
	products []model.Product
	byID     map[string]model.Product
}

// NewService creates a Service from a slice of products. Later entries with
// a duplicate ID win, matching backend replace-on-update behavior.
func NewService(products []model.Product) *Service {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Service{products: products, byID: byID}
}

// All returns all catalog entries in their original order.
func (s *Service) All() []model.Product {
	return s.products
}

// Get returns a product by ID.
func (s *Service) Get(id string) (model.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Exists reports whether a product ID is in the catalog.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// NormalizedName returns the grouping key for a product ID, or false when
// the ID is unknown.
func (s *Service) NormalizedName(id string) (string, bool) {
	p, ok := s.byID[id]
	if !ok {
		return "", false
	}
	return NormalizeName(p.Name), true
}

// Enabled returns the catalog entries flagged as enabled.
func (s *Service) Enabled() []model.Product {
	var result []model.Product
	for _, p := range s.products {
		if p.Enabled {
			result = append(result, p)
		}
	}
	return result
}
