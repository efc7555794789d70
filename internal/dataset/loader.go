package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bukabox/M4tracking-sub000/internal/model"
)

// Collection file names inside the data directory. Each mirrors one
// backend fetch; they are retrieved independently, so any subset may be
// present or stale relative to the others.
const (
	TransactionsFile = "transactions.json"
	HoldingsFile     = "holdings.json"
	ProductsFile     = "products.json"
	CapitalFile      = "capital.json"
)

// Collections is one snapshot of all four backend collections.
type Collections struct {
	Transactions []model.Transaction
	Holdings     []model.Holding
	Products     []model.Product
	Capital      []model.CapitalItem
	Legacy       model.LegacyCapital
}

// Loader reads collection snapshots from a directory.
type Loader struct {
	dir string
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads and decodes all four collections. A missing file is an empty
// collection, matching how upstream fetch failures degrade. Decode errors
// leave that collection empty and are joined into the returned error so the
// caller can log them; the Collections value is always usable.
func (l *Loader) Load() (Collections, error) {
	var cols Collections
	var errs []error

	if data, err := l.read(TransactionsFile); err != nil {
		errs = append(errs, err)
	} else if data != nil {
		cols.Transactions, err = DecodeTransactions(data)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if data, err := l.read(HoldingsFile); err != nil {
		errs = append(errs, err)
	} else if data != nil {
		cols.Holdings, err = DecodeHoldings(data)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if data, err := l.read(ProductsFile); err != nil {
		errs = append(errs, err)
	} else if data != nil {
		cols.Products, err = DecodeProducts(data)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if data, err := l.read(CapitalFile); err != nil {
		errs = append(errs, err)
	} else if data != nil {
		cols.Capital, cols.Legacy, err = DecodeCapital(data)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return cols, errors.Join(errs...)
}

// read returns the file contents, or nil when the file does not exist.
func (l *Loader) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}
