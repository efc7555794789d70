package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_MissingFilesAreEmptyCollections(t *testing.T) {
	cols, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Empty(t, cols.Transactions)
	assert.Empty(t, cols.Holdings)
	assert.Empty(t, cols.Products)
	assert.Empty(t, cols.Capital)
}

func TestLoader_LoadsAllCollections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TransactionsFile, `[{"id":"TXN-1","type":"income","date":"2025-01-10","label":"Sale","amount":100}]`)
	writeFile(t, dir, HoldingsFile, `[{"symbol":"BTC","amount":0.01}]`)
	writeFile(t, dir, ProductsFile, `[{"product_id":"P1","name":"Widget"}]`)
	writeFile(t, dir, CapitalFile, `{"initialModal": 5000000, "periode": 10, "residu": 0}`)

	cols, err := NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Len(t, cols.Transactions, 1)
	assert.Len(t, cols.Holdings, 1)
	assert.Len(t, cols.Products, 1)
	assert.Equal(t, 10, cols.Legacy.PeriodMonths)
}

func TestLoader_MalformedCollectionDegrades(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, TransactionsFile, `not json at all`)
	writeFile(t, dir, ProductsFile, `[{"product_id":"P1","name":"Widget"}]`)

	cols, err := NewLoader(dir).Load()
	assert.Error(t, err, "malformed collection is reported")
	assert.Empty(t, cols.Transactions, "malformed collection decodes to empty")
	assert.Len(t, cols.Products, 1, "other collections still load")
}
