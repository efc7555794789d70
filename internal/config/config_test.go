package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "IDR", cfg.Display.Currency)
	assert.Equal(t, 10, cfg.Dashboard.PageSize)
	assert.Equal(t, float64(100), cfg.Dashboard.ROITarget)
	assert.Equal(t, 60*time.Second, cfg.Dashboard.QuoteRefresh())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m4track.yaml")

	cfg := Default()
	cfg.Server.Listen = ":9090"
	cfg.Display.ConversionRate = 15500
	cfg.Dashboard.PageSize = 25

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", loaded.Server.Listen)
	assert.Equal(t, float64(15500), loaded.Display.ConversionRate)
	assert.Equal(t, 25, loaded.Dashboard.PageSize)
}

func TestLoad_SparseFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m4track.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listen: \":7000\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Listen)
	assert.Equal(t, "IDR", cfg.Display.Currency, "unset fields fall back to defaults")
	assert.Equal(t, 10, cfg.Dashboard.PageSize)
	assert.Equal(t, 60, cfg.Dashboard.QuoteRefreshSecs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m4track.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
