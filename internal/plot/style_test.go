package plot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpch-bench/internal/plot"
)

func TestLoadStyle_EmptyPathIsDefault(t *testing.T) {
	style, err := plot.LoadStyle("")
	require.NoError(t, err)

	sol, ok := style.Lookup("duckdb")
	require.True(t, ok)
	assert.Equal(t, "DuckDB", sol.Label)
	assert.Equal(t, "#80B9C8", sol.Color)

	_, ok = style.Lookup("polars")
	assert.False(t, ok)
}

func TestLoadStyle_YAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solutions:
  - name: sqlite
    label: SQLite 3
    color: "#123456"
  - name: duckdb
    label: DuckDB
    color: "#abcdef"
`), 0o644))

	style, err := plot.LoadStyle(path)
	require.NoError(t, err)
	require.Len(t, style.Solutions, 2)
	assert.Equal(t, "sqlite", style.Solutions[0].Name)
	assert.Equal(t, "SQLite 3", style.Solutions[0].Label)
	assert.Equal(t, "#123456", style.Solutions[0].Color)
}

func TestLoadStyle_Errors(t *testing.T) {
	_, err := plot.LoadStyle(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("solutions: {not a list"), 0o644))
	_, err = plot.LoadStyle(bad)
	require.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("solutions: []"), 0o644))
	_, err = plot.LoadStyle(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no solutions")
}
