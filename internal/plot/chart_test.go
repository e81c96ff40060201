package plot_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpch-bench/internal/config"
	"tpch-bench/internal/plot"
	"tpch-bench/internal/timings"
)

func renderToString(t *testing.T, entries []plot.Entry, opts plot.ChartOptions) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, plot.Render(entries, opts).Render(&sb))
	return sb.String()
}

func TestRender_LegendAndColors(t *testing.T) {
	style := plot.DefaultStyle()
	entries := plot.PrepData([]timings.Record{
		rec("duckdb", "1.2.0", 1, 0.5, false),
		rec("sqlite", "3.45.0", 1, 1.5, false),
	}, false, 2, style)

	out := renderToString(t, entries, plot.ChartOptions{Limit: 10, Style: style})

	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, "DuckDB (1.2.0)")
	assert.Contains(t, out, "SQLite (3.45.0)")
	assert.Contains(t, out, "#80B9C8")
	assert.Contains(t, out, "#003B57")
	assert.Contains(t, out, "Runtime excluding data read from disk")
	assert.Contains(t, out, "(lower is better)")
	assert.Contains(t, out, ">Q1<")
	assert.Contains(t, out, ">Q2<")
}

func TestRender_IncludeIOTitle(t *testing.T) {
	out := renderToString(t, nil, plot.ChartOptions{IncludeIO: true, Limit: 15, Style: plot.DefaultStyle()})
	assert.Contains(t, out, "Runtime including data read from disk (Parquet)")
}

func TestRender_OverLimitBarIsAnnotated(t *testing.T) {
	style := plot.DefaultStyle()
	entries := plot.PrepData([]timings.Record{
		rec("duckdb", "1.2.0", 1, 42.0, false),
	}, false, 1, style)

	out := renderToString(t, entries, plot.ChartOptions{Limit: 10, Style: style})
	assert.Contains(t, out, "duckdb took 42s")
	// The bar itself is clamped to the full plot height, never beyond.
	assert.NotContains(t, out, `height="361"`)
}

func TestGenerate_WritesPlotFile(t *testing.T) {
	cfg := &config.Settings{
		TimingsDir:         t.TempDir(),
		TimingsFile:        "timings.csv",
		PlotsDir:           t.TempDir(),
		PlotLimitWithoutIO: 10,
		PlotLimitWithIO:    15,
		PlotNQueries:       22,
		ScaleFactor:        1,
	}
	require.NoError(t, timings.Append(cfg.TimingsPath(), timings.Record{
		Solution: "duckdb", Version: "1.2.0", QueryNumber: 1,
		Duration: 0.5, ScaleFactor: 1,
	}))

	path, err := plot.Generate(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.PlotsDir, "plot_without_io.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DuckDB")

	cfg.IncludeIO = true
	path, err = plot.Generate(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.PlotsDir, "plot_with_io.html"), path)
}

func TestGenerate_MissingTimings(t *testing.T) {
	cfg := &config.Settings{
		TimingsDir:  t.TempDir(),
		TimingsFile: "timings.csv",
		PlotsDir:    t.TempDir(),
	}
	_, err := plot.Generate(cfg, "")
	require.Error(t, err)
}
