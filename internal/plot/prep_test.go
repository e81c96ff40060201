package plot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpch-bench/internal/plot"
	"tpch-bench/internal/timings"
)

func rec(solution, version string, q int, d float64, io bool) timings.Record {
	return timings.Record{
		Solution:    solution,
		Version:     version,
		QueryNumber: q,
		Duration:    d,
		IncludeIO:   io,
		ScaleFactor: 1,
	}
}

func TestPrepData_FillsMissingQueriesWithZero(t *testing.T) {
	recs := []timings.Record{
		rec("duckdb", "1.2.0", 1, 0.5, false),
		rec("duckdb", "1.2.0", 3, 1.5, false),
	}

	entries := plot.PrepData(recs, false, 4, plot.DefaultStyle())

	// One entry per query 1..4 for the single (solution, version).
	require.Len(t, entries, 4)
	assert.Equal(t, "Q1", entries[0].Query)
	assert.Equal(t, 0.5, entries[0].Duration)
	assert.Equal(t, "Q2", entries[1].Query)
	assert.Equal(t, 0.0, entries[1].Duration)
	assert.Equal(t, 1.5, entries[2].Duration)
	assert.Equal(t, 0.0, entries[3].Duration)
}

func TestPrepData_LastTimingWins(t *testing.T) {
	recs := []timings.Record{
		rec("duckdb", "1.2.0", 1, 9.0, false),
		rec("duckdb", "1.2.0", 1, 0.25, false),
	}

	entries := plot.PrepData(recs, false, 1, plot.DefaultStyle())

	require.Len(t, entries, 1)
	assert.Equal(t, 0.25, entries[0].Duration)
}

func TestPrepData_FiltersByIncludeIO(t *testing.T) {
	recs := []timings.Record{
		rec("duckdb", "1.2.0", 1, 1.0, true),
		rec("sqlite", "3.45.0", 1, 2.0, false),
	}

	entries := plot.PrepData(recs, true, 1, plot.DefaultStyle())

	require.Len(t, entries, 1)
	assert.Equal(t, "duckdb", entries[0].Solution)
}

func TestPrepData_SolutionsFollowLegendOrder(t *testing.T) {
	// Data arrives sqlite-first; the legend says duckdb, then sqlite.
	recs := []timings.Record{
		rec("sqlite", "3.45.0", 1, 2.0, false),
		rec("duckdb", "1.2.0", 1, 1.0, false),
	}

	entries := plot.PrepData(recs, false, 2, plot.DefaultStyle())

	require.Len(t, entries, 4)
	assert.Equal(t, "duckdb", entries[0].Solution)
	assert.Equal(t, "duckdb", entries[1].Solution)
	assert.Equal(t, "sqlite", entries[2].Solution)
	assert.Equal(t, "sqlite", entries[3].Solution)
}

func TestPrepData_DropsUnstyledSolutions(t *testing.T) {
	recs := []timings.Record{
		rec("duckdb", "1.2.0", 1, 1.0, false),
		rec("polars", "1.0.0", 1, 0.1, false),
	}

	entries := plot.PrepData(recs, false, 1, plot.DefaultStyle())

	require.Len(t, entries, 1)
	assert.Equal(t, "duckdb", entries[0].Solution)
}

func TestPrepData_SeparatesVersions(t *testing.T) {
	recs := []timings.Record{
		rec("duckdb", "1.1.0", 1, 2.0, false),
		rec("duckdb", "1.2.0", 1, 1.0, false),
	}

	entries := plot.PrepData(recs, false, 1, plot.DefaultStyle())

	require.Len(t, entries, 2)
	assert.Equal(t, "1.1.0", entries[0].Version)
	assert.Equal(t, 2.0, entries[0].Duration)
	assert.Equal(t, "1.2.0", entries[1].Version)
	assert.Equal(t, 1.0, entries[1].Duration)
}

func TestPrepData_IgnoresQueriesBeyondLimit(t *testing.T) {
	recs := []timings.Record{
		rec("duckdb", "1.2.0", 1, 1.0, false),
		rec("duckdb", "1.2.0", 22, 4.0, false),
	}

	entries := plot.PrepData(recs, false, 10, plot.DefaultStyle())

	require.Len(t, entries, 10)
	for _, e := range entries {
		assert.NotEqual(t, "Q22", e.Query)
	}
}
