package timings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "timings.csv")

	recs := []Record{
		{Solution: "duckdb", Version: "v1.4.0", QueryNumber: 1, Duration: 0.25, IncludeIO: false, ScaleFactor: 1},
		{Solution: "sqlite", Version: "3.46.0", QueryNumber: 7, Duration: 1.5, IncludeIO: true, ScaleFactor: 1},
	}
	for _, rec := range recs {
		require.NoError(t, Append(path, rec))
	}

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestAppend_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timings.csv")

	require.NoError(t, Append(path, Record{Solution: "duckdb", QueryNumber: 1, ScaleFactor: 1}))
	require.NoError(t, Append(path, Record{Solution: "duckdb", QueryNumber: 2, ScaleFactor: 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "solution,version,query_number,duration[s],include_io,scale_factor", lines[0])
}

func TestRead_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timings.csv")
	require.NoError(t, os.WriteFile(path, []byte("solution,version\nduckdb,v1\n"), 0o644))

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
