package runner_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpch-bench/internal/config"
	"tpch-bench/internal/engine"
	_ "tpch-bench/internal/engine/duckdb"
	_ "tpch-bench/internal/engine/sqlite"
	"tpch-bench/internal/runner"
	"tpch-bench/internal/testutil"
	"tpch-bench/internal/timings"
)

var ctx = context.Background()

func testSettings(t *testing.T) *config.Settings {
	t.Helper()

	datasetDir := t.TempDir()
	answersDir := t.TempDir()
	testutil.WriteTinyDataset(t, datasetDir)
	testutil.WriteTinyAnswers(t, answersDir)

	return &config.Settings{
		DatasetDir:   datasetDir,
		AnswersDir:   answersDir,
		TimingsDir:   t.TempDir(),
		TimingsFile:  "timings.csv",
		ScaleFactor:  1,
		CheckResults: true,
		OrderedCheck: true,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunQuery_VerifiesAndLogsTiming(t *testing.T) {
	for _, solution := range []string{"duckdb", "sqlite"} {
		t.Run(solution, func(t *testing.T) {
			cfg := testSettings(t)
			var out strings.Builder
			r := runner.New(cfg, discardLogger(), &out)

			eng, err := engine.Open(solution, cfg)
			require.NoError(t, err)
			defer eng.Close()

			require.NoError(t, r.RunQuery(ctx, eng, 7))
			require.NoError(t, r.RunQuery(ctx, eng, 6))

			assert.Contains(t, out.String(), "FRANCE")

			recs, err := timings.Read(cfg.TimingsPath())
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, solution, recs[0].Solution)
			assert.Equal(t, 7, recs[0].QueryNumber)
			assert.Equal(t, 6, recs[1].QueryNumber)
			assert.NotEmpty(t, recs[0].Version)
			assert.GreaterOrEqual(t, recs[0].Duration, 0.0)
			assert.Equal(t, 1.0, recs[0].ScaleFactor)
		})
	}
}

func TestRunQuery_Deterministic(t *testing.T) {
	cfg := testSettings(t)
	r := runner.New(cfg, discardLogger(), io.Discard)

	eng, err := engine.Open("duckdb", cfg)
	require.NoError(t, err)
	defer eng.Close()

	// Re-running the same query twice must verify both times.
	require.NoError(t, r.RunQuery(ctx, eng, 7))
	require.NoError(t, r.RunQuery(ctx, eng, 7))
}

func TestRunQuery_VerificationFailureIsFatal(t *testing.T) {
	cfg := testSettings(t)
	writeAnswer(t, cfg.AnswersDir, "q7.out",
		"supp_nation|cust_nation|l_year|revenue\nFRANCE|GERMANY|1995|999.00\nGERMANY|FRANCE|1996|500.00\n")

	r := runner.New(cfg, discardLogger(), io.Discard)
	eng, err := engine.Open("duckdb", cfg)
	require.NoError(t, err)
	defer eng.Close()

	err = r.RunQuery(ctx, eng, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify query 7")

	// No timing is recorded for an invalid run.
	_, err = timings.Read(cfg.TimingsPath())
	require.Error(t, err)
}

func TestRunQuery_MissingAnswerIsFatal(t *testing.T) {
	cfg := testSettings(t)
	r := runner.New(cfg, discardLogger(), io.Discard)

	eng, err := engine.Open("duckdb", cfg)
	require.NoError(t, err)
	defer eng.Close()

	// Query 1 has no answer fixture.
	err = r.RunQuery(ctx, eng, 1)
	require.Error(t, err)
}

func TestRunQuery_CheckDisabledSkipsAnswers(t *testing.T) {
	cfg := testSettings(t)
	cfg.CheckResults = false
	r := runner.New(cfg, discardLogger(), io.Discard)

	eng, err := engine.Open("duckdb", cfg)
	require.NoError(t, err)
	defer eng.Close()

	require.NoError(t, r.RunQuery(ctx, eng, 1))
}

func TestRunSolution(t *testing.T) {
	cfg := testSettings(t)
	var out strings.Builder
	r := runner.New(cfg, discardLogger(), &out)

	require.NoError(t, r.RunSolution(ctx, "sqlite", []int{6, 7}))

	assert.Contains(t, out.String(), "--- sqlite: query 6 ---")
	recs, err := timings.Read(cfg.TimingsPath())
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRunSolution_UnknownSolution(t *testing.T) {
	cfg := testSettings(t)
	r := runner.New(cfg, discardLogger(), io.Discard)

	err := r.RunSolution(ctx, "polars", []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown solution")
}

func writeAnswer(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
