package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "tables_scale_1", cfg.DatasetDir)
	assert.Equal(t, filepath.Join("tpch-dbgen", "answers"), cfg.AnswersDir)
	assert.Equal(t, filepath.Join("output", "run", "timings.csv"), cfg.TimingsPath())
	assert.Equal(t, filepath.Join("output", "plot"), cfg.PlotsDir)
	assert.Equal(t, 1.0, cfg.ScaleFactor)
	assert.False(t, cfg.IncludeIO)
	assert.True(t, cfg.CheckResults)
	assert.True(t, cfg.OrderedCheck)
	assert.Equal(t, 22, cfg.PlotNQueries)
	assert.Equal(t, 10, cfg.PlotLimit())
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	t.Setenv("TPCH_DATASET_DIR", "/data/sf10")
	t.Setenv("TPCH_ANSWERS_DIR", "/data/answers")
	t.Setenv("TPCH_TIMINGS_DIR", "/tmp/run")
	t.Setenv("TPCH_TIMINGS_FILE", "t.csv")
	t.Setenv("SCALE_FACTOR", "10")
	t.Setenv("INCLUDE_IO", "true")
	t.Setenv("PLOT_LIMIT_WITH_IO", "30")
	t.Setenv("PLOT_N_QUERIES", "7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/data/sf10", cfg.DatasetDir)
	assert.Equal(t, filepath.Join("/data/sf10", "lineitem.parquet"), cfg.TablePath("lineitem"))
	assert.Equal(t, "/data/answers", cfg.AnswersDir)
	assert.Equal(t, filepath.Join("/tmp/run", "t.csv"), cfg.TimingsPath())
	assert.Equal(t, 10.0, cfg.ScaleFactor)
	assert.True(t, cfg.IncludeIO)
	assert.Equal(t, 30, cfg.PlotLimit())
	assert.Equal(t, 7, cfg.PlotNQueries)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadFromEnv_InvalidScaleFactor(t *testing.T) {
	t.Setenv("SCALE_FACTOR", "huge")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCALE_FACTOR")
}

func TestLoadFromEnv_TooManyQueries(t *testing.T) {
	t.Setenv("PLOT_N_QUERIES", "23")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_CheckDisabledWarns(t *testing.T) {
	t.Setenv("CHECK_RESULTS", "false")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.CheckResults)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "CHECK_RESULTS")
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		s := &Settings{LogLevel: tt.in}
		assert.Equal(t, tt.want, s.SlogLevel(), "level %q", tt.in)
	}
}
