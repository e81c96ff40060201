// Package config handles benchmark configuration and environment loading.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// NumQueries is the number of canonical TPC-H queries.
const NumQueries = 22

// Settings holds the configuration for a benchmark run and for plotting.
type Settings struct {
	DatasetDir  string  // directory with one Parquet file per relation
	AnswersDir  string  // directory with q{n}.out reference answers
	TimingsDir  string  // directory for the timings CSV log
	TimingsFile string  // timings CSV file name
	PlotsDir    string  // directory for generated plot HTML files
	ScaleFactor float64 // dataset scale factor, recorded in the timings log

	IncludeIO    bool // measure queries including the Parquet read
	CheckResults bool // verify every result against the answer set
	OrderedCheck bool // compare rows in order; false sorts both sides first

	// Plot settings
	PlotLimitWithIO    int // y-axis cap in seconds for include-IO plots
	PlotLimitWithoutIO int // y-axis cap in seconds for exclude-IO plots
	PlotNQueries       int // highest query number shown in the plot

	LogLevel string // log level: debug, info, warn, error (default "info")

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (s *Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TimingsPath returns the full path of the timings CSV log.
func (s *Settings) TimingsPath() string {
	return filepath.Join(s.TimingsDir, s.TimingsFile)
}

// PlotLimit returns the y-axis cap matching the include-IO mode.
func (s *Settings) PlotLimit() int {
	if s.IncludeIO {
		return s.PlotLimitWithIO
	}
	return s.PlotLimitWithoutIO
}

// TablePath returns the path of one relation's Parquet file.
func (s *Settings) TablePath(table string) string {
	return filepath.Join(s.DatasetDir, table+".parquet")
}

// LoadFromEnv loads benchmark settings from environment variables,
// applying defaults for everything left unset.
func LoadFromEnv() (*Settings, error) {
	cfg := &Settings{
		DatasetDir:   os.Getenv("TPCH_DATASET_DIR"),
		AnswersDir:   os.Getenv("TPCH_ANSWERS_DIR"),
		TimingsDir:   os.Getenv("TPCH_TIMINGS_DIR"),
		TimingsFile:  os.Getenv("TPCH_TIMINGS_FILE"),
		PlotsDir:     os.Getenv("TPCH_PLOTS_DIR"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		IncludeIO:    parseBoolEnvDefault("INCLUDE_IO", false),
		CheckResults: parseBoolEnvDefault("CHECK_RESULTS", true),
		OrderedCheck: parseBoolEnvDefault("ORDERED_CHECK", true),
	}

	if v := os.Getenv("SCALE_FACTOR"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SCALE_FACTOR %q: %w", v, err)
		}
		cfg.ScaleFactor = f
	}
	var err error
	if cfg.PlotLimitWithIO, err = parseIntEnv("PLOT_LIMIT_WITH_IO"); err != nil {
		return nil, err
	}
	if cfg.PlotLimitWithoutIO, err = parseIntEnv("PLOT_LIMIT_WITHOUT_IO"); err != nil {
		return nil, err
	}
	if cfg.PlotNQueries, err = parseIntEnv("PLOT_N_QUERIES"); err != nil {
		return nil, err
	}
	if cfg.PlotNQueries > NumQueries {
		return nil, fmt.Errorf("PLOT_N_QUERIES %d exceeds the %d canonical queries", cfg.PlotNQueries, NumQueries)
	}

	// Defaults
	if cfg.DatasetDir == "" {
		cfg.DatasetDir = "tables_scale_1"
	}
	if cfg.AnswersDir == "" {
		cfg.AnswersDir = filepath.Join("tpch-dbgen", "answers")
	}
	if cfg.TimingsDir == "" {
		cfg.TimingsDir = filepath.Join("output", "run")
	}
	if cfg.TimingsFile == "" {
		cfg.TimingsFile = "timings.csv"
	}
	if cfg.PlotsDir == "" {
		cfg.PlotsDir = filepath.Join("output", "plot")
	}
	if cfg.ScaleFactor == 0 {
		cfg.ScaleFactor = 1
	}
	if cfg.PlotLimitWithIO == 0 {
		cfg.PlotLimitWithIO = 15
	}
	if cfg.PlotLimitWithoutIO == 0 {
		cfg.PlotLimitWithoutIO = 10
	}
	if cfg.PlotNQueries == 0 {
		cfg.PlotNQueries = NumQueries
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !cfg.CheckResults {
		cfg.Warnings = append(cfg.Warnings, "CHECK_RESULTS=false: results will not be verified against the answer set")
	}

	return cfg, nil
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return defaultVal
	}
	return b
}

func parseIntEnv(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
