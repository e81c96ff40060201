// Package duckdb runs the benchmark queries on an embedded DuckDB database.
// DuckDB reads the Parquet relations natively: in include-IO mode each
// relation is a view over read_parquet so the scan cost lands inside the
// measured query, otherwise relations are materialized up front.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"tpch-bench/internal/config"
	"tpch-bench/internal/engine"
	"tpch-bench/internal/result"
	"tpch-bench/internal/tpch"
)

func init() {
	engine.Register("duckdb", New)
}

// Engine is one in-memory DuckDB session.
type Engine struct {
	db      *sql.DB
	cfg     *config.Settings
	version string
	loaded  map[string]bool // Parquet paths already registered
}

// New opens an in-memory DuckDB session.
func New(cfg *config.Settings) (engine.Engine, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	var version string
	if err := db.QueryRow("SELECT version()").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("query duckdb version: %w", err)
	}
	return &Engine{
		db:      db,
		cfg:     cfg,
		version: version,
		loaded:  map[string]bool{},
	}, nil
}

func (e *Engine) Name() string    { return "duckdb" }
func (e *Engine) Version() string { return e.version }

// Register makes the given relations queryable. Each (base dir, table) pair
// is registered at most once per session.
func (e *Engine) Register(ctx context.Context, tables []string) error {
	for _, table := range tables {
		if _, err := tpch.Lookup(table); err != nil {
			return err
		}
		path := e.cfg.TablePath(table)
		if e.loaded[path] {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("dataset file for %s: %w", table, err)
		}

		kind := "TABLE"
		if e.cfg.IncludeIO {
			kind = "VIEW"
		}
		stmt := fmt.Sprintf("CREATE OR REPLACE %s %s AS SELECT * FROM read_parquet('%s')",
			kind, table, strings.ReplaceAll(path, "'", "''"))
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("register %s: %w", table, err)
		}
		e.loaded[path] = true
	}
	return nil
}

// Run executes canonical query q and materializes the result.
func (e *Engine) Run(ctx context.Context, q int) (*result.Table, error) {
	sqlText, ok := ByNumber[q]
	if !ok {
		return nil, fmt.Errorf("no such TPC-H query: %d", q)
	}
	rows, err := e.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("query %d: %w", q, err)
	}
	tbl, err := result.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query %d: %w", q, err)
	}
	return tbl, nil
}

func (e *Engine) Close() error {
	return e.db.Close()
}
