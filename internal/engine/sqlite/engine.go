// Package sqlite runs the benchmark queries on an in-memory SQLite database.
// Relations are ingested from the Parquet sources through the Arrow parquet
// reader; dates are stored as ISO-8601 text.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"tpch-bench/internal/config"
	"tpch-bench/internal/engine"
	"tpch-bench/internal/result"
	"tpch-bench/internal/tpch"
)

func init() {
	engine.Register("sqlite", New)
}

// Engine is one in-memory SQLite session.
type Engine struct {
	db      *sql.DB
	cfg     *config.Settings
	version string
	loaded  map[string]bool // Parquet paths already ingested
}

// New opens an in-memory SQLite session.
func New(cfg *config.Settings) (engine.Engine, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// The in-memory database lives on a single connection.
	db.SetMaxOpenConns(1)
	version, _, _ := sqlite3.Version()
	return &Engine{
		db:      db,
		cfg:     cfg,
		version: version,
		loaded:  map[string]bool{},
	}, nil
}

func (e *Engine) Name() string    { return "sqlite" }
func (e *Engine) Version() string { return e.version }

// Register ingests the given relations from their Parquet files. Each
// (base dir, table) pair is read from storage at most once per session.
func (e *Engine) Register(ctx context.Context, tables []string) error {
	for _, table := range tables {
		rel, err := tpch.Lookup(table)
		if err != nil {
			return err
		}
		path := e.cfg.TablePath(table)
		if e.loaded[path] {
			continue
		}
		if err := e.createTable(ctx, rel); err != nil {
			return err
		}
		if err := e.ingest(ctx, rel, path); err != nil {
			return fmt.Errorf("ingest %s: %w", table, err)
		}
		e.loaded[path] = true
	}
	return nil
}

func (e *Engine) createTable(ctx context.Context, rel tpch.Relation) error {
	cols := make([]string, len(rel.Columns))
	for i, c := range rel.Columns {
		cols[i] = c.Name + " " + sqliteType(c.Kind)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", rel.Name, strings.Join(cols, ", "))
	if _, err := e.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", rel.Name, err)
	}
	return nil
}

func sqliteType(k tpch.Kind) string {
	switch k {
	case tpch.KindInt:
		return "INTEGER"
	case tpch.KindFloat:
		return "REAL"
	default:
		// Dates are ISO-8601 text: string order is chronological order.
		return "TEXT"
	}
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
