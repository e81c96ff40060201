// Package engine defines the contract every benchmarked solution implements
// and a registry the CLI selects solutions from.
package engine

import (
	"context"
	"fmt"
	"sort"

	"tpch-bench/internal/config"
	"tpch-bench/internal/result"
)

// Engine is one benchmarked solution: an embedded query engine that loads
// TPC-H relations from Parquet and executes the canonical queries.
type Engine interface {
	// Name is the solution name recorded in the timings log (e.g. "duckdb").
	Name() string
	// Version is the engine library version recorded in the timings log.
	Version() string
	// Register makes the given relations queryable in this session. It is
	// idempotent: each (base dir, table) pair is read from storage at most
	// once per session. A missing Parquet file is a fatal error.
	Register(ctx context.Context, tables []string) error
	// Run executes canonical query q and materializes its result.
	Run(ctx context.Context, q int) (*result.Table, error)
	// Close releases the session.
	Close() error
}

// Factory opens a fresh engine session for one benchmark run.
type Factory func(cfg *config.Settings) (Engine, error)

var registry = map[string]Factory{}

// Register adds a solution to the registry. Called from engine package
// init functions; duplicate names panic.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("engine %q registered twice", name))
	}
	registry[name] = f
}

// Open creates a session for the named solution.
func Open(name string, cfg *config.Settings) (Engine, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown solution %q (have %v)", name, Names())
	}
	return f(cfg)
}

// Names lists the registered solutions in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
