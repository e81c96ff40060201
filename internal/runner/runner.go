// Package runner orchestrates one benchmark invocation: per (solution,
// query) it loads the relations, times the query, prints the result,
// verifies it against the answer set, and appends a timing record.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"tpch-bench/internal/config"
	"tpch-bench/internal/engine"
	"tpch-bench/internal/result"
	"tpch-bench/internal/timings"
	"tpch-bench/internal/tpch"
)

// Runner drives benchmark runs for one process invocation. Every log line
// carries a fresh run ID so interleaved logs from repeated runs stay
// attributable.
type Runner struct {
	cfg *config.Settings
	log *slog.Logger
	out io.Writer
}

// New creates a Runner writing result tables to out.
func New(cfg *config.Settings, log *slog.Logger, out io.Writer) *Runner {
	return &Runner{
		cfg: cfg,
		log: log.With("run_id", uuid.NewString()),
		out: out,
	}
}

// RunQuery executes canonical query q on the engine, prints and verifies
// the result, and appends a timing record. Any failure aborts the run:
// a benchmark invocation is disposable and is re-executed from scratch.
func (r *Runner) RunQuery(ctx context.Context, eng engine.Engine, q int) error {
	tables, err := tpch.QueryTables(q)
	if err != nil {
		return err
	}

	// Outside include-IO mode the data load is not part of the measurement.
	if !r.cfg.IncludeIO {
		loadStart := time.Now()
		if err := eng.Register(ctx, tables); err != nil {
			return fmt.Errorf("load relations for query %d: %w", q, err)
		}
		r.log.Debug("relations loaded",
			"solution", eng.Name(), "query", q, "elapsed_s", time.Since(loadStart).Seconds())
	}

	start := time.Now()
	if r.cfg.IncludeIO {
		if err := eng.Register(ctx, tables); err != nil {
			return fmt.Errorf("load relations for query %d: %w", q, err)
		}
	}
	tbl, err := eng.Run(ctx, q)
	if err != nil {
		return err
	}
	duration := time.Since(start).Seconds()

	if err := r.printTable(tbl); err != nil {
		return fmt.Errorf("print query %d result: %w", q, err)
	}
	r.log.Info("query finished",
		"solution", eng.Name(), "version", eng.Version(), "query", q,
		"rows", len(tbl.Rows), "duration_s", duration, "include_io", r.cfg.IncludeIO)

	if r.cfg.CheckResults {
		checkStart := time.Now()
		want, err := result.ReadAnswer(r.cfg.AnswersDir, q)
		if err != nil {
			return fmt.Errorf("load answer for query %d: %w", q, err)
		}
		opts := result.VerifyOptions{Ordered: r.cfg.OrderedCheck}
		if err := result.Verify(tbl, want, opts); err != nil {
			return fmt.Errorf("verify query %d on %s: %w", q, eng.Name(), err)
		}
		r.log.Debug("result verified",
			"solution", eng.Name(), "query", q, "elapsed_s", time.Since(checkStart).Seconds())
	}

	rec := timings.Record{
		Solution:    eng.Name(),
		Version:     eng.Version(),
		QueryNumber: q,
		Duration:    duration,
		IncludeIO:   r.cfg.IncludeIO,
		ScaleFactor: r.cfg.ScaleFactor,
	}
	if err := timings.Append(r.cfg.TimingsPath(), rec); err != nil {
		return fmt.Errorf("record timing for query %d: %w", q, err)
	}
	return nil
}

// RunSolution opens the named solution and runs every query in order.
func (r *Runner) RunSolution(ctx context.Context, name string, queries []int) error {
	eng, err := engine.Open(name, r.cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	r.log.Info("benchmarking solution",
		"solution", eng.Name(), "version", eng.Version(),
		"queries", len(queries), "include_io", r.cfg.IncludeIO, "scale_factor", r.cfg.ScaleFactor)

	for _, q := range queries {
		if _, err := fmt.Fprintf(r.out, "--- %s: query %d ---\n", eng.Name(), q); err != nil {
			return err
		}
		if err := r.RunQuery(ctx, eng, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) printTable(tbl *result.Table) error {
	if f, ok := r.out.(*os.File); ok && f == os.Stdout {
		return tbl.Print()
	}
	return tbl.Fprint(r.out, 0)
}
