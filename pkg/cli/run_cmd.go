package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tpch-bench/internal/config"
	"tpch-bench/internal/engine"
	"tpch-bench/internal/runner"
)

func newRunCmd() *cobra.Command {
	var queriesFlag string

	cmd := &cobra.Command{
		Use:   "run [solution...]",
		Short: "Run the benchmark queries",
		Long: "Runs the TPC-H queries for the named solutions, printing each result " +
			"table, verifying it against the answer set, and appending a timing " +
			"record to the timings log. With no arguments every registered " +
			"solution runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadSettings()
			if err != nil {
				return err
			}

			queries, err := parseQueries(queriesFlag)
			if err != nil {
				return err
			}

			solutions := args
			if len(solutions) == 0 {
				solutions = engine.Names()
			}

			r := runner.New(cfg, log, cmd.OutOrStdout())
			for _, name := range solutions {
				if err := r.RunSolution(cmd.Context(), name, queries); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&queriesFlag, "queries", "",
		`queries to run, e.g. "1,3,7-9" (default: all)`)
	return cmd
}

// parseQueries expands a comma-separated list of query numbers and ranges.
// An empty spec means every canonical query.
func parseQueries(spec string) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		all := make([]int, config.NumQueries)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	var queries []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		lo, hi, ok := strings.Cut(part, "-")
		if !ok {
			hi = lo
		}
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid query spec %q", part)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid query spec %q", part)
		}
		if from > to {
			return nil, fmt.Errorf("invalid query range %q", part)
		}
		for q := from; q <= to; q++ {
			if q < 1 || q > config.NumQueries {
				return nil, fmt.Errorf("query %d out of range 1..%d", q, config.NumQueries)
			}
			queries = append(queries, q)
		}
	}
	return queries, nil
}
