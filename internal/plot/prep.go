package plot

import (
	"fmt"
	"slices"

	"tpch-bench/internal/timings"
)

// Entry is one bar of the chart: a (solution, version, query) duration.
type Entry struct {
	Solution string
	Version  string
	Query    string // "Q1".."Q22"
	Duration float64
}

// PrepData shapes timing records for display. It keeps records matching the
// include-IO flag with a query number at most nQueries, takes the last
// timing per (solution, version, query) combination, and emits exactly one
// entry per combination for every query from 1 to nQueries, filling missing
// combinations with a zero duration. Solutions are ordered by the style's
// legend order; a solution in the data without a legend entry is dropped,
// matching the chart's color mapping.
func PrepData(recs []timings.Record, includeIO bool, nQueries int, style Style) []Entry {
	type key struct {
		solution, version string
		query             int
	}
	last := map[key]float64{}
	versions := map[string][]string{} // solution -> versions in first-seen order
	for _, rec := range recs {
		if rec.IncludeIO != includeIO || rec.QueryNumber < 1 || rec.QueryNumber > nQueries {
			continue
		}
		k := key{rec.Solution, rec.Version, rec.QueryNumber}
		if !slices.Contains(versions[rec.Solution], rec.Version) {
			versions[rec.Solution] = append(versions[rec.Solution], rec.Version)
		}
		last[k] = rec.Duration
	}

	var entries []Entry
	for _, sol := range style.Solutions {
		for _, version := range versions[sol.Name] {
			for q := 1; q <= nQueries; q++ {
				entries = append(entries, Entry{
					Solution: sol.Name,
					Version:  version,
					Query:    fmt.Sprintf("Q%d", q),
					Duration: last[key{sol.Name, version, q}],
				})
			}
		}
	}
	return entries
}
