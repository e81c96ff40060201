// Package timings appends and reads the benchmark timing log, a CSV with
// one record per (solution, version, query) run.
package timings

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// header is the fixed column set of the timings CSV.
var header = []string{"solution", "version", "query_number", "duration[s]", "include_io", "scale_factor"}

// Record is one timing measurement.
type Record struct {
	Solution    string
	Version     string
	QueryNumber int
	Duration    float64 // seconds
	IncludeIO   bool
	ScaleFactor float64
}

// Append adds one record to the CSV at path, creating the file (and its
// directory) with a header row when it does not exist yet.
func Append(path string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create timings dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open timings log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat timings log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write timings header: %w", err)
		}
	}
	row := []string{
		rec.Solution,
		rec.Version,
		strconv.Itoa(rec.QueryNumber),
		strconv.FormatFloat(rec.Duration, 'f', 6, 64),
		strconv.FormatBool(rec.IncludeIO),
		strconv.FormatFloat(rec.ScaleFactor, 'f', -1, 64),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write timings record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush timings log: %w", err)
	}
	return nil
}

// Read loads every record from the CSV at path.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timings log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read timings log: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, name := range header {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("timings log is missing column %q", name)
		}
	}

	recs := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		q, err := strconv.Atoi(row[col["query_number"]])
		if err != nil {
			return nil, fmt.Errorf("timings row %d: bad query_number: %w", i+1, err)
		}
		d, err := strconv.ParseFloat(row[col["duration[s]"]], 64)
		if err != nil {
			return nil, fmt.Errorf("timings row %d: bad duration: %w", i+1, err)
		}
		io, err := strconv.ParseBool(row[col["include_io"]])
		if err != nil {
			return nil, fmt.Errorf("timings row %d: bad include_io: %w", i+1, err)
		}
		sf, err := strconv.ParseFloat(row[col["scale_factor"]], 64)
		if err != nil {
			return nil, fmt.Errorf("timings row %d: bad scale_factor: %w", i+1, err)
		}
		recs = append(recs, Record{
			Solution:    row[col["solution"]],
			Version:     row[col["version"]],
			QueryNumber: q,
			Duration:    d,
			IncludeIO:   io,
			ScaleFactor: sf,
		})
	}
	return recs, nil
}
