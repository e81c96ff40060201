package result

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadAnswer loads the reference answer for query q from dir/q{q}.out.
// Answer files are pipe-delimited with a header row; header names may carry
// extraneous whitespace, which is trimmed. Cells are kept as raw strings;
// the verifier coerces them to the computed result's types.
func ReadAnswer(dir string, q int) (*Table, error) {
	path := filepath.Join(dir, fmt.Sprintf("q%d.out", q))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open answer file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read answer header: %w", err)
		}
		return nil, fmt.Errorf("answer file %s is empty", path)
	}
	header := strings.Split(scanner.Text(), "|")
	t := &Table{Columns: make([]string, len(header))}
	for i, name := range header {
		t.Columns[i] = strings.TrimSpace(name)
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != len(t.Columns) {
			return nil, fmt.Errorf("answer file %s row %d has %d fields, want %d",
				path, len(t.Rows)+1, len(fields), len(t.Columns))
		}
		row := make([]any, len(fields))
		for i, v := range fields {
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read answer file %s: %w", path, err)
	}
	return t, nil
}
