// Package result holds in-memory query results, the reference answer
// reader, and the verifier that compares the two.
package result

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Table is an ordered, in-memory tabular query result. Cells are normalized
// to int64, float64, time.Time, string, bool, or nil.
type Table struct {
	Columns []string
	Rows    [][]any
}

// FromRows drains a sql.Rows into a Table, normalizing driver-specific
// value types. The rows are closed afterwards.
func FromRows(rows *sql.Rows) (*Table, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read column names: %w", err)
	}

	t := &Table{Columns: cols}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(t.Rows), err)
		}
		row := make([]any, len(cols))
		for i, v := range vals {
			row[i] = normalize(v)
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return t, nil
}

// normalize widens integer types, converts []byte to string, and leaves
// everything else alone.
func normalize(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// FormatCell renders one cell the way the printer and the verifier see it.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02")
	case float64:
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Fprint writes the table column-aligned. Lines wider than maxWidth are
// truncated; maxWidth <= 0 disables truncation.
func (t *Table) Fprint(w io.Writer, maxWidth int) error {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	cells := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells[r] = make([]string, len(row))
		for i, v := range row {
			s := FormatCell(v)
			cells[r][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	writeLine := func(parts []string) error {
		padded := make([]string, len(parts))
		for i, s := range parts {
			padded[i] = fmt.Sprintf("%-*s", widths[i], s)
		}
		line := strings.TrimRight(strings.Join(padded, "  "), " ")
		if maxWidth > 0 && len(line) > maxWidth {
			line = line[:maxWidth]
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}

	if err := writeLine(t.Columns); err != nil {
		return err
	}
	total := 0
	for _, wd := range widths {
		total += wd + 2
	}
	sep := strings.Repeat("-", min(total, max(maxWidth, 1)))
	if maxWidth <= 0 {
		sep = strings.Repeat("-", total)
	}
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return err
	}
	for _, row := range cells {
		if err := writeLine(row); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
	return err
}

// Print writes the table to stdout, truncated to the terminal width when
// stdout is a terminal.
func (t *Table) Print() error {
	maxWidth := 0
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			maxWidth = w
		}
	}
	return t.Fprint(os.Stdout, maxWidth)
}
