package result

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// VerifyOptions controls how a computed result is compared to the answer.
type VerifyOptions struct {
	// Ordered compares rows positionally. When false, both sides are sorted
	// by all answer columns before comparing, for queries whose output order
	// is unspecified.
	Ordered bool
	// RelTol and AbsTol bound the allowed error on float columns:
	// |got - want| <= AbsTol + RelTol*|want|. Zero values use the defaults
	// 1e-5 and 1e-8.
	RelTol float64
	AbsTol float64
}

func (o VerifyOptions) relTol() float64 {
	if o.RelTol == 0 {
		return 1e-5
	}
	return o.RelTol
}

func (o VerifyOptions) absTol() float64 {
	if o.AbsTol == 0 {
		return 1e-8
	}
	return o.AbsTol
}

// Verify asserts that got matches the reference answer want. Columns are
// aligned by name (the answer's column set drives), string cells are
// whitespace-trimmed, and answer text is coerced to the computed cell's
// type before comparing. Any mismatch is an error naming the column, the
// row, and both values; there is no recovery path.
func Verify(got, want *Table, opts VerifyOptions) error {
	if len(got.Rows) != len(want.Rows) {
		return fmt.Errorf("row count mismatch: got %d rows, answer has %d", len(got.Rows), len(want.Rows))
	}

	colIdx := make([]int, len(want.Columns))
	for i, name := range want.Columns {
		idx, ok := got.ColumnIndex(name)
		if !ok {
			return fmt.Errorf("result is missing column %q (has %v)", name, got.Columns)
		}
		colIdx[i] = idx
	}

	gotRows := got.Rows
	wantRows := want.Rows
	if !opts.Ordered {
		gotRows = sortedRows(gotRows, colIdx)
		wantIdx := make([]int, len(want.Columns))
		for i := range wantIdx {
			wantIdx[i] = i
		}
		wantRows = sortedRows(wantRows, wantIdx)
	}

	for r := range wantRows {
		for i, name := range want.Columns {
			g := gotRows[r][colIdx[i]]
			w := cellText(wantRows[r][i])
			if err := compareCell(g, w, opts.relTol(), opts.absTol()); err != nil {
				return fmt.Errorf("column %q row %d: %w", name, r, err)
			}
		}
	}
	return nil
}

// compareCell checks one computed cell against the answer text, coerced to
// the computed cell's type.
func compareCell(got any, want string, rtol, atol float64) error {
	want = strings.TrimSpace(want)
	switch g := got.(type) {
	case nil:
		if want != "" && !strings.EqualFold(want, "null") {
			return fmt.Errorf("got NULL, want %q", want)
		}
		return nil
	case int64:
		w, err := strconv.ParseInt(want, 10, 64)
		if err != nil {
			// Some answer columns print integral values with decimals.
			f, ferr := strconv.ParseFloat(want, 64)
			if ferr != nil {
				return fmt.Errorf("got integer %d, want %q", g, want)
			}
			if math.Abs(float64(g)-f) > atol+rtol*math.Abs(f) {
				return fmt.Errorf("got %d, want %s", g, want)
			}
			return nil
		}
		if g != w {
			return fmt.Errorf("got %d, want %d", g, w)
		}
		return nil
	case float64:
		w, err := strconv.ParseFloat(want, 64)
		if err != nil {
			return fmt.Errorf("got float %v, want %q", g, want)
		}
		if math.Abs(g-w) > atol+rtol*math.Abs(w) {
			return fmt.Errorf("got %v, want %v", g, w)
		}
		return nil
	case time.Time:
		w, err := parseDate(want)
		if err != nil {
			return fmt.Errorf("got date %s, want %q", g.Format("2006-01-02"), want)
		}
		gy, gm, gd := g.Date()
		wy, wm, wd := w.Date()
		if gy != wy || gm != wm || gd != wd {
			return fmt.Errorf("got %s, want %s", g.Format("2006-01-02"), w.Format("2006-01-02"))
		}
		return nil
	case bool:
		w, err := strconv.ParseBool(strings.ToLower(want))
		if err != nil || g != w {
			return fmt.Errorf("got %v, want %q", g, want)
		}
		return nil
	case string:
		if strings.TrimSpace(g) != want {
			return fmt.Errorf("got %q, want %q", strings.TrimSpace(g), want)
		}
		return nil
	default:
		return fmt.Errorf("unsupported result cell type %T", got)
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// cellText renders an answer cell for coercion. Answer tables read from
// disk hold strings; tables built programmatically may hold typed cells.
func cellText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// sortedRows returns the rows ordered by the canonical keys of the given
// column indices. The key format only has to be consistent between the two
// sides, not humanly meaningful.
func sortedRows(rows [][]any, cols []int) [][]any {
	out := make([][]any, len(rows))
	copy(out, rows)
	keys := make([]string, len(rows))
	for i, row := range rows {
		parts := make([]string, len(cols))
		for j, c := range cols {
			parts[j] = sortKey(row[c])
		}
		keys[i] = strings.Join(parts, "\x00")
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func sortKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return fmt.Sprintf("%+021.6f", float64(x))
	case float64:
		return fmt.Sprintf("%+021.6f", x)
	case time.Time:
		return x.Format("2006-01-02")
	case string:
		s := strings.TrimSpace(x)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fmt.Sprintf("%+021.6f", f)
		}
		return s
	default:
		return fmt.Sprintf("%v", x)
	}
}
