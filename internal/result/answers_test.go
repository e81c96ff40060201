package result

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAnswer(t *testing.T, dir string, q int, content string) {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("q%d.out", q))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadAnswer_TrimsHeaderWhitespace(t *testing.T) {
	dir := t.TempDir()
	writeAnswer(t, dir, 7, "supp_nation|cust_nation|l_year | revenue\nFRANCE|GERMANY|1995|900.00\nGERMANY|FRANCE|1996|500.00\n")

	tbl, err := ReadAnswer(dir, 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"supp_nation", "cust_nation", "l_year", "revenue"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "FRANCE", tbl.Rows[0][0])
	assert.Equal(t, "500.00", tbl.Rows[1][3])
}

func TestReadAnswer_SkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	writeAnswer(t, dir, 6, "revenue\n123.45\n\n")

	tbl, err := ReadAnswer(dir, 6)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
}

func TestReadAnswer_FieldCountMismatch(t *testing.T) {
	dir := t.TempDir()
	writeAnswer(t, dir, 1, "a|b\n1|2|3\n")

	_, err := ReadAnswer(dir, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fields")
}

func TestReadAnswer_MissingFile(t *testing.T) {
	_, err := ReadAnswer(t.TempDir(), 3)
	require.Error(t, err)
}
