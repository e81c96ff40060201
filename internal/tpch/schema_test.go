package tpch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_AllRelationsKnown(t *testing.T) {
	require.Len(t, TableNames, 8)

	wantCols := map[string]int{
		"region":   3,
		"nation":   4,
		"supplier": 7,
		"customer": 8,
		"part":     9,
		"partsupp": 5,
		"orders":   9,
		"lineitem": 16,
	}
	for _, name := range TableNames {
		rel, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, rel.Name)
		assert.Len(t, rel.Columns, wantCols[name], "columns of %s", name)
	}
}

func TestLookup_UnknownRelation(t *testing.T) {
	_, err := Lookup("invoices")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invoices")
}

func TestColumnNames(t *testing.T) {
	rel, err := Lookup("nation")
	require.NoError(t, err)
	assert.Equal(t, []string{"n_nationkey", "n_name", "n_regionkey", "n_comment"}, rel.ColumnNames())
}

func TestQueryTables(t *testing.T) {
	tables, err := QueryTables(7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"supplier", "lineitem", "orders", "customer", "nation"}, tables)

	for q := 1; q <= 22; q++ {
		tables, err := QueryTables(q)
		require.NoError(t, err, "query %d", q)
		require.NotEmpty(t, tables)
		for _, table := range tables {
			_, err := Lookup(table)
			assert.NoError(t, err, "query %d references %s", q, table)
		}
	}

	_, err = QueryTables(23)
	require.Error(t, err)
}
