// Package testutil writes small TPC-H-shaped fixtures for engine and runner
// tests: a Parquet dataset generated through DuckDB and the matching
// reference answer files.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/require"

	"tpch-bench/internal/tpch"
)

// Rows per relation. Lineitem is laid out so that:
//   - q6 matches only the 1994 line: revenue 100*0.06 = 6.00
//   - q7 keeps the FRANCE→GERMANY 1995 line (volume 900.00) and the
//     GERMANY→FRANCE 1996 line (volume 500.00); the GERMANY→GERMANY and
//     the 1998 lines fall out
var fixtureRows = map[string][]string{
	"region": {
		`(1, 'EUROPE', 'r1')`,
		`(2, 'ASIA', 'r2')`,
	},
	"nation": {
		`(1, 'FRANCE', 1, 'n1')`,
		`(2, 'GERMANY', 1, 'n2')`,
		`(3, 'JAPAN', 2, 'n3')`,
	},
	"supplier": {
		`(1, 'Supplier#000000001', 'addr1', 1, '11-111', 100.0, 's1')`,
		`(2, 'Supplier#000000002', 'addr2', 2, '22-222', 200.0, 's2')`,
	},
	"customer": {
		`(1, 'Customer#000000001', 'caddr1', 2, '13-111', 500.0, 'BUILDING', 'c1')`,
		`(2, 'Customer#000000002', 'caddr2', 1, '31-222', 600.0, 'AUTOMOBILE', 'c2')`,
	},
	"part": {
		`(1, 'green metal part', 'Mfgr#1', 'Brand#12', 'ECONOMY ANODIZED STEEL', 15, 'SM BOX', 100.0, 'p1')`,
	},
	"partsupp": {
		`(1, 1, 100, 10.0, 'ps1')`,
		`(1, 2, 200, 20.0, 'ps2')`,
	},
	"orders": {
		`(1, 1, 'F', 100.0, DATE '1995-03-01', '1-URGENT', 'Clerk#000000001', 0, 'o1')`,
		`(2, 2, 'O', 200.0, DATE '1996-02-21', '2-HIGH', 'Clerk#000000002', 0, 'o2')`,
	},
	"lineitem": {
		`(1, 1, 1, 1, 10.0, 1000.0, 0.10, 0.05, 'N', 'O', DATE '1995-07-01', DATE '1995-07-02', DATE '1995-07-03', 'DELIVER IN PERSON', 'AIR', 'l1')`,
		`(2, 1, 2, 1, 5.0, 500.0, 0.00, 0.00, 'N', 'O', DATE '1996-06-01', DATE '1996-06-02', DATE '1996-06-03', 'DELIVER IN PERSON', 'MAIL', 'l2')`,
		`(1, 1, 2, 2, 3.0, 300.0, 0.50, 0.00, 'R', 'F', DATE '1995-08-01', DATE '1995-08-02', DATE '1995-08-03', 'NONE', 'SHIP', 'l3')`,
		`(2, 1, 1, 2, 7.0, 700.0, 0.10, 0.00, 'N', 'O', DATE '1998-01-01', DATE '1998-01-02', DATE '1998-01-03', 'NONE', 'RAIL', 'l4')`,
		`(1, 1, 1, 3, 20.0, 100.0, 0.06, 0.00, 'A', 'F', DATE '1994-03-01', DATE '1994-03-02', DATE '1994-03-03', 'NONE', 'TRUCK', 'l5')`,
	},
}

// WriteTinyDataset writes one Parquet file per TPC-H relation into dir.
func WriteTinyDataset(t *testing.T, dir string) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	for _, table := range tpch.TableNames {
		rel, err := tpch.Lookup(table)
		require.NoError(t, err)

		cols := make([]string, len(rel.Columns))
		for i, c := range rel.Columns {
			cols[i] = c.Name + " " + duckdbType(c.Kind)
		}
		_, err = db.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(cols, ", ")))
		require.NoError(t, err)

		_, err = db.Exec(fmt.Sprintf("INSERT INTO %s VALUES %s", table, strings.Join(fixtureRows[table], ", ")))
		require.NoError(t, err)

		path := filepath.Join(dir, table+".parquet")
		_, err = db.Exec(fmt.Sprintf("COPY %s TO '%s' (FORMAT PARQUET)", table, path))
		require.NoError(t, err)
	}
}

func duckdbType(k tpch.Kind) string {
	switch k {
	case tpch.KindInt:
		return "BIGINT"
	case tpch.KindFloat:
		return "DOUBLE"
	case tpch.KindDate:
		return "DATE"
	default:
		return "VARCHAR"
	}
}

// WriteTinyAnswers writes q6.out and q7.out matching WriteTinyDataset.
func WriteTinyAnswers(t *testing.T, dir string) {
	t.Helper()

	answers := map[string]string{
		"q6.out": "revenue\n6.00\n",
		"q7.out": "supp_nation|cust_nation|l_year|revenue\nFRANCE|GERMANY|1995|900.00\nGERMANY|FRANCE|1996|500.00\n",
	}
	for name, content := range answers {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}
