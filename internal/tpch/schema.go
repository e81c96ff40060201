// Package tpch defines the fixed TPC-H relational schema: the eight
// relations, their ordered columns, and which relations each of the 22
// canonical queries reads.
package tpch

import "fmt"

// Kind is the logical type of a column, independent of any engine dialect.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindDate
	KindString
)

// Column is one named, typed column of a relation.
type Column struct {
	Name string
	Kind Kind
}

// Relation describes one TPC-H table.
type Relation struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the relation's column names in schema order.
func (r Relation) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// TableNames lists the eight TPC-H relations in conventional order.
var TableNames = []string{
	"region", "nation", "supplier", "customer",
	"part", "partsupp", "orders", "lineitem",
}

var relations = map[string]Relation{
	"region": {Name: "region", Columns: []Column{
		{"r_regionkey", KindInt},
		{"r_name", KindString},
		{"r_comment", KindString},
	}},
	"nation": {Name: "nation", Columns: []Column{
		{"n_nationkey", KindInt},
		{"n_name", KindString},
		{"n_regionkey", KindInt},
		{"n_comment", KindString},
	}},
	"supplier": {Name: "supplier", Columns: []Column{
		{"s_suppkey", KindInt},
		{"s_name", KindString},
		{"s_address", KindString},
		{"s_nationkey", KindInt},
		{"s_phone", KindString},
		{"s_acctbal", KindFloat},
		{"s_comment", KindString},
	}},
	"customer": {Name: "customer", Columns: []Column{
		{"c_custkey", KindInt},
		{"c_name", KindString},
		{"c_address", KindString},
		{"c_nationkey", KindInt},
		{"c_phone", KindString},
		{"c_acctbal", KindFloat},
		{"c_mktsegment", KindString},
		{"c_comment", KindString},
	}},
	"part": {Name: "part", Columns: []Column{
		{"p_partkey", KindInt},
		{"p_name", KindString},
		{"p_mfgr", KindString},
		{"p_brand", KindString},
		{"p_type", KindString},
		{"p_size", KindInt},
		{"p_container", KindString},
		{"p_retailprice", KindFloat},
		{"p_comment", KindString},
	}},
	"partsupp": {Name: "partsupp", Columns: []Column{
		{"ps_partkey", KindInt},
		{"ps_suppkey", KindInt},
		{"ps_availqty", KindInt},
		{"ps_supplycost", KindFloat},
		{"ps_comment", KindString},
	}},
	"orders": {Name: "orders", Columns: []Column{
		{"o_orderkey", KindInt},
		{"o_custkey", KindInt},
		{"o_orderstatus", KindString},
		{"o_totalprice", KindFloat},
		{"o_orderdate", KindDate},
		{"o_orderpriority", KindString},
		{"o_clerk", KindString},
		{"o_shippriority", KindInt},
		{"o_comment", KindString},
	}},
	"lineitem": {Name: "lineitem", Columns: []Column{
		{"l_orderkey", KindInt},
		{"l_partkey", KindInt},
		{"l_suppkey", KindInt},
		{"l_linenumber", KindInt},
		{"l_quantity", KindFloat},
		{"l_extendedprice", KindFloat},
		{"l_discount", KindFloat},
		{"l_tax", KindFloat},
		{"l_returnflag", KindString},
		{"l_linestatus", KindString},
		{"l_shipdate", KindDate},
		{"l_commitdate", KindDate},
		{"l_receiptdate", KindDate},
		{"l_shipinstruct", KindString},
		{"l_shipmode", KindString},
		{"l_comment", KindString},
	}},
}

// Lookup returns the relation with the given name. Unknown table names are
// an error: the dataset loader refuses to read files outside the schema.
func Lookup(table string) (Relation, error) {
	rel, ok := relations[table]
	if !ok {
		return Relation{}, fmt.Errorf("unknown TPC-H relation %q", table)
	}
	return rel, nil
}

// queryTables maps each canonical query number to the relations it reads.
var queryTables = map[int][]string{
	1:  {"lineitem"},
	2:  {"part", "supplier", "partsupp", "nation", "region"},
	3:  {"customer", "orders", "lineitem"},
	4:  {"orders", "lineitem"},
	5:  {"customer", "orders", "lineitem", "supplier", "nation", "region"},
	6:  {"lineitem"},
	7:  {"supplier", "lineitem", "orders", "customer", "nation"},
	8:  {"part", "supplier", "lineitem", "orders", "customer", "nation", "region"},
	9:  {"part", "supplier", "lineitem", "partsupp", "orders", "nation"},
	10: {"customer", "orders", "lineitem", "nation"},
	11: {"partsupp", "supplier", "nation"},
	12: {"orders", "lineitem"},
	13: {"customer", "orders"},
	14: {"lineitem", "part"},
	15: {"lineitem", "supplier"},
	16: {"partsupp", "part", "supplier"},
	17: {"lineitem", "part"},
	18: {"customer", "orders", "lineitem"},
	19: {"lineitem", "part"},
	20: {"supplier", "nation", "partsupp", "part", "lineitem"},
	21: {"supplier", "lineitem", "orders", "nation"},
	22: {"customer", "orders"},
}

// QueryTables returns the relations query q reads.
func QueryTables(q int) ([]string, error) {
	tables, ok := queryTables[q]
	if !ok {
		return nil, fmt.Errorf("no such TPC-H query: %d", q)
	}
	return tables, nil
}
