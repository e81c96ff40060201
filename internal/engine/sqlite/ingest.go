package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"tpch-bench/internal/tpch"
)

// ingestBatchSize is the Arrow record batch size used while reading Parquet.
const ingestBatchSize = 64 * 1024

// ingest streams the Parquet file at path into the relation's SQLite table,
// one transaction for the whole load.
func (e *Engine) ingest(ctx context.Context, rel tpch.Relation, path string) error {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return fmt.Errorf("open parquet: %w", err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{BatchSize: ingestBatchSize}, memory.DefaultAllocator)
	if err != nil {
		return fmt.Errorf("read parquet schema: %w", err)
	}
	rr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return fmt.Errorf("open record reader: %w", err)
	}
	defer rr.Release()

	names := make([]string, len(rr.Schema().Fields()))
	for i, f := range rr.Schema().Fields() {
		names[i] = f.Name
	}
	known := map[string]bool{}
	for _, c := range rel.Columns {
		known[c.Name] = true
	}
	for _, name := range names {
		if !known[name] {
			return fmt.Errorf("parquet column %q is not in the %s schema", name, rel.Name)
		}
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest tx: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		rel.Name, strings.Join(names, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	vals := make([]any, len(names))
	for rr.Next() {
		rec := rr.Record()
		nrows := int(rec.NumRows())
		for r := 0; r < nrows; r++ {
			for c := 0; c < int(rec.NumCols()); c++ {
				v, err := arrowCell(rec.Column(c), r)
				if err != nil {
					return fmt.Errorf("column %s: %w", names[c], err)
				}
				vals[c] = v
			}
			if _, err := stmt.ExecContext(ctx, vals...); err != nil {
				return fmt.Errorf("insert row: %w", err)
			}
		}
	}
	if err := rr.Err(); err != nil {
		return fmt.Errorf("read parquet rows: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest tx: %w", err)
	}
	return nil
}

// arrowCell converts one Arrow array element to a database/sql value.
// Dates become ISO-8601 text.
func arrowCell(col arrow.Array, i int) (any, error) {
	if col.IsNull(i) {
		return nil, nil
	}
	switch a := col.(type) {
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return int64(a.Value(i)), nil
	case *array.Uint16:
		return int64(a.Value(i)), nil
	case *array.Uint32:
		return int64(a.Value(i)), nil
	case *array.Uint64:
		return int64(a.Value(i)), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.LargeString:
		return a.Value(i), nil
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Date32:
		return a.Value(i).ToTime().Format("2006-01-02"), nil
	case *array.Date64:
		return a.Value(i).ToTime().Format("2006-01-02"), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).Format("2006-01-02"), nil
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return a.Value(i).ToFloat64(scale), nil
	default:
		return nil, fmt.Errorf("unsupported parquet type %s", col.DataType())
	}
}
