package client

import (
	"database/sql/driver"
	"io"

	"github.com/dlsql/dlsql/runtime"
)

// Rows implements driver.Rows over an already-materialized
// *runtime.ResultSet — the dispatcher snapshots a table's rows under lock
// before returning (runtime.ViewStore.Snapshot), so Rows itself needs no
// further synchronization once constructed.
type Rows struct {
	columns []string
	rows    [][]any
	pos     int
}

var _ driver.Rows = (*Rows)(nil)

func newRows(rs *runtime.ResultSet) *Rows {
	columns := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		columns[i] = c.Name
	}
	return &Rows{columns: columns, rows: rs.Rows}
}

func (r *Rows) Columns() []string { return r.columns }

func (r *Rows) Close() error { return nil }

func (r *Rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.pos]
	for i, v := range row {
		dv, err := toDriverValue(v)
		if err != nil {
			return err
		}
		dest[i] = dv
	}
	r.pos++
	return nil
}
