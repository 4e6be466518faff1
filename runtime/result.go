package runtime

import "github.com/dlsql/dlsql/catalog"

// Statement is one request in an Execute batch: raw SQL text plus its
// positional bindings.
type Statement struct {
	SQL      string
	Bindings []any
}

// ResultSet is a SELECT's payload: column metadata from the catalog and
// the materialized rows it names, each row a slice of decoded client
// values in column order.
type ResultSet struct {
	Columns []catalog.ColumnInfo
	Rows    [][]any
}

// Result is one statement's response: an update count and, for SELECT,
// the result set. Rows is nil for INSERT/DELETE.
type Result struct {
	UpdateCount int
	Rows        *ResultSet
}
