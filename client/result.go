package client

import (
	"database/sql/driver"
	"errors"
)

// Result implements driver.Result. This core has no auto-increment
// identity column concept (rows are keyed by their declared primary key),
// so LastInsertId is always an error rather than a fabricated zero.
type Result struct {
	rowsAffected int64
}

var _ driver.Result = Result{}

func (r Result) LastInsertId() (int64, error) {
	return 0, errors.New("client: LastInsertId is not supported, this core has no auto-increment identity")
}

func (r Result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}
