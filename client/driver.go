// Package client exposes runtime.Dispatcher through the standard
// database/sql/driver.Driver interface — the idiomatic Go shape of a
// JDBC-style client connection. Grounded on the shape (not the code) of
// a complete database/sql driver implementation: a Driver registered by
// sql.Register, a Conn implementing the Exec/QueryContext fast paths, a
// Stmt/Rows/Result trio for the Prepare fallback path, and a values.go
// converting between this package's Go values and driver.Value.
package client

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
)

// DriverName is the name this package registers itself under.
const DriverName = "dlsql"

func init() {
	sql.Register(DriverName, &Driver{})
}

// Driver implements database/sql/driver.Driver. Unlike a network database
// driver, Open's name is not a connection string: it looks up a
// *runtime.Dispatcher previously registered by Register, since the
// dispatcher (and the engine handle, catalog, and compiled schema behind
// it) is an in-process object with no address to dial.
type Driver struct{}

// Open resolves name to a registered dispatcher and wraps it in a Conn.
func (Driver) Open(name string) (driver.Conn, error) {
	d, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("client: no dispatcher registered under name %q; call client.Register first", name)
	}
	return &Conn{dispatcher: d}, nil
}

var _ driver.Driver = Driver{}
