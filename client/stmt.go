package client

import (
	"context"
	"database/sql/driver"
)

// Stmt implements driver.Stmt by delegating to the owning Conn's
// exec/query helpers, the same path Conn's own ExecerContext/
// QueryerContext use — Prepare carries no state of its own beyond the
// SQL text, since this core has no server-side prepared statement
// concept to hold open.
type Stmt struct {
	conn  *Conn
	query string
}

var (
	_ driver.Stmt             = (*Stmt)(nil)
	_ driver.StmtExecContext  = (*Stmt)(nil)
	_ driver.StmtQueryContext = (*Stmt)(nil)
)

func (s *Stmt) Close() error { return nil }

// NumInput reports that the statement's placeholder count is unknown to
// the driver layer, per sqlast's untyped-placeholder grammar: database/sql
// skips its own arity check and defers entirely to the dispatcher.
func (s *Stmt) NumInput() int { return -1 }

func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.conn.exec(context.Background(), s.query, driverValuesToAny(args))
}

func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.conn.query(context.Background(), s.query, driverValuesToAny(args))
}

func (s *Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	return s.conn.exec(ctx, s.query, bindingsFromNamedValues(args))
}

func (s *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	return s.conn.query(ctx, s.query, bindingsFromNamedValues(args))
}
