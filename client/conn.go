package client

import (
	"context"
	"database/sql/driver"

	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/runtime"
)

// Conn implements driver.Conn over a *runtime.Dispatcher. Exec/Query go
// straight through the dispatcher's own Execute call, each as a
// single-statement batch; a batch is already a whole transaction, so Conn
// needs no separate begin/commit bookkeeping of its own.
type Conn struct {
	dispatcher *runtime.Dispatcher
}

var (
	_ driver.Conn               = (*Conn)(nil)
	_ driver.ExecerContext      = (*Conn)(nil)
	_ driver.QueryerContext     = (*Conn)(nil)
	_ driver.ConnPrepareContext = (*Conn)(nil)
)

func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return &Stmt{conn: c, query: query}, nil
}

func (c *Conn) PrepareContext(_ context.Context, query string) (driver.Stmt, error) {
	return &Stmt{conn: c, query: query}, nil
}

func (c *Conn) Close() error { return nil }

// Begin is unsupported: each Execute batch is already its own atomic
// transaction against the engine, and the engine contract has no notion
// of a transaction left open across separate client calls.
func (c *Conn) Begin() (driver.Tx, error) {
	return nil, dlsql.NewUnsupportedConstructError("multi-statement client transactions (BEGIN/COMMIT): every batch is already atomic)")
}

func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	return c.exec(ctx, query, bindingsFromNamedValues(args))
}

func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return c.query(ctx, query, bindingsFromNamedValues(args))
}

func (c *Conn) exec(ctx context.Context, query string, bindings []any) (driver.Result, error) {
	results, err := c.dispatcher.Execute(ctx, []runtime.Statement{{SQL: query, Bindings: bindings}})
	if err != nil {
		return nil, err
	}
	return Result{rowsAffected: int64(results[0].UpdateCount)}, nil
}

func (c *Conn) query(ctx context.Context, query string, bindings []any) (driver.Rows, error) {
	results, err := c.dispatcher.Execute(ctx, []runtime.Statement{{SQL: query, Bindings: bindings}})
	if err != nil {
		return nil, err
	}
	rs := results[0].Rows
	if rs == nil {
		rs = &runtime.ResultSet{}
	}
	return newRows(rs), nil
}
