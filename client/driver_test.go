package client_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsql/dlsql/catalog"
	"github.com/dlsql/dlsql/client"
	"github.com/dlsql/dlsql/compiler"
	"github.com/dlsql/dlsql/engine/fake"
	"github.com/dlsql/dlsql/runtime"
	"github.com/dlsql/dlsql/sqlast"
)

// openTestDB wires a fresh fake-engine dispatcher, registers it under a
// name unique to the test, and opens it through database/sql — the same
// path cmd/dlsqld's callers use.
func openTestDB(t *testing.T, ddl []string) *sql.DB {
	t.Helper()

	ctx := context.Background()
	tctx := compiler.NewContext()
	for _, stmt := range ddl {
		parsed, err := sqlast.ParseDDL(stmt)
		require.NoError(t, err)
		require.NoError(t, compiler.TranslateDDL(tctx, parsed))
	}

	cat, err := catalog.Load(ctx, ddl)
	require.NoError(t, err)

	eng := fake.New()
	for _, tbl := range tctx.Tables() {
		eng.Register(tbl.RelationName)
	}
	for _, v := range tctx.Views() {
		eng.Register(v.RelationName)
	}

	d := runtime.NewDispatcher(eng, cat, tctx.Tables(), tctx.Views(), nil)

	name := t.Name()
	require.NoError(t, client.Register(name, d))
	t.Cleanup(func() { client.Deregister(name) })

	db, err := sql.Open(client.DriverName, name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDriverExecAndQueryRoundTrip(t *testing.T) {
	t.Parallel()

	db := openTestDB(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})
	ctx := context.Background()

	res, err := db.ExecContext(ctx, "INSERT INTO hosts VALUES (?, ?)", 1, "a")
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	rows, err := db.QueryContext(ctx, "SELECT * FROM hosts")
	require.NoError(t, err)
	defer rows.Close()

	cols, err := rows.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, cols)

	require.True(t, rows.Next())
	var id int64
	var name string
	require.NoError(t, rows.Scan(&id, &name))
	assert.EqualValues(t, 1, id)
	assert.Equal(t, "a", name)
	assert.False(t, rows.Next())
	require.NoError(t, rows.Err())
}

func TestDriverDeleteByPrimaryKey(t *testing.T) {
	t.Parallel()

	db := openTestDB(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO hosts VALUES (?, ?)", 1, "a")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO hosts VALUES (?, ?)", 2, "b")
	require.NoError(t, err)

	res, err := db.ExecContext(ctx, "DELETE FROM hosts WHERE id = ?", 1)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	row := db.QueryRowContext(ctx, "SELECT * FROM hosts")
	var id int64
	var name string
	require.NoError(t, row.Scan(&id, &name))
	assert.EqualValues(t, 2, id)
	assert.Equal(t, "b", name)
}

func TestDriverLastInsertIDIsUnsupported(t *testing.T) {
	t.Parallel()

	db := openTestDB(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	res, err := db.ExecContext(context.Background(), "INSERT INTO hosts VALUES (?, ?)", 1, "a")
	require.NoError(t, err)
	_, err = res.LastInsertId()
	assert.Error(t, err)
}

func TestDriverBeginIsUnsupported(t *testing.T) {
	t.Parallel()

	db := openTestDB(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	_, err := db.Begin()
	assert.Error(t, err)
}

func TestOpenUnregisteredNameFails(t *testing.T) {
	t.Parallel()

	db, err := sql.Open(client.DriverName, "no-such-dispatcher")
	require.NoError(t, err) // sql.Open defers dialing
	t.Cleanup(func() { _ = db.Close() })

	err = db.Ping()
	assert.Error(t, err)
}
