package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsql/dlsql/catalog"
	"github.com/dlsql/dlsql/compiler"
	"github.com/dlsql/dlsql/engine"
	"github.com/dlsql/dlsql/engine/fake"
	"github.com/dlsql/dlsql/runtime"
	"github.com/dlsql/dlsql/sqlast"
)

// buildDispatcher translates ddl through the compiler, loads the same ddl
// into a catalog, registers every emitted relation with a fake engine, and
// returns a ready-to-use Dispatcher — the same three-artifact wiring
// cmd/dlsqld performs at startup.
func buildDispatcher(t *testing.T, ddl []string) (*runtime.Dispatcher, *fake.Engine) {
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
	return d, eng
}

func TestExecuteInsertAndSelectRoundTrip(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	ctx := context.Background()
	results, err := d.Execute(ctx, []runtime.Statement{
		{SQL: "INSERT INTO hosts VALUES (1, 'a')"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].UpdateCount)

	results, err = d.Execute(ctx, []runtime.Statement{
		{SQL: "SELECT * FROM hosts"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Rows)
	require.Len(t, results[0].Rows.Rows, 1)
	assert.Equal(t, []any{int32(1), "a"}, results[0].Rows.Rows[0])
}

func TestExecuteInsertWithBindings(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	ctx := context.Background()
	_, err := d.Execute(ctx, []runtime.Statement{
		{SQL: "INSERT INTO hosts VALUES (?, ?)", Bindings: []any{int32(7), "bound"}},
	})
	require.NoError(t, err)

	results, err := d.Execute(ctx, []runtime.Statement{{SQL: "SELECT * FROM hosts"}})
	require.NoError(t, err)
	assert.Equal(t, []any{int32(7), "bound"}, results[0].Rows.Rows[0])
}

func TestExecuteDeleteByPrimaryKey(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	ctx := context.Background()
	_, err := d.Execute(ctx, []runtime.Statement{
		{SQL: "INSERT INTO hosts VALUES (1, 'a')"},
		{SQL: "INSERT INTO hosts VALUES (2, 'b')"},
	})
	require.NoError(t, err)

	results, err := d.Execute(ctx, []runtime.Statement{
		{SQL: "DELETE FROM hosts WHERE id = ?", Bindings: []any{int32(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].UpdateCount)

	sel, err := d.Execute(ctx, []runtime.Statement{{SQL: "SELECT * FROM hosts"}})
	require.NoError(t, err)
	require.Len(t, sel[0].Rows.Rows, 1)
	assert.Equal(t, []any{int32(2), "b"}, sel[0].Rows.Rows[0])
}

func TestExecuteDeleteRequiresFullPrimaryKeyCoverage(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE members (org_id integer, user_id integer, PRIMARY KEY (org_id, user_id))",
	})

	ctx := context.Background()
	_, err := d.Execute(ctx, []runtime.Statement{
		{SQL: "DELETE FROM members WHERE org_id = 1"},
	})
	require.Error(t, err)
	var pkErr *runtime.PrimaryKeyCoverageError
	require.ErrorAs(t, err, &pkErr)
}

func TestExecuteDeleteMissingWhereIsRejectedAtParse(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	_, err := d.Execute(context.Background(), []runtime.Statement{
		{SQL: "DELETE FROM hosts"},
	})
	require.Error(t, err)
}

func TestExecuteInsertArityMismatch(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	_, err := d.Execute(context.Background(), []runtime.Statement{
		{SQL: "INSERT INTO hosts VALUES (1)"},
	})
	require.Error(t, err)
	var arityErr *runtime.ArityMismatchError
	require.ErrorAs(t, err, &arityErr)
}

func TestExecuteUnknownTableFails(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	_, err := d.Execute(context.Background(), []runtime.Statement{
		{SQL: "SELECT * FROM widgets"},
	})
	require.Error(t, err)
}

func TestExecuteBatchRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	d, _ := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})

	ctx := context.Background()
	_, err := d.Execute(ctx, []runtime.Statement{
		{SQL: "INSERT INTO hosts VALUES (1, 'a')"},
		{SQL: "INSERT INTO hosts VALUES (2)"}, // arity mismatch, aborts the batch
	})
	require.Error(t, err)

	results, err := d.Execute(ctx, []runtime.Statement{{SQL: "SELECT * FROM hosts"}})
	require.NoError(t, err)
	assert.Empty(t, results[0].Rows.Rows)
}

func TestExecuteViewMaterializesFromCreateView(t *testing.T) {
	t.Parallel()

	d, eng := buildDispatcher(t, []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
		"CREATE VIEW active_hosts AS SELECT DISTINCT * FROM hosts",
	})
	// The fake engine re-derives Output relations only from explicitly
	// registered Rules (it doesn't itself evaluate the compiled
	// ir.Program); a real deductive engine would derive this from the
	// CREATE VIEW's emitted rule instead. Wiring the identical row-shape
	// projection here exercises the same change-ingest path either way.
	eng.AddRule(fake.Rule{
		Head: "active_hosts",
		Body: "Rhosts",
		Transform: func(r engine.Record) engine.Record { return r },
	})

	ctx := context.Background()
	_, err := d.Execute(ctx, []runtime.Statement{
		{SQL: "INSERT INTO hosts VALUES (1, 'a')"},
	})
	require.NoError(t, err)

	results, err := d.Execute(ctx, []runtime.Statement{{SQL: "SELECT * FROM active_hosts"}})
	require.NoError(t, err)
	require.Len(t, results[0].Rows.Rows, 1)
	assert.Equal(t, []any{int32(1), "a"}, results[0].Rows.Rows[0])
}
