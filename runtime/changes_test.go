package runtime

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsql/dlsql/catalog"
	"github.com/dlsql/dlsql/engine"
	"github.com/dlsql/dlsql/ir"
)

// nameOnlyEngine implements engine.Engine just enough for ingestChange:
// it resolves table ids to relation names and errors on anything else.
type nameOnlyEngine struct {
	names map[int]string
}

func (e nameOnlyEngine) GetTableID(context.Context, string) (int, error)        { return 0, nil }
func (e nameOnlyEngine) GetTableName(_ context.Context, id int) (string, error) { return e.names[id], nil }
func (e nameOnlyEngine) TransactionStart(context.Context) error                 { return nil }
func (e nameOnlyEngine) ApplyUpdates(context.Context, []engine.Command) error   { return nil }
func (e nameOnlyEngine) TransactionCommitDumpChanges(context.Context, engine.ChangeCallback) error {
	return nil
}
func (e nameOnlyEngine) TransactionRollback(context.Context) error { return nil }

func newTestDispatcher() *Dispatcher {
	row, _ := ir.NewStructType([]ir.Field{
		{Name: "id", Type: ir.SignedType{Width: 64}},
		{Name: "name", Type: ir.StringType{}},
	})
	c, err := catalog.Load(context.Background(), []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})
	if err != nil {
		panic(err)
	}

	return &Dispatcher{
		eng:    nameOnlyEngine{names: map[int]string{1: "Rhosts"}},
		cat:    c,
		tables: map[string]tableBinding{"HOSTS": {TableName: "hosts", TypeName: "Thosts", RelationName: "Rhosts", Row: row, PrimaryKey: []string{"id"}}},
		byRel:  map[string]relationLayout{"Rhosts": {TableName: "hosts", Row: row}},
		views:  NewViewStore(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestIngestChangeInsertMaterializesRow(t *testing.T) {
	t.Parallel()
	d := newTestDispatcher()

	rec := engine.Struct{Tag: "Thosts", Fields: []engine.StructField{
		{Name: "id", Value: engine.Int64(1)},
		{Name: "name", Value: engine.Str("a")},
	}}
	require.NoError(t, d.ingestChange(context.Background(), engine.Change{Kind: engine.Insert, TableID: 1, Record: rec}))

	rows, err := d.views.Snapshot(context.Background(), "hosts")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []any{int32(1), "a"}, rows[0])
}

func TestIngestChangeDeleteValRemovesRow(t *testing.T) {
	t.Parallel()
	d := newTestDispatcher()

	rec := engine.Struct{Tag: "Thosts", Fields: []engine.StructField{
		{Name: "id", Value: engine.Int64(1)},
		{Name: "name", Value: engine.Str("a")},
	}}
	require.NoError(t, d.ingestChange(context.Background(), engine.Change{Kind: engine.Insert, TableID: 1, Record: rec}))
	require.NoError(t, d.ingestChange(context.Background(), engine.Change{Kind: engine.DeleteVal, TableID: 1, Record: rec}))

	rows, err := d.views.Snapshot(context.Background(), "hosts")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestIngestChangeDeleteKeyIsInvariantViolation(t *testing.T) {
	t.Parallel()
	d := newTestDispatcher()

	err := d.ingestChange(context.Background(), engine.Change{Kind: engine.DeleteKey, TableID: 1, Record: engine.Int64(1)})
	require.Error(t, err)
	var kindErr *UnexpectedChangeKindError
	require.ErrorAs(t, err, &kindErr)
	assert.ErrorIs(t, err, ErrUnexpectedChangeKind)
}
