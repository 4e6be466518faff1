package runtime

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/catalog"
	"github.com/dlsql/dlsql/codec"
	"github.com/dlsql/dlsql/compiler"
	"github.com/dlsql/dlsql/engine"
	"github.com/dlsql/dlsql/ir"
)

// tableBinding is what the dispatcher needs to build INSERT/DELETE
// commands for one user table: its engine relation identity, row shape,
// and primary key ordinal positions.
type tableBinding struct {
	TableName    string
	TypeName     string
	RelationName string
	Row          ir.StructType
	PrimaryKey   []string
}

// relationLayout is what the change-ingest callback needs to decode a
// committed record back into a client row, for any relation the engine
// reports changes against — table (Input) or view (Output) alike. byRel
// carries the TableName straight from the originating TableSchema/
// ViewSchema, so ingestChange never has to re-derive it from the relation
// name's own spelling.
type relationLayout struct {
	TableName string
	Row       ir.StructType
}

// Dispatcher is the transactional DML dispatcher: it executes a batch of
// statements against an engine.Engine inside one transaction, then
// materializes the post-commit change stream into a ViewStore.
type Dispatcher struct {
	eng    engine.Engine
	cat    *catalog.Catalog
	tables map[string]tableBinding   // by canonical SQL table name
	byRel  map[string]relationLayout // by IR relation name
	views  *ViewStore
	logger *slog.Logger
}

// NewDispatcher builds a Dispatcher from a compiled schema (a
// *compiler.Context's Tables/Views, produced once at initialization) and
// the catalog built from the same DDL list. logger receives one Info/Warn
// line per batch, tagged with a per-Execute correlation id; a nil logger
// falls back to slog.Default().
func NewDispatcher(eng engine.Engine, cat *catalog.Catalog, tables []compiler.TableSchema, views []compiler.ViewSchema, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		eng:    eng,
		cat:    cat,
		tables: make(map[string]tableBinding, len(tables)),
		byRel:  make(map[string]relationLayout, len(tables)+len(views)),
		views:  NewViewStore(),
		logger: logger,
	}
	for _, t := range tables {
		d.tables[catalog.CanonicalName(t.TableName)] = tableBinding{
			TableName:    t.TableName,
			TypeName:     t.TypeName,
			RelationName: t.RelationName,
			Row:          t.Row,
			PrimaryKey:   t.PrimaryKey,
		}
		d.byRel[t.RelationName] = relationLayout{TableName: t.TableName, Row: t.Row}
	}
	for _, v := range views {
		d.byRel[v.RelationName] = relationLayout{TableName: v.ViewName, Row: v.Row}
	}
	return d
}

// Execute runs batch as a single transaction: transaction-start, each
// statement dispatched in order, then commit-and-dump-changes. Any
// failure rolls the whole batch back and returns that failure; the
// batch's partial results are discarded.
func (d *Dispatcher) Execute(ctx context.Context, batch []Statement) ([]Result, error) {
	corrID := uuid.NewString()
	logger := d.logger.With("correlation_id", corrID, "statements", len(batch))

	if err := d.eng.TransactionStart(ctx); err != nil {
		logger.Error("transaction start failed", "err", err)
		return nil, err
	}

	results := make([]Result, 0, len(batch))
	for i, stmt := range batch {
		res, err := d.dispatch(ctx, stmt)
		if err != nil {
			logger.Warn("statement failed, rolling back batch", "index", i, "err", err)
			if rbErr := d.eng.TransactionRollback(ctx); rbErr != nil {
				return nil, dlsql.NewRollbackError(err, rbErr)
			}
			return nil, err
		}
		results = append(results, res)
	}

	cb := func(ch engine.Change) error { return d.ingestChange(ctx, ch) }
	if err := d.eng.TransactionCommitDumpChanges(ctx, cb); err != nil {
		logger.Warn("commit failed, rolling back batch", "err", err)
		if rbErr := d.eng.TransactionRollback(ctx); rbErr != nil {
			return nil, dlsql.NewRollbackError(err, rbErr)
		}
		return nil, err
	}

	logger.Info("batch committed")
	return results, nil
}

// ingestChange is the commit callback: it translates one committed change
// into a materialized-view mutation.
func (d *Dispatcher) ingestChange(ctx context.Context, ch engine.Change) error {
	if ch.Kind != engine.Insert && ch.Kind != engine.DeleteVal {
		return newUnexpectedChangeKindError(ch.Kind)
	}
	relName, err := d.eng.GetTableName(ctx, ch.TableID)
	if err != nil {
		return err
	}
	layout, ok := d.byRel[relName]
	if !ok {
		return dlsql.NewUnknownTableError(relName)
	}
	tableName := layout.TableName
	catInfo, ok := d.cat.Lookup(tableName)
	if !ok {
		return dlsql.NewUnknownTableError(tableName)
	}

	st, ok := ch.Record.(engine.Struct)
	if !ok {
		return dlsql.NewUnsupportedConstructError("commit stream record is not a struct")
	}

	row := make([]any, len(layout.Row.Fields))
	for i, f := range layout.Row.Fields {
		val, ok := st.FieldByName(f.Name)
		if !ok {
			return dlsql.NewUnknownColumnError(layout.TableName, f.Name)
		}
		nullable := i < len(catInfo.Columns) && catInfo.Columns[i].Nullable
		decoded, err := codec.DecodeValue(f.Type, nullable, val)
		if err != nil {
			return err
		}
		row[i] = decoded
	}

	key, err := rowKey(row)
	if err != nil {
		return err
	}

	switch ch.Kind {
	case engine.Insert:
		d.views.Insert(tableName, key, row)
	case engine.DeleteVal:
		d.views.Remove(tableName, key)
	default:
		return newUnexpectedChangeKindError(ch.Kind)
	}
	return nil
}
