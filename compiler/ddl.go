package compiler

import (
	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/ir"
	"github.com/dlsql/dlsql/sqlast"
)

// TranslateCreateTable lowers a CREATE TABLE statement into a type-def and
// an Input relation: one struct field per column, in declared order, and
// a TableSchema recording the primary key for the runtime's
// match-expression builder.
func TranslateCreateTable(ctx *Context, ct *sqlast.CreateTable) error {
	fields := make([]ir.Field, 0, len(ct.Columns))
	for _, col := range ct.Columns {
		t, err := lowerColumnType(col, ct)
		if err != nil {
			return err
		}
		fields = append(fields, ir.Field{Name: col.Name, Type: t})
	}

	row, err := ir.NewStructType(fields)
	if err != nil {
		return newTranslationError("translate-create-table", ct, err)
	}

	for _, pk := range ct.PrimaryKey {
		if _, ok := row.FieldByName(pk); !ok {
			return newTranslationError("translate-create-table", ct,
				dlsql.NewUnknownColumnError(ct.Name, pk))
		}
	}

	typeName := TypeNameForTable(ct.Name)
	if err := ctx.AddTypeDef(ir.TypeDef{Name: typeName, Type: row}); err != nil {
		return newTranslationError("translate-create-table", ct, err)
	}

	relName := RelationNameForTable(ct.Name)
	if err := ctx.AddRelation(ir.Relation{
		Name:    relName,
		Role:    ir.Input,
		RowType: ir.NamedType{Name: typeName},
	}); err != nil {
		return newTranslationError("translate-create-table", ct, err)
	}

	return ctx.AddTable(TableSchema{
		TableName:    ct.Name,
		TypeName:     typeName,
		RelationName: relName,
		Row:          row,
		PrimaryKey:   append([]string(nil), ct.PrimaryKey...),
	})
}

// TranslateCreateView lowers a CREATE VIEW statement into an Output
// relation named literally after the view plus whatever Internal
// relations and rules its query body needs.
func TranslateCreateView(ctx *Context, cv *sqlast.CreateView) error {
	ln := newLocalNamer()
	relName := cv.Name

	row, typeName, err := compileSelectQuery(ctx, ln, cv.Query, relName)
	if err != nil {
		return newTranslationError("translate-create-view", cv, err)
	}

	// typeName already names a registered type-def: either the source
	// table/view's own (a star passthrough), or the projection's internal
	// type-def (compileSelectQuery minted and added it). The view's row
	// type is that same type-def, reused, never a fresh one.
	if err := ctx.AddRelation(ir.Relation{
		Name:    relName,
		Role:    ir.Output,
		RowType: ir.NamedType{Name: typeName},
	}); err != nil {
		return newTranslationError("translate-create-view", cv, err)
	}

	return ctx.AddView(ViewSchema{
		ViewName:     cv.Name,
		TypeName:     typeName,
		RelationName: relName,
		Row:          row,
	})
}

// TranslateDDL dispatches a parsed DDL statement to the matching
// translator. Like the two Translate* functions above it works on the
// caller's *Context; callers load a whole schema batch through one
// shared Context so cross-statement references (a view's FROM a
// previously declared table) resolve.
func TranslateDDL(ctx *Context, stmt sqlast.DDLStmt) error {
	switch s := stmt.(type) {
	case *sqlast.CreateTable:
		return TranslateCreateTable(ctx, s)
	case *sqlast.CreateView:
		return TranslateCreateView(ctx, s)
	default:
		return newTranslationError("translate-ddl", stmt, dlsql.NewUnsupportedConstructError("unknown DDL statement"))
	}
}
