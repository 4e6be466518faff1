package runtime

import (
	"context"

	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/catalog"
	"github.com/dlsql/dlsql/codec"
	"github.com/dlsql/dlsql/engine"
	"github.com/dlsql/dlsql/ir"
	"github.com/dlsql/dlsql/sqlast"
)

// dispatch parses stmt.SQL against the DML dialect and routes it to the
// matching handler by the parsed AST's root kind.
func (d *Dispatcher) dispatch(ctx context.Context, stmt Statement) (Result, error) {
	parsed, err := sqlast.ParseDML(stmt.SQL)
	if err != nil {
		return Result{}, err
	}

	switch s := parsed.(type) {
	case *sqlast.InsertStmt:
		return d.execInsert(ctx, s, stmt.Bindings)
	case *sqlast.DeleteStmt:
		return d.execDelete(ctx, s, stmt.Bindings)
	case *sqlast.SelectStarStmt:
		return d.execSelect(ctx, s)
	default:
		return Result{}, dlsql.NewUnsupportedConstructError("unrecognized DML statement")
	}
}

func (d *Dispatcher) lookupTableBinding(name string) (tableBinding, error) {
	b, ok := d.tables[catalog.CanonicalName(name)]
	if !ok {
		return tableBinding{}, dlsql.NewUnknownTableError(name)
	}
	return b, nil
}

func (d *Dispatcher) execInsert(ctx context.Context, ins *sqlast.InsertStmt, bindings []any) (Result, error) {
	table, err := d.lookupTableBinding(ins.Table)
	if err != nil {
		return Result{}, err
	}
	catInfo, err := d.cat.MustLookup(ins.Table)
	if err != nil {
		return Result{}, err
	}
	tableID, err := d.eng.GetTableID(ctx, table.RelationName)
	if err != nil {
		return Result{}, err
	}

	bindingIdx := 0
	cmds := make([]engine.Command, 0, len(ins.Rows))
	for _, row := range ins.Rows {
		if len(row) != len(table.Row.Fields) {
			return Result{}, &ArityMismatchError{Table: table.TableName, Want: len(table.Row.Fields), Got: len(row)}
		}
		fields := make([]engine.StructField, len(row))
		for i, valExpr := range row {
			fieldType := table.Row.Fields[i].Type
			nullable := i < len(catInfo.Columns) && catInfo.Columns[i].Nullable

			var rec engine.Record
			switch v := valExpr.(type) {
			case *sqlast.Placeholder:
				if bindingIdx >= len(bindings) {
					return Result{}, dlsql.NewUnsupportedConstructError("insert has more placeholders than bindings")
				}
				rec, err = codec.EncodeParam(fieldType, nullable, bindings[bindingIdx])
				bindingIdx++
			case *sqlast.Literal:
				rec, err = codec.EncodeLiteral(fieldType, nullable, v)
			default:
				err = dlsql.NewUnsupportedConstructError("insert value must be a literal or a bound parameter")
			}
			if err != nil {
				return Result{}, err
			}
			fields[i] = engine.StructField{Name: table.Row.Fields[i].Name, Value: rec}
		}
		cmds = append(cmds, engine.Command{
			Kind:    engine.Insert,
			TableID: tableID,
			Record:  engine.Struct{Tag: table.TypeName, Fields: fields},
		})
	}

	if err := d.eng.ApplyUpdates(ctx, cmds); err != nil {
		return Result{}, err
	}
	return Result{UpdateCount: len(ins.Rows)}, nil
}

// flattenConjunction splits a top-level chain of AND-joined BinaryExprs
// into its individual equality comparisons, rejecting any non-equality,
// non-AND operator.
func flattenConjunction(expr sqlast.Expr) ([]*sqlast.BinaryExpr, error) {
	be, ok := expr.(*sqlast.BinaryExpr)
	if !ok {
		return nil, dlsql.NewUnsupportedConstructError("WHERE clause must be a conjunction of column = value")
	}
	if be.Op == "AND" {
		left, err := flattenConjunction(be.Left)
		if err != nil {
			return nil, err
		}
		right, err := flattenConjunction(be.Right)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	}
	if be.Op != "=" {
		return nil, dlsql.NewUnsupportedConstructError("DELETE predicate operator must be =")
	}
	return []*sqlast.BinaryExpr{be}, nil
}

// columnAndValue splits one `col = value` equality into its identifier
// side and its value-expression side, in either order.
func columnAndValue(eq *sqlast.BinaryExpr) (string, sqlast.Expr, error) {
	if id, ok := eq.Left.(*sqlast.Ident); ok {
		return lastSegment(id), eq.Right, nil
	}
	if id, ok := eq.Right.(*sqlast.Ident); ok {
		return lastSegment(id), eq.Left, nil
	}
	return "", nil, dlsql.NewUnsupportedConstructError("equality has no column identifier side")
}

func lastSegment(id *sqlast.Ident) string {
	return id.Parts[len(id.Parts)-1]
}

func (d *Dispatcher) execDelete(ctx context.Context, del *sqlast.DeleteStmt, bindings []any) (Result, error) {
	if del.Where == nil {
		return Result{}, ErrMissingWhere
	}
	table, err := d.lookupTableBinding(del.Table)
	if err != nil {
		return Result{}, err
	}
	catInfo, err := d.cat.MustLookup(del.Table)
	if err != nil {
		return Result{}, err
	}

	eqs, err := flattenConjunction(del.Where)
	if err != nil {
		return Result{}, err
	}

	values := make([]engine.Record, len(table.PrimaryKey))
	covered := make([]bool, len(table.PrimaryKey))
	bindingIdx := 0

	for _, eq := range eqs {
		colName, valExpr, err := columnAndValue(eq)
		if err != nil {
			return Result{}, err
		}
		pkIdx := indexOf(table.PrimaryKey, colName)
		if pkIdx < 0 {
			return Result{}, dlsql.NewUnsupportedConstructError("DELETE predicate column is not part of the primary key: " + colName)
		}
		fieldIdx := fieldIndexByName(table.Row, colName)
		if fieldIdx < 0 {
			return Result{}, dlsql.NewUnknownColumnError(table.TableName, colName)
		}
		fieldType := table.Row.Fields[fieldIdx].Type
		nullable := fieldIdx < len(catInfo.Columns) && catInfo.Columns[fieldIdx].Nullable

		var rec engine.Record
		switch v := valExpr.(type) {
		case *sqlast.Placeholder:
			if bindingIdx >= len(bindings) {
				return Result{}, dlsql.NewUnsupportedConstructError("delete has more placeholders than bindings")
			}
			rec, err = codec.EncodeParam(fieldType, nullable, bindings[bindingIdx])
			bindingIdx++
		case *sqlast.Literal:
			rec, err = codec.EncodeLiteral(fieldType, nullable, v)
		default:
			err = dlsql.NewUnsupportedConstructError("delete predicate value must be a literal or a bound parameter")
		}
		if err != nil {
			return Result{}, err
		}
		values[pkIdx] = rec
		covered[pkIdx] = true
	}

	var missing []string
	for i, ok := range covered {
		if !ok {
			missing = append(missing, table.PrimaryKey[i])
		}
	}
	if len(missing) > 0 {
		return Result{}, &PrimaryKeyCoverageError{Table: table.TableName, Missing: missing}
	}

	var key engine.Record
	if len(values) >= 2 {
		key = engine.Tuple{Elements: values}
	} else {
		key = values[0]
	}

	tableID, err := d.eng.GetTableID(ctx, table.RelationName)
	if err != nil {
		return Result{}, err
	}
	cmd := engine.Command{Kind: engine.DeleteKey, TableID: tableID, Record: key}
	if err := d.eng.ApplyUpdates(ctx, []engine.Command{cmd}); err != nil {
		return Result{}, err
	}
	return Result{UpdateCount: 1}, nil
}

func indexOf(ss []string, target string) int {
	for i, s := range ss {
		if s == target {
			return i
		}
	}
	return -1
}

func fieldIndexByName(row ir.StructType, name string) int {
	for i, f := range row.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (d *Dispatcher) execSelect(ctx context.Context, sel *sqlast.SelectStarStmt) (Result, error) {
	info, err := d.cat.MustLookup(sel.Table)
	if err != nil {
		return Result{}, err
	}
	rows, err := d.views.Snapshot(ctx, sel.Table)
	if err != nil {
		return Result{}, err
	}
	return Result{Rows: &ResultSet{Columns: info.Columns, Rows: rows}}, nil
}
