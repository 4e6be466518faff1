package compiler

import (
	"strconv"

	"github.com/go-openapi/inflect"

	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/ir"
	"github.com/dlsql/dlsql/sqlast"
)

// compileSelectQuery translates one SELECT DISTINCT ... FROM ... [WHERE
// ...] body into rules that feed headRelation, returning the row type
// those rules produce and the name of the existing type-def that row type
// is already registered under. It is shared by TranslateCreateView (for
// the view's own query) and compileFromSource (for a subquery's query),
// with ln threaded through both so row-variable names stay unique across
// the whole CREATE VIEW statement.
func compileSelectQuery(ctx *Context, ln *localNamer, q *sqlast.SelectQuery, headRelation string) (ir.StructType, string, error) {
	if !q.Distinct {
		return ir.StructType{}, "", newTranslationError("compile-select", q, dlsql.NewUnsupportedConstructError("SELECT without DISTINCT"))
	}

	sourceRelation, sourceRow, sourceTypeName, sourceName, err := compileFromSource(ctx, ln, q.From)
	if err != nil {
		return ir.StructType{}, "", err
	}

	rowVar := ir.VarRef{Name: ln.freshVar(), Typ: sourceRow}
	rhs := NewRelationRHS(rowVar, sourceRelation)

	ctx.EnterScope(sourceName, rowVar, sourceRow)
	defer ctx.ExitScope()

	if q.Where != nil {
		conds, err := translateWhereConditions(ctx, q.Where)
		if err != nil {
			return ir.StructType{}, "", err
		}
		for _, c := range conds {
			rhs.AppendCondition(c)
		}
	}

	if isStarProjection(q.Items) {
		ctx.AddRule(rhs.Close(headRelation, rowVar))
		return sourceRow, sourceTypeName, nil
	}

	resultType, ctor, err := buildProjection(ctx, ln, q.Items)
	if err != nil {
		return ir.StructType{}, "", err
	}

	// The projected struct binds to its own Internal relation first, then
	// a second rule restates that relation into headRelation. Two rules
	// rather than one keep the projection's row-variable declaration (a
	// VarDecl, bound exactly once) separate from the reference headRelation's
	// rule makes to it (a VarRef), mirroring how a FROM-subquery's result
	// is threaded into its enclosing query.
	outVar := ln.freshVar()
	rhs.AppendCondition(ir.VarDecl{Name: outVar, Value: ctor})
	projRelation := ctx.FreshGlobalName()
	projType := ctx.FreshGlobalName()
	ctx.AddRule(rhs.Close(projRelation, ir.VarRef{Name: outVar, Typ: resultType}))

	if err := ctx.AddTypeDef(ir.TypeDef{Name: projType, Type: resultType}); err != nil {
		return ir.StructType{}, "", err
	}
	if err := ctx.AddRelation(ir.Relation{
		Name:    projRelation,
		Role:    ir.Internal,
		RowType: ir.NamedType{Name: projType},
	}); err != nil {
		return ir.StructType{}, "", err
	}

	bindVar := ir.VarRef{Name: ln.freshVar(), Typ: resultType}
	ctx.AddRule(ir.Rule{
		Head: ir.Atom{Relation: headRelation, Row: bindVar},
		Body: []ir.BodyFragment{ir.LiteralFragment{Atom: ir.Atom{Relation: projRelation, Row: bindVar}}},
	})

	return resultType, projType, nil
}

func isStarProjection(items []sqlast.SelectItem) bool {
	return len(items) == 1 && items[0].Star
}

// compileFromSource resolves a FROM clause to the relation it reads from,
// that relation's row type and the existing type-def name it is already
// registered under, and a name to use in diagnostics. A table or view
// reference resolves directly; a subquery compiles recursively into its
// own Internal relation first.
func compileFromSource(ctx *Context, ln *localNamer, src sqlast.FromSource) (relation string, row ir.StructType, typeName string, name string, err error) {
	switch s := src.(type) {
	case *sqlast.TableRef:
		if t, ok := ctx.LookupTable(s.Name); ok {
			return t.RelationName, t.Row, t.TypeName, t.TableName, nil
		}
		if v, ok := ctx.LookupView(s.Name); ok {
			return v.RelationName, v.Row, v.TypeName, v.ViewName, nil
		}
		return "", ir.StructType{}, "", "", newTranslationError("compile-from", s, dlsql.NewUnknownTableError(s.Name))

	case *sqlast.SubquerySource:
		subRelation := ctx.FreshGlobalName()
		subRow, subTypeName, err := compileSelectQuery(ctx, ln, s.Query, subRelation)
		if err != nil {
			return "", ir.StructType{}, "", "", err
		}
		if err := ctx.AddRelation(ir.Relation{
			Name:    subRelation,
			Role:    ir.Internal,
			RowType: ir.NamedType{Name: subTypeName},
		}); err != nil {
			return "", ir.StructType{}, "", "", err
		}
		return subRelation, subRow, subTypeName, subRelation, nil

	default:
		return "", ir.StructType{}, "", "", newTranslationError("compile-from", src, dlsql.NewUnsupportedConstructError("unknown FROM source"))
	}
}

// translateWhereConditions flattens a WHERE expression's top-level AND
// chain into independent condition expressions; each conjunct becomes its
// own ConditionFragment in the emitted rule body.
func translateWhereConditions(ctx *Context, expr sqlast.Expr) ([]ir.Expr, error) {
	bin, ok := expr.(*sqlast.BinaryExpr)
	if ok && bin.Op == "AND" {
		left, err := translateWhereConditions(ctx, bin.Left)
		if err != nil {
			return nil, err
		}
		right, err := translateWhereConditions(ctx, bin.Right)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	}
	if !ok || bin.Op != "=" {
		return nil, newTranslationError("translate-where", expr, dlsql.NewUnsupportedConstructError("WHERE clauses in this core only support = and AND"))
	}

	left, err := translateValueExpr(ctx, bin.Left)
	if err != nil {
		return nil, err
	}
	right, err := translateValueExpr(ctx, bin.Right)
	if err != nil {
		return nil, err
	}
	return []ir.Expr{ir.BinOp{Op: "==", Left: left, Right: right}}, nil
}

// buildProjection translates a non-star SELECT item list into the struct
// type and constructor expression the projection produces, rejecting
// duplicate output column names. Each item's field name follows a fixed
// precedence: an explicit AS alias, then a bare identifier's own name,
// then a fresh ln-issued column name for anything else (a literal, a
// comparison, any expression with no name of its own to borrow).
func buildProjection(ctx *Context, ln *localNamer, items []sqlast.SelectItem) (ir.StructType, ir.StructCtor, error) {
	fields := make([]ir.Field, 0, len(items))
	values := make([]ir.FieldValue, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		if item.Star {
			return ir.StructType{}, ir.StructCtor{}, newTranslationError("build-projection", item.Expr,
				dlsql.NewUnsupportedConstructError("SELECT * cannot be mixed with other items"))
		}

		val, err := translateValueExpr(ctx, item.Expr)
		if err != nil {
			return ir.StructType{}, ir.StructCtor{}, err
		}

		name := item.Alias
		if name == "" {
			if ident, ok := item.Expr.(*sqlast.Ident); ok {
				name = derivedColumnName(ident)
			} else {
				name = ln.freshCol()
			}
		}
		if seen[name] {
			return ir.StructType{}, ir.StructCtor{}, newTranslationError("build-projection", item.Expr, ErrDuplicateProjectionName)
		}
		seen[name] = true

		fields = append(fields, ir.Field{Name: name, Type: val.Type()})
		values = append(values, ir.FieldValue{Name: name, Value: val})
	}

	resultType, err := ir.NewStructType(fields)
	if err != nil {
		return ir.StructType{}, ir.StructCtor{}, err
	}
	return resultType, ir.StructCtor{ResultType: resultType, Fields: values}, nil
}

// translateValueExpr translates a column reference or literal appearing
// in a SELECT item or WHERE comparand. A dotted identifier's column is
// always its last part: this core never introduces a FROM-clause alias,
// so any qualifier is either the table's own name or noise the caller
// added, and the column it names is unambiguous either way.
func translateValueExpr(ctx *Context, expr sqlast.Expr) (ir.Expr, error) {
	switch e := expr.(type) {
	case *sqlast.Ident:
		ref, err := ctx.ResolveColumn(e.Parts[len(e.Parts)-1])
		if err != nil {
			return nil, newTranslationError("translate-value", e, err)
		}
		return ref, nil
	case *sqlast.Literal:
		return translateLiteral(e)
	default:
		return nil, newTranslationError("translate-value", expr, dlsql.NewUnsupportedConstructError("unsupported value expression"))
	}
}

// derivedColumnName turns a projected identifier into the canonical field
// name a bare alias-less SELECT item gets: the identifier's last segment,
// run through inflect's underscore
// canonicalization so a mixed-case or dotted source column always
// produces a stable snake_case field name.
func derivedColumnName(ident *sqlast.Ident) string {
	return inflect.Underscore(ident.Parts[len(ident.Parts)-1])
}

func translateLiteral(lit *sqlast.Literal) (ir.Expr, error) {
	switch lit.Kind {
	case sqlast.LiteralNumber:
		n, err := strconv.ParseInt(lit.Text, 10, 64)
		if err != nil {
			return nil, newTranslationError("translate-literal", lit, err)
		}
		return ir.Literal{Value: n, Typ: ir.SignedType{Width: 64}}, nil
	case sqlast.LiteralString:
		return ir.Literal{Value: lit.Text, Typ: ir.StringType{}}, nil
	case sqlast.LiteralBool:
		return ir.Literal{Value: lit.Text == "true", Typ: ir.BoolType{}}, nil
	default:
		return nil, newTranslationError("translate-literal", lit, dlsql.NewUnsupportedConstructError("NULL is not supported in this position"))
	}
}
