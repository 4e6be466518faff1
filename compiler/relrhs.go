package compiler

import "github.com/dlsql/dlsql/ir"

// RelationRHS accumulates one rule's right-hand side while a query
// translates: the row variable the body is being built around, and the
// body fragments collected so far. It is the central working object for
// compileSelectQuery — every FROM, WHERE, and SELECT clause appends to
// one RelationRHS before it is closed off into an ir.Rule.
type RelationRHS struct {
	rowVar ir.VarRef
	body   []ir.BodyFragment
}

// NewRelationRHS starts a RelationRHS rooted at a literal body fragment
// over sourceRelation: the row variable bound to that atom is the RHS's
// row variable from then on.
func NewRelationRHS(rowVar ir.VarRef, sourceRelation string) *RelationRHS {
	return &RelationRHS{
		rowVar: rowVar,
		body: []ir.BodyFragment{
			ir.LiteralFragment{Atom: ir.Atom{Relation: sourceRelation, Row: rowVar}},
		},
	}
}

// RowRef returns the RHS's current row variable as a use-site reference.
func (r *RelationRHS) RowRef() ir.VarRef { return r.rowVar }

// AppendCondition appends a filter or assignment-binding fragment.
func (r *RelationRHS) AppendCondition(e ir.Expr) {
	r.body = append(r.body, ir.ConditionFragment{Expr: e})
}

// AppendLiteral appends a positive atom fragment.
func (r *RelationRHS) AppendLiteral(a ir.Atom) {
	r.body = append(r.body, ir.LiteralFragment{Atom: a})
}

// Body returns the accumulated fragments in append order.
func (r *RelationRHS) Body() []ir.BodyFragment {
	return append([]ir.BodyFragment(nil), r.body...)
}

// Close builds the ir.Rule `head :- body...` for headRelation with the
// given head row expression.
func (r *RelationRHS) Close(headRelation string, headRow ir.Expr) ir.Rule {
	return ir.Rule{
		Head: ir.Atom{Relation: headRelation, Row: headRow},
		Body: r.Body(),
	}
}
