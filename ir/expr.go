package ir

// Expr is the closed variant of scalar/row expressions usable inside rule
// bodies and heads.
type Expr interface {
	isExpr()
	Type() Type
}

// VarRef is a *use-site* reference to a previously-bound row or scalar
// variable. See VarDecl for the declaration-site counterpart; the two are
// distinct constructors so the compiler cannot accidentally emit a second
// declaration where only a reference was intended.
type VarRef struct {
	Name string
	Typ  Type
}

func (VarRef) isExpr()      {}
func (v VarRef) Type() Type { return v.Typ }

// VarDecl is the *declaration-site* binding of a fresh variable to a value
// expression. It may appear exactly once per variable in a well-formed
// program; nothing in this package enforces that globally (that is
// compiler.Context's job via fresh-name issuance), but every VarDecl
// constructed here is, by construction, a single binding occurrence.
type VarDecl struct {
	Name  string
	Value Expr
}

func (VarDecl) isExpr()      {}
func (v VarDecl) Type() Type { return v.Value.Type() }

// FieldValue is one (name, value) pair inside a StructCtor.
type FieldValue struct {
	Name  string
	Value Expr
}

// StructCtor constructs a struct-typed value from an ordered list of field
// values, matching ResultType's field order exactly.
type StructCtor struct {
	ResultType StructType
	Fields     []FieldValue
}

func (StructCtor) isExpr()      {}
func (s StructCtor) Type() Type { return s.ResultType }

// FieldAccess projects one field out of a row expression, e.g. `v1.id`.
type FieldAccess struct {
	Row   Expr
	Field string
	Typ   Type
}

func (FieldAccess) isExpr()      {}
func (f FieldAccess) Type() Type { return f.Typ }

// Literal is a constant-folded scalar value carried alongside its IR type.
type Literal struct {
	Value any // bool | int64 | *big.Int (via ArbitraryIntType) | string
	Typ   Type
}

func (Literal) isExpr()      {}
func (l Literal) Type() Type { return l.Typ }

// BinOp is a binary comparison, used by translated view WHERE predicates.
// The compiler only emits equality (Op "=="), but the shape is general
// enough for any future comparator without a rewrite.
type BinOp struct {
	Op    string // "=="
	Left  Expr
	Right Expr
}

func (BinOp) isExpr()      {}
func (BinOp) Type() Type   { return BoolType{} }
