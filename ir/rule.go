package ir

// BodyFragment is one element of a rule's right-hand side: either a
// positive literal atom over a source relation, or a condition (a filter
// or an assignment-binding). Negated literals are not required by this
// core and so have no variant here.
type BodyFragment interface {
	isBodyFragment()
}

// Literal fragment: a positive atom, e.g. `Rhosts(v1)`.
type LiteralFragment struct {
	Atom Atom
}

func (LiteralFragment) isBodyFragment() {}

// ConditionFragment is a filter (BinOp) or an assignment-binding (VarDecl)
// appended to a rule body. WHERE clauses translate to the former;
// projections and subquery row-variable bindings translate to the latter.
type ConditionFragment struct {
	Expr Expr
}

func (ConditionFragment) isBodyFragment() {}

// Rule is `head :- body₁, body₂, …`.
type Rule struct {
	Head Atom
	Body []BodyFragment
}

// Declaration is the closed variant of things compiler.Context's
// AddTypeDef/AddRelation/AddRule append to the emitted Program: a
// type-def, a relation, or a rule.
type Declaration interface {
	isDeclaration()
}

type TypeDefDecl struct{ TypeDef TypeDef }

func (TypeDefDecl) isDeclaration() {}

type RelationDecl struct{ Relation Relation }

func (RelationDecl) isDeclaration() {}

type RuleDecl struct{ Rule Rule }

func (RuleDecl) isDeclaration() {}

// Program is the ordered sequence of declarations the compiler emits, ready
// to load into the engine.
type Program struct {
	Declarations []Declaration
}

// TypeDefs returns the type-defs declared in the program, in order.
func (p *Program) TypeDefs() []TypeDef {
	var out []TypeDef
	for _, d := range p.Declarations {
		if td, ok := d.(TypeDefDecl); ok {
			out = append(out, td.TypeDef)
		}
	}
	return out
}

// Relations returns the relations declared in the program, in order.
func (p *Program) Relations() []Relation {
	var out []Relation
	for _, d := range p.Declarations {
		if rd, ok := d.(RelationDecl); ok {
			out = append(out, rd.Relation)
		}
	}
	return out
}

// Rules returns the rules declared in the program, in order.
func (p *Program) Rules() []Rule {
	var out []Rule
	for _, d := range p.Declarations {
		if rd, ok := d.(RuleDecl); ok {
			out = append(out, rd.Rule)
		}
	}
	return out
}

// RulesWithHead returns every rule whose head relation matches name.
func (p *Program) RulesWithHead(name string) []Rule {
	var out []Rule
	for _, r := range p.Rules() {
		if r.Head.Relation == name {
			out = append(out, r)
		}
	}
	return out
}
