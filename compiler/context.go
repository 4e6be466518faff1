package compiler

import (
	"github.com/dlsql/dlsql"
	"github.com/dlsql/dlsql/ir"
)

// scopeEntry binds one row variable to its struct type and the table or
// view name it came from, for unqualified column resolution and for
// UnknownColumnError's diagnostic.
type scopeEntry struct {
	sourceName string
	rowVar     ir.VarRef
	rowType    ir.StructType
}

// Context accumulates one DDL-list translation: the type and relation
// registries that become the emitted ir.Program, the compiler-only table
// and view schema bookkeeping, the global fresh-name namespace, and the
// active column-resolution scope. One Context is built per schema load —
// a DDL batch translates as a unit.
type Context struct {
	types     *ir.TypeRegistry
	relations *ir.RelationRegistry
	schemas   *schemaRegistry
	decls     []ir.Declaration
	global    globalNamer
	scopes    []scopeEntry
}

// NewContext returns an empty translation context.
func NewContext() *Context {
	return &Context{
		types:     ir.NewTypeRegistry(),
		relations: ir.NewRelationRegistry(),
		schemas:   newSchemaRegistry(),
	}
}

// FreshGlobalName issues the next name in the `tmp` namespace, used for
// compiler-introduced type-defs and internal relations.
func (c *Context) FreshGlobalName() string { return c.global.fresh() }

// AddTypeDef registers td and records it in declaration order. It returns
// ErrDuplicateName if the name collides with an existing type-def — for a
// fresh `tmp` name that signals a bug in name issuance; for a table's own
// type name it means the same table was declared twice.
func (c *Context) AddTypeDef(td ir.TypeDef) error {
	if !c.types.Add(td) {
		return ErrDuplicateName
	}
	c.decls = append(c.decls, ir.TypeDefDecl{TypeDef: td})
	return nil
}

// AddRelation registers rel and records it in declaration order.
func (c *Context) AddRelation(rel ir.Relation) error {
	if !c.relations.Add(rel) {
		return ErrDuplicateName
	}
	c.decls = append(c.decls, ir.RelationDecl{Relation: rel})
	return nil
}

// AddRule appends r to the emitted declaration sequence.
func (c *Context) AddRule(r ir.Rule) {
	c.decls = append(c.decls, ir.RuleDecl{Rule: r})
}

// LookupRelation resolves a relation by its IR name.
func (c *Context) LookupRelation(name string) (ir.Relation, bool) {
	return c.relations.Lookup(name)
}

// AddTable records a CREATE TABLE's schema alongside its type-def and
// relation; TranslateCreateTable is the only caller.
func (c *Context) AddTable(s TableSchema) error {
	if !c.schemas.addTable(s) {
		return ErrDuplicateName
	}
	return nil
}

// LookupTable resolves a user table by its SQL name.
func (c *Context) LookupTable(name string) (TableSchema, bool) {
	return c.schemas.lookupTable(name)
}

// Tables returns every registered table schema in CREATE TABLE order.
func (c *Context) Tables() []TableSchema { return c.schemas.allTables() }

// AddView records a CREATE VIEW's schema; TranslateCreateView is the only
// caller.
func (c *Context) AddView(s ViewSchema) error {
	if !c.schemas.addView(s) {
		return ErrDuplicateName
	}
	return nil
}

// LookupView resolves a view by its SQL name.
func (c *Context) LookupView(name string) (ViewSchema, bool) {
	return c.schemas.lookupView(name)
}

// Views returns every registered view schema in CREATE VIEW order.
func (c *Context) Views() []ViewSchema { return c.schemas.allViews() }

// Program returns the accumulated declarations as an ir.Program, in the
// order they were added.
func (c *Context) Program() *ir.Program {
	return &ir.Program{Declarations: append([]ir.Declaration(nil), c.decls...)}
}

// EnterScope pushes a new row-variable binding onto the column-resolution
// stack. Query translation pushes exactly one scope per FROM source it
// compiles and pops it with ExitScope once that source's body fragments
// are built.
func (c *Context) EnterScope(sourceName string, rowVar ir.VarRef, rowType ir.StructType) {
	c.scopes = append(c.scopes, scopeEntry{sourceName: sourceName, rowVar: rowVar, rowType: rowType})
}

// ExitScope pops the innermost scope pushed by EnterScope.
func (c *Context) ExitScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// ResolveColumn resolves an unqualified column name against the innermost
// active scope, returning a FieldAccess rooted at that scope's row
// variable. It searches only the innermost scope: this core never joins
// two FROM sources into one scope frame, so the stack's depth is always
// at most one at resolution time.
func (c *Context) ResolveColumn(name string) (ir.Expr, error) {
	if len(c.scopes) == 0 {
		return nil, dlsql.NewUnknownColumnError("", name)
	}
	top := c.scopes[len(c.scopes)-1]
	field, ok := top.rowType.FieldByName(name)
	if !ok {
		return nil, dlsql.NewUnknownColumnError(top.sourceName, name)
	}
	return ir.FieldAccess{Row: top.rowVar, Field: field.Name, Typ: field.Type}, nil
}
