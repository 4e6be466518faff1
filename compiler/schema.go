package compiler

import "github.com/dlsql/dlsql/ir"

// TableSchema is what TranslateCreateTable records about one user table:
// enough for a DML dispatcher to build primary-key match-expressions and
// for a catalog consumer to describe the table without re-parsing DDL.
type TableSchema struct {
	TableName    string
	TypeName     string
	RelationName string
	Row          ir.StructType
	PrimaryKey   []string
}

// ViewSchema is the equivalent record for a CREATE VIEW: no primary key,
// since views are never directly mutated by DML.
type ViewSchema struct {
	ViewName     string
	TypeName     string
	RelationName string
	Row          ir.StructType
}

// schemaRegistry is an insertion-ordered, name-unique set of table and
// view schemas, kept separately from ir.RelationRegistry because it
// carries compiler-only bookkeeping (primary keys) that has no place in
// the emitted ir.Program.
type schemaRegistry struct {
	tableOrder []string
	tables     map[string]TableSchema
	viewOrder  []string
	views      map[string]ViewSchema
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{
		tables: make(map[string]TableSchema),
		views:  make(map[string]ViewSchema),
	}
}

func (r *schemaRegistry) addTable(s TableSchema) bool {
	if _, ok := r.tables[s.TableName]; ok {
		return false
	}
	r.tables[s.TableName] = s
	r.tableOrder = append(r.tableOrder, s.TableName)
	return true
}

func (r *schemaRegistry) lookupTable(name string) (TableSchema, bool) {
	s, ok := r.tables[name]
	return s, ok
}

func (r *schemaRegistry) allTables() []TableSchema {
	out := make([]TableSchema, 0, len(r.tableOrder))
	for _, n := range r.tableOrder {
		out = append(out, r.tables[n])
	}
	return out
}

func (r *schemaRegistry) addView(s ViewSchema) bool {
	if _, ok := r.views[s.ViewName]; ok {
		return false
	}
	r.views[s.ViewName] = s
	r.viewOrder = append(r.viewOrder, s.ViewName)
	return true
}

func (r *schemaRegistry) lookupView(name string) (ViewSchema, bool) {
	s, ok := r.views[name]
	return s, ok
}

func (r *schemaRegistry) allViews() []ViewSchema {
	out := make([]ViewSchema, 0, len(r.viewOrder))
	for _, n := range r.viewOrder {
		out = append(out, r.views[n])
	}
	return out
}
