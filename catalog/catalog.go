// Package catalog builds a temporary metadata catalog: an ordered,
// canonicalized mapping from
// table/view name to field layout and primary key, populated once at
// initialization by running the same DDL list through a second, real SQL
// engine (an embedded modernc.org/sqlite database) and reading its
// authoritative column order, nullability, and primary-key set back out
// through ariga.io/atlas's inspector — independently of the compiler
// package's own translation of the identical DDL text.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dlsql/dlsql"
)

// ColumnInfo is one field of a table or view, in declaration order.
type ColumnInfo struct {
	Name     string
	Position int
	SQLType  string
	Nullable bool
}

// TableInfo describes one table or view's field layout and, for tables,
// primary key. PrimaryKey is nil for views: DML never mutates a view
// directly, so it has no pk to match against.
type TableInfo struct {
	Name       string
	Columns    []ColumnInfo
	PrimaryKey []string
}

// ColumnByName returns the column with the given name and whether it
// exists.
func (t TableInfo) ColumnByName(name string) (ColumnInfo, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}

var canonicalizer = cases.Upper(language.Und)

// CanonicalName upper-cases a table or view name the same way the
// materialized-view store does, so a lookup against either one agrees
// regardless of the case the caller used.
func CanonicalName(name string) string {
	return canonicalizer.String(name)
}

// Catalog is the immutable, initialization-time metadata store.
type Catalog struct {
	order []string
	byName map[string]TableInfo
}

// Load replays the ddl text, statement by statement, against a fresh
// in-memory sqlite database and builds a Catalog from that database's own
// column/primary-key introspection. The text is not parsed by sqlast.
func Load(ctx context.Context, ddl []string) (*Catalog, error) {
	sch, err := inspectViaSQLite(ctx, ddl)
	if err != nil {
		return nil, err
	}

	c := &Catalog{byName: make(map[string]TableInfo)}
	for _, t := range sch.Tables {
		info := tableInfoFromSchema(t)
		c.add(info)
	}
	for _, v := range sch.Views {
		info := viewInfoFromSchema(v)
		c.add(info)
	}
	return c, nil
}

func (c *Catalog) add(info TableInfo) {
	key := CanonicalName(info.Name)
	if _, exists := c.byName[key]; exists {
		return
	}
	c.byName[key] = info
	c.order = append(c.order, key)
}

// Lookup resolves a table or view by name, case-insensitively.
func (c *Catalog) Lookup(name string) (TableInfo, bool) {
	info, ok := c.byName[CanonicalName(name)]
	return info, ok
}

// MustLookup is Lookup wrapped in dlsql's UnknownTableError for callers
// that want the typed error directly.
func (c *Catalog) MustLookup(name string) (TableInfo, error) {
	info, ok := c.Lookup(name)
	if !ok {
		return TableInfo{}, dlsql.NewUnknownTableError(name)
	}
	return info, nil
}

// Tables returns every registered table/view in first-seen order.
func (c *Catalog) Tables() []TableInfo {
	out := make([]TableInfo, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.byName[k])
	}
	return out
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog.Catalog{%d tables/views}", len(c.order))
}
