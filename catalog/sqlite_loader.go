package catalog

import (
	"context"
	"database/sql"
	"fmt"

	atlasschema "ariga.io/atlas/sql/schema"
	atlassqlite "ariga.io/atlas/sql/sqlite"
	_ "modernc.org/sqlite"
)

// inspectViaSQLite replays ddl, statement by statement, against a fresh
// in-memory sqlite database and returns atlas's own inspection of the
// result. This core's DDL grammar is a strict subset of standard SQL —
// CREATE TABLE with PRIMARY KEY, CREATE VIEW AS SELECT DISTINCT ... FROM
// ... WHERE <equalities joined by AND> — so the exact text the
// hand-written compiler parser accepted is also valid SQLite DDL, with no
// translation step in between. This is a second dialect only in the sense
// that a second, independent parser (sqlite's own) reaches the same
// conclusions about field order, nullability, and primary keys.
func inspectViaSQLite(ctx context.Context, ddl []string) (*atlasschema.Schema, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("catalog: open in-memory sqlite: %w", err)
	}
	defer db.Close()

	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("catalog: sqlite rejected DDL %q: %w", stmt, err)
		}
	}

	drv, err := atlassqlite.Open(db)
	if err != nil {
		return nil, fmt.Errorf("catalog: open atlas sqlite driver: %w", err)
	}
	sch, err := drv.InspectSchema(ctx, "main", nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: inspect schema: %w", err)
	}
	return sch, nil
}

func tableInfoFromSchema(t *atlasschema.Table) TableInfo {
	info := TableInfo{
		Name:    t.Name,
		Columns: columnsFromSchema(t.Columns),
	}
	if t.PrimaryKey != nil {
		for _, part := range t.PrimaryKey.Parts {
			if part.C != nil {
				info.PrimaryKey = append(info.PrimaryKey, part.C.Name)
			}
		}
	}
	return info
}

func viewInfoFromSchema(v *atlasschema.View) TableInfo {
	return TableInfo{
		Name:    v.Name,
		Columns: columnsFromSchema(v.Columns),
	}
}

func columnsFromSchema(cols []*atlasschema.Column) []ColumnInfo {
	out := make([]ColumnInfo, 0, len(cols))
	for i, c := range cols {
		ci := ColumnInfo{Name: c.Name, Position: i}
		if c.Type != nil {
			ci.SQLType = c.Type.Raw
			ci.Nullable = c.Type.Null
		}
		out = append(out, ci)
	}
	return out
}
