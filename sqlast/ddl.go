package sqlast

// DDLStmt is the closed variant of top-level DDL statements this dialect
// supports: CREATE TABLE and CREATE VIEW.
type DDLStmt interface {
	Node
	isDDLStmt()
}

// ColumnDef is one column of a CREATE TABLE: `name TYPE[(arg)]`.
type ColumnDef struct {
	Name string
	Type string // "boolean" | "integer" | "bigint" | "varchar"
	Arg  int    // varchar(k)'s k; zero if absent
	At   Position
}

// CreateTable is `CREATE TABLE name (col1 t1, ..., [PRIMARY KEY (...)])`.
type CreateTable struct {
	Name       string
	Columns    []ColumnDef
	PrimaryKey []string // column names in declared PRIMARY KEY order
	At         Position
}

func (c *CreateTable) Pos() Position { return c.At }
func (*CreateTable) isDDLStmt()      {}

// CreateView is `CREATE VIEW name AS <query>`.
type CreateView struct {
	Name  string
	Query *SelectQuery
	At    Position
}

func (c *CreateView) Pos() Position { return c.At }
func (*CreateView) isDDLStmt()      {}

// SelectItem is one projected item: either the bare `*` or
// `<expr> [AS alias]`.
type SelectItem struct {
	Star  bool
	Expr  Expr
	Alias string // empty if no AS clause
	At    Position
}

// FromSource is the closed variant of FROM clause sources: a named table
// or a parenthesized subquery.
type FromSource interface {
	Node
	isFromSource()
}

// TableRef is `FROM name`.
type TableRef struct {
	Name string
	At   Position
}

func (t *TableRef) Pos() Position { return t.At }
func (*TableRef) isFromSource()   {}

// SubquerySource is `FROM (<query>)`.
type SubquerySource struct {
	Query *SelectQuery
	At    Position
}

func (s *SubquerySource) Pos() Position { return s.At }
func (*SubquerySource) isFromSource()   {}

// SelectQuery is `SELECT DISTINCT <items> FROM <source> [WHERE <expr>]`,
// the only query shape this core's query translator accepts. Where is nil
// when absent.
type SelectQuery struct {
	Distinct bool
	Items    []SelectItem
	From     FromSource
	Where    Expr
	At       Position
}

func (s *SelectQuery) Pos() Position { return s.At }
