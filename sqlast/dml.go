package sqlast

// DMLStmt is the closed variant of top-level DML statements this dialect
// supports: INSERT, DELETE, and the restricted SELECT * FROM ident.
type DMLStmt interface {
	Node
	isDMLStmt()
}

// ValueExpr is one element of an INSERT row: either a Placeholder (bound
// parameter) or a Literal.
type ValueExpr = Expr

// InsertStmt is `INSERT INTO ident VALUES (row1), (row2), ...`.
type InsertStmt struct {
	Table string
	Rows  [][]ValueExpr
	At    Position
}

func (s *InsertStmt) Pos() Position { return s.At }
func (*InsertStmt) isDMLStmt()      {}

// DeleteStmt is `DELETE FROM ident WHERE <pk-predicate>`.
type DeleteStmt struct {
	Table string
	Where Expr // required; absence is a parse error, not a nil field
	At    Position
}

func (s *DeleteStmt) Pos() Position { return s.At }
func (*DeleteStmt) isDMLStmt()      {}

// SelectStarStmt is `SELECT * FROM ident`.
type SelectStarStmt struct {
	Table string
	At    Position
}

func (s *SelectStarStmt) Pos() Position { return s.At }
func (*SelectStarStmt) isDMLStmt()      {}
