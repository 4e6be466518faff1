package sqlast

import "strconv"

// ParseDDL parses one `CREATE TABLE` or `CREATE VIEW` statement, the first
// of the two grammar dialects this core accepts.
func ParseDDL(src string) (DDLStmt, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	stmt, err := p.parseDDLStmt()
	if err != nil {
		return nil, err
	}
	if p.isPunct(";") {
		p.advance()
	}
	if !p.atEOF() {
		return nil, p.errorf(p.peek().pos, "unexpected trailing input %q", p.peek().text)
	}
	return stmt, nil
}

func (p *parser) parseDDLStmt() (DDLStmt, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	switch {
	case p.keywordIs("TABLE"):
		p.advance()
		return p.parseCreateTable()
	case p.keywordIs("VIEW"):
		p.advance()
		return p.parseCreateView()
	default:
		return nil, p.errorf(p.peek().pos, "expected TABLE or VIEW, got %q", p.peek().text)
	}
}

func (p *parser) parseCreateTable() (*CreateTable, error) {
	name, at, err := p.parseIdentName()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}

	ct := &CreateTable{Name: name, At: at}
	for {
		if p.keywordIs("PRIMARY") {
			p.advance()
			if err := p.expectKeyword("KEY"); err != nil {
				return nil, err
			}
			if err := p.expectPunct("("); err != nil {
				return nil, err
			}
			for {
				col, _, err := p.parseIdentName()
				if err != nil {
					return nil, err
				}
				ct.PrimaryKey = append(ct.PrimaryKey, col)
				if p.isPunct(",") {
					p.advance()
					continue
				}
				break
			}
			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}
		} else {
			col, err := p.parseColumnDef()
			if err != nil {
				return nil, err
			}
			ct.Columns = append(ct.Columns, col)
		}

		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return ct, nil
}

func (p *parser) parseColumnDef() (ColumnDef, error) {
	name, at, err := p.parseIdentName()
	if err != nil {
		return ColumnDef{}, err
	}
	typeName, _, err := p.parseIdentName()
	if err != nil {
		return ColumnDef{}, err
	}
	cd := ColumnDef{Name: name, Type: typeName, At: at}
	if p.isPunct("(") {
		p.advance()
		numTok := p.peek()
		if numTok.kind != tokNumber {
			return ColumnDef{}, p.errorf(numTok.pos, "expected numeric type argument, got %q", numTok.text)
		}
		p.advance()
		n, err := strconv.Atoi(numTok.text)
		if err != nil {
			return ColumnDef{}, p.errorf(numTok.pos, "invalid type argument %q", numTok.text)
		}
		cd.Arg = n
		if err := p.expectPunct(")"); err != nil {
			return ColumnDef{}, err
		}
	}
	return cd, nil
}

func (p *parser) parseCreateView() (*CreateView, error) {
	name, at, err := p.parseIdentName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	q, err := p.parseSelectQuery()
	if err != nil {
		return nil, err
	}
	return &CreateView{Name: name, Query: q, At: at}, nil
}

// parseSelectQuery parses `SELECT DISTINCT <items> FROM <source> [WHERE
// <expr>]`. It does not itself reject unsupported constructs by name; that
// diagnostic belongs to the compiler's compileSelectQuery, which is handed the
// fully-parsed AST and can name exactly what it refuses.
func (p *parser) parseSelectQuery() (*SelectQuery, error) {
	at := p.peek().pos
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	q := &SelectQuery{At: at}
	if p.keywordIs("DISTINCT") {
		p.advance()
		q.Distinct = true
	}

	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		q.Items = append(q.Items, item)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}

	if p.keywordIs("FROM") {
		p.advance()
		src, err := p.parseFromSource()
		if err != nil {
			return nil, err
		}
		q.From = src
	}

	if p.keywordIs("WHERE") {
		p.advance()
		expr, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		q.Where = expr
	}
	return q, nil
}

func (p *parser) parseSelectItem() (SelectItem, error) {
	at := p.peek().pos
	if p.isPunct("*") {
		p.advance()
		return SelectItem{Star: true, At: at}, nil
	}
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return SelectItem{}, err
	}
	item := SelectItem{Expr: expr, At: at}
	if p.keywordIs("AS") {
		p.advance()
		alias, _, err := p.parseIdentName()
		if err != nil {
			return SelectItem{}, err
		}
		item.Alias = alias
	}
	return item, nil
}

func (p *parser) parseFromSource() (FromSource, error) {
	at := p.peek().pos
	if p.isPunct("(") {
		p.advance()
		q, err := p.parseSelectQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &SubquerySource{Query: q, At: at}, nil
	}
	name, _, err := p.parseIdentName()
	if err != nil {
		return nil, err
	}
	return &TableRef{Name: name, At: at}, nil
}
