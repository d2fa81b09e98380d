package query

import (
	"github.com/nlstn/go-odata-query/internal/expr"
)

// Direction is the sort direction of an $orderby clause
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// OrderByClause represents a single $orderby clause
type OrderByClause struct {
	Field     string
	Direction Direction
}

// ParseOrderBy parses the $orderby query option. Clauses keep their input order;
// an omitted direction means ascending.
func ParseOrderBy(input string) ([]OrderByClause, error) {
	tokens, err := NewTokenizer(input, ModeOrderBy).TokenizeAll()
	if err != nil {
		return nil, err
	}

	p := NewASTParser(tokens)
	var result []OrderByClause

	for {
		token := p.currentToken()
		switch token.Type {
		case TokenIdentifier:
		case TokenEOF, TokenComma, TokenDirection:
			return nil, syntaxErrorAt(ErrMissingOperand, token, "expected field name, found %s", token.describe())
		default:
			return nil, syntaxErrorAt(ErrUnexpectedToken, token, "expected field name, found %s", token.describe())
		}
		p.advance()

		clause := OrderByClause{Field: token.Value, Direction: Ascending}
		if p.at(TokenDirection, "") {
			if p.advance().Value == "desc" {
				clause.Direction = Descending
			}
		}
		result = append(result, clause)

		next := p.currentToken()
		switch next.Type {
		case TokenEOF:
			return result, nil
		case TokenComma:
			p.advance()
		default:
			return nil, syntaxErrorAt(ErrUnexpectedToken, next,
				"expected ',' or end of input after clause for '%s', found %s", clause.Field, next.describe())
		}
	}
}

// LowerOrderBy maps clauses to Asc/Desc nodes over their resolved columns.
func LowerOrderBy(clauses []OrderByClause, fields FieldMap) []*expr.Node {
	nodes := make([]*expr.Node, len(clauses))
	for i, clause := range clauses {
		op := expr.OpAsc
		if clause.Direction == Descending {
			op = expr.OpDesc
		}
		nodes[i] = expr.Op(op, expr.Column(resolveColumn(fields, clause.Field)))
	}
	return nodes
}
