package query

import (
	"github.com/nlstn/go-odata-query/internal/expr"
)

// ParseFilterAST tokenizes and parses a $filter expression into an AST.
func ParseFilterAST(input string) (ASTNode, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return NewASTParser(tokens).Parse()
}

// ParseFilter parses a $filter expression and lowers it to an expression tree,
// resolving identifiers through fields.
func ParseFilter(input string, fields FieldMap) (*expr.Node, error) {
	ast, err := ParseFilterAST(input)
	if err != nil {
		return nil, err
	}
	return Lower(ast, fields)
}
