package query

var comparisonOperators = map[string]BinaryOperator{
	"eq": OpEq,
	"ne": OpNe,
	"gt": OpGt,
	"ge": OpGe,
	"lt": OpLt,
	"le": OpLe,
}

// parseAnd handles AND expressions
func (p *ASTParser) parseAnd() (ASTNode, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.at(TokenOperator, string(OpAnd)) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: OpAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parseNot handles NOT expressions. Not is a prefix operator and nests, so
// "not not X" is accepted.
func (p *ASTParser) parseNot() (ASTNode, error) {
	if p.at(TokenOperator, string(OpNot)) {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Operator: OpNot,
			Operand:  operand,
		}, nil
	}

	return p.parseComparison()
}

// parseComparison handles comparison expressions. At most one comparison is
// parsed per level; "a eq b eq c" needs explicit grouping.
func (p *ASTParser) parseComparison() (ASTNode, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	token := p.currentToken()
	if token.Type != TokenOperator {
		return left, nil
	}
	op, ok := comparisonOperators[token.Value]
	if !ok {
		return left, nil
	}
	p.advance()

	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if next := p.currentToken(); next.Type == TokenOperator {
		if _, chained := comparisonOperators[next.Value]; chained {
			return nil, syntaxErrorAt(ErrUnexpectedToken, next, "comparisons cannot be chained, found %s", next.describe())
		}
	}

	return &BinaryExpr{
		Left:     left,
		Operator: op,
		Right:    right,
	}, nil
}
