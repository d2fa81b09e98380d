package query

// parseAdditive handles "X add (Y)" and "X sub (Y)". Arithmetic uses the call-style
// syntax of the wire format; there are no infix symbols.
func (p *ASTParser) parseAdditive() (ASTNode, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.at(TokenFunction, string(OpAdd)) || p.at(TokenFunction, string(OpSub)) {
		op := p.advance()
		if err := p.expectOpen(op.Value); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if err := p.expectClose("'" + op.Value + "' operand"); err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: BinaryOperator(op.Value),
			Right:    right,
		}
	}

	return left, nil
}

// parseMultiplicative handles "X mul (Y)" and "X div (Y)"
func (p *ASTParser) parseMultiplicative() (ASTNode, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.at(TokenFunction, string(OpMul)) || p.at(TokenFunction, string(OpDiv)) {
		op := p.advance()
		if err := p.expectOpen(op.Value); err != nil {
			return nil, err
		}
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if err := p.expectClose("'" + op.Value + "' operand"); err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: BinaryOperator(op.Value),
			Right:    right,
		}
	}

	return left, nil
}

// parsePrimary handles primary expressions (literals, identifiers, function calls, grouped expressions)
func (p *ASTParser) parsePrimary() (ASTNode, error) {
	token := p.currentToken()

	switch token.Type {
	case TokenLParen:
		return p.parseGroupedExpression()
	case TokenString, TokenNumber, TokenBoolean, TokenNull:
		return p.parseLiteral()
	case TokenFunction:
		p.advance()
		return p.parseFunctionCall(token)
	case TokenIdentifier:
		p.advance()
		if p.at(TokenLParen, "") {
			return p.parseFunctionCall(token)
		}
		return &Identifier{Name: token.Value}, nil
	case TokenEOF:
		return nil, syntaxErrorAt(ErrMissingOperand, token, "expected operand")
	case TokenOperator, TokenComma, TokenRParen:
		return nil, syntaxErrorAt(ErrMissingOperand, token, "expected operand, found %s", token.describe())
	default:
		return nil, syntaxErrorAt(ErrUnexpectedToken, token, "unexpected %s", token.describe())
	}
}

// parseGroupedExpression parses a grouped expression like (expr). The group
// yields its inner node; parentheses leave no trace in the tree.
func (p *ASTParser) parseGroupedExpression() (ASTNode, error) {
	p.advance() // consume '('
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expectClose("group"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseLiteral parses literal values (string, number, boolean, null)
func (p *ASTParser) parseLiteral() (ASTNode, error) {
	token := p.advance()
	switch token.Type {
	case TokenString:
		return &Literal{Kind: LiteralString, Value: token.Value}, nil
	case TokenNumber:
		lit, err := numberLiteral(token.Value)
		if err != nil {
			return nil, syntaxErrorAt(ErrUnexpectedToken, token, "malformed number '%s'", token.Value)
		}
		return lit, nil
	case TokenBoolean:
		return &Literal{Kind: LiteralBoolean, Value: token.Value == "true"}, nil
	default:
		return &Literal{Kind: LiteralNull, Value: nil}, nil
	}
}
