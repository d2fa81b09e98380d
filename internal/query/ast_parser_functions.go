package query

// parseFunctionCall parses the argument list of a call like func(arg1, arg2).
// The callee token has already been consumed. Arity is not checked here; that
// happens during lowering.
func (p *ASTParser) parseFunctionCall(callee Token) (ASTNode, error) {
	if err := p.expectOpen(callee.Value); err != nil {
		return nil, err
	}

	var args []ASTNode

	if !p.at(TokenRParen, "") {
		for {
			arg, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.at(TokenComma, "") {
				break
			}
			p.advance()
		}
	}

	if err := p.expectClose("arguments of '" + callee.Value + "'"); err != nil {
		return nil, err
	}

	return &FunctionCall{
		Name: callee.Value,
		Args: args,
	}, nil
}
