package query

// ASTParser parses filter tokens into an AST. A parser is a transient cursor over
// one token slice; create a new one for every parse.
type ASTParser struct {
	tokens  []Token
	current int
}

// NewASTParser creates a new AST parser
func NewASTParser(tokens []Token) *ASTParser {
	return &ASTParser{
		tokens:  tokens,
		current: 0,
	}
}

// currentToken returns the current token
func (p *ASTParser) currentToken() Token {
	if p.current >= len(p.tokens) {
		pos := 0
		if n := len(p.tokens); n > 0 {
			pos = p.tokens[n-1].Pos
		}
		return Token{Type: TokenEOF, Pos: pos}
	}
	return p.tokens[p.current]
}

// advance moves to the next token
func (p *ASTParser) advance() Token {
	token := p.currentToken()
	if p.current < len(p.tokens) {
		p.current++
	}
	return token
}

// at reports whether the current token has the given type and, if value is not
// empty, the given value.
func (p *ASTParser) at(tokenType TokenType, value string) bool {
	token := p.currentToken()
	return token.Type == tokenType && (value == "" || token.Value == value)
}

// expectClose consumes a ')' that closes a group or argument list.
func (p *ASTParser) expectClose(context string) error {
	token := p.currentToken()
	switch token.Type {
	case TokenRParen:
		p.advance()
		return nil
	case TokenEOF:
		return syntaxErrorAt(ErrUnbalancedParentheses, token, "missing ')' to close %s", context)
	default:
		return syntaxErrorAt(ErrUnexpectedToken, token, "expected ')' to close %s, found %s", context, token.describe())
	}
}

// expectOpen consumes the '(' that must follow an arithmetic keyword or function name.
func (p *ASTParser) expectOpen(after string) error {
	token := p.currentToken()
	switch token.Type {
	case TokenLParen:
		p.advance()
		return nil
	case TokenEOF:
		return syntaxErrorAt(ErrMissingOperand, token, "expected '(' after '%s'", after)
	default:
		return syntaxErrorAt(ErrUnexpectedToken, token, "expected '(' after '%s', found %s", after, token.describe())
	}
}

// Parse parses the tokens into an AST
func (p *ASTParser) Parse() (ASTNode, error) {
	if p.at(TokenEOF, "") {
		return nil, syntaxErrorAt(ErrMissingOperand, p.currentToken(), "empty filter expression")
	}

	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	// Verify all tokens were consumed (except EOF)
	token := p.currentToken()
	switch token.Type {
	case TokenEOF:
		return node, nil
	case TokenRParen:
		return nil, syntaxErrorAt(ErrUnbalancedParentheses, token, "unmatched ')'")
	default:
		return nil, syntaxErrorAt(ErrUnexpectedToken, token, "unexpected %s after expression", token.describe())
	}
}

// parseOr handles OR expressions (lowest precedence)
func (p *ASTParser) parseOr() (ASTNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.at(TokenOperator, string(OpOr)) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: OpOr,
			Right:    right,
		}
	}

	return left, nil
}
