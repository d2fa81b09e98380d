package query

import (
	"strings"
	"unicode/utf8"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenString
	TokenNumber
	TokenBoolean
	TokenNull
	TokenOperator
	TokenFunction
	TokenLParen
	TokenRParen
	TokenComma
	TokenDirection
	TokenDot
)

var tokenTypeNames = [...]string{
	TokenEOF:        "end of input",
	TokenIdentifier: "identifier",
	TokenString:     "string literal",
	TokenNumber:     "number literal",
	TokenBoolean:    "boolean literal",
	TokenNull:       "null literal",
	TokenOperator:   "operator",
	TokenFunction:   "function",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenComma:      "','",
	TokenDirection:  "direction",
	TokenDot:        "'.'",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Token represents a single token of a query option
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// describe renders the token for error messages.
func (t Token) describe() string {
	switch t.Type {
	case TokenEOF, TokenLParen, TokenRParen, TokenComma, TokenDot:
		return t.Type.String()
	case TokenString:
		return "string '" + t.Value + "'"
	default:
		return t.Type.String() + " '" + t.Value + "'"
	}
}

// TokenizerMode selects which keywords the tokenizer classifies.
type TokenizerMode int

const (
	// ModeFilter classifies literals, operators and function keywords.
	ModeFilter TokenizerMode = iota
	// ModeOrderBy classifies only asc and desc.
	ModeOrderBy
	// ModeSelect classifies nothing and emits '.' tokens for property paths.
	ModeSelect
)

var operatorKeywords = map[string]bool{
	"eq": true, "ne": true, "gt": true, "ge": true, "lt": true, "le": true,
	"and": true, "or": true, "not": true,
}

var functionKeywords = map[string]bool{
	"contains": true, "startswith": true, "endswith": true,
	"add": true, "sub": true, "mul": true, "div": true, "in": true,
}

// Tokenizer tokenizes query option strings
type Tokenizer struct {
	input string
	mode  TokenizerMode
	pos   int
	ch    byte
}

// NewTokenizer creates a new tokenizer
func NewTokenizer(input string, mode TokenizerMode) *Tokenizer {
	t := &Tokenizer{
		input: input,
		mode:  mode,
	}
	if len(input) > 0 {
		t.ch = input[0]
	}
	return t
}

// Tokenize tokenizes a $filter expression.
func Tokenize(input string) ([]Token, error) {
	return NewTokenizer(input, ModeFilter).TokenizeAll()
}

// advance moves to the next character
func (t *Tokenizer) advance() {
	t.pos++
	if t.pos >= len(t.input) {
		t.ch = 0 // EOF
	} else {
		t.ch = t.input[t.pos]
	}
}

// peek looks ahead without advancing
func (t *Tokenizer) peek() byte {
	if t.pos+1 >= len(t.input) {
		return 0
	}
	return t.input[t.pos+1]
}

func (t *Tokenizer) atEOF() bool {
	return t.pos >= len(t.input)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }

// skipWhitespace skips whitespace characters
func (t *Tokenizer) skipWhitespace() {
	for !t.atEOF() && (t.ch == ' ' || t.ch == '\t' || t.ch == '\n' || t.ch == '\r') {
		t.advance()
	}
}

// readString reads a single-quoted string, resolving backslash escapes
func (t *Tokenizer) readString() (string, error) {
	start := t.pos
	t.advance() // skip opening quote

	var result strings.Builder
	for !t.atEOF() && t.ch != '\'' {
		if t.ch == '\\' {
			t.advance()
			if t.atEOF() {
				break
			}
			switch t.ch {
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			case 'r':
				result.WriteByte('\r')
			default:
				result.WriteByte(t.ch)
			}
		} else {
			result.WriteByte(t.ch)
		}
		t.advance()
	}

	if t.atEOF() {
		return "", &SyntaxError{
			Kind:    ErrUnterminatedString,
			Message: "string literal is not closed",
			Pos:     start,
		}
	}
	t.advance() // skip closing quote

	return result.String(), nil
}

// readNumber reads an optionally negative number with at most one decimal point
func (t *Tokenizer) readNumber() string {
	start := t.pos

	if t.ch == '-' {
		t.advance()
	}

	for !t.atEOF() && isDigit(t.ch) {
		t.advance()
	}

	if !t.atEOF() && t.ch == '.' {
		t.advance()
		for !t.atEOF() && isDigit(t.ch) {
			t.advance()
		}
	}

	return t.input[start:t.pos]
}

// readIdentifier reads an identifier or keyword
func (t *Tokenizer) readIdentifier() string {
	start := t.pos
	for !t.atEOF() && isIdentPart(t.ch) {
		t.advance()
	}
	return t.input[start:t.pos]
}

// NextToken returns the next token
func (t *Tokenizer) NextToken() (Token, error) {
	t.skipWhitespace()

	if t.atEOF() {
		return Token{Type: TokenEOF, Pos: t.pos}, nil
	}

	pos := t.pos

	switch {
	case t.ch == '\'':
		value, err := t.readString()
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenString, Value: value, Pos: pos}, nil
	case isDigit(t.ch) || (t.ch == '-' && isDigit(t.peek())):
		return Token{Type: TokenNumber, Value: t.readNumber(), Pos: pos}, nil
	case isIdentStart(t.ch):
		return t.classify(t.readIdentifier(), pos), nil
	}

	if token, ok := t.tokenizeSpecialChar(pos); ok {
		return token, nil
	}

	r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
	return Token{}, &SyntaxError{
		Kind:    ErrUnexpectedCharacter,
		Message: "unexpected character '" + string(r) + "'",
		Pos:     pos,
	}
}

// tokenizeSpecialChar tokenizes parentheses, commas and, in select mode, dots
func (t *Tokenizer) tokenizeSpecialChar(pos int) (Token, bool) {
	switch t.ch {
	case '(':
		t.advance()
		return Token{Type: TokenLParen, Value: "(", Pos: pos}, true
	case ')':
		t.advance()
		return Token{Type: TokenRParen, Value: ")", Pos: pos}, true
	case ',':
		t.advance()
		return Token{Type: TokenComma, Value: ",", Pos: pos}, true
	case '.':
		if t.mode == ModeSelect {
			t.advance()
			return Token{Type: TokenDot, Value: ".", Pos: pos}, true
		}
	}
	return Token{}, false
}

// classify turns an identifier into a keyword token where the mode calls for it.
// Plain identifiers keep their original spelling.
func (t *Tokenizer) classify(value string, pos int) Token {
	lower := strings.ToLower(value)

	switch t.mode {
	case ModeOrderBy:
		if lower == "asc" || lower == "desc" {
			return Token{Type: TokenDirection, Value: lower, Pos: pos}
		}
	case ModeFilter:
		switch {
		case lower == "true" || lower == "false":
			return Token{Type: TokenBoolean, Value: lower, Pos: pos}
		case lower == "null":
			return Token{Type: TokenNull, Value: lower, Pos: pos}
		case operatorKeywords[lower]:
			return Token{Type: TokenOperator, Value: lower, Pos: pos}
		case functionKeywords[lower]:
			return Token{Type: TokenFunction, Value: lower, Pos: pos}
		}
	}

	return Token{Type: TokenIdentifier, Value: value, Pos: pos}
}

// TokenizeAll returns all tokens from the input, terminated by a TokenEOF token
func (t *Tokenizer) TokenizeAll() ([]Token, error) {
	var tokens []Token

	for {
		token, err := t.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		if token.Type == TokenEOF {
			break
		}
	}

	return tokens, nil
}
