package query

import (
	"errors"
	"strings"
)

// ParseSelect parses the $select query option into field names of the form
// identifier(.identifier)*. Order and casing are preserved. An empty or
// whitespace-only option is an error; callers model an absent option themselves.
func ParseSelect(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &SyntaxError{Kind: ErrEmptySelectQuery, Message: "at least one field is required", Pos: 0}
	}

	tokens, err := NewTokenizer(input, ModeSelect).TokenizeAll()
	if err != nil {
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &SyntaxError{Kind: ErrInvalidFieldName, Message: syntaxErr.Message, Pos: syntaxErr.Pos}
		}
		return nil, err
	}

	p := NewASTParser(tokens)
	seen := make(map[string]bool)
	var fields []string

	for {
		start := p.currentToken()
		field, err := p.parseFieldPath(input)
		if err != nil {
			return nil, err
		}
		if seen[field] {
			return nil, syntaxErrorAt(ErrDuplicateField, start, "field '%s' is selected more than once", field)
		}
		seen[field] = true
		fields = append(fields, field)

		next := p.currentToken()
		switch next.Type {
		case TokenEOF:
			return fields, nil
		case TokenComma:
			p.advance()
		default:
			return nil, syntaxErrorAt(ErrInvalidFieldName, next, "unexpected %s after field '%s'", next.describe(), field)
		}
	}
}

// parseFieldPath consumes one dotted field name.
func (p *ASTParser) parseFieldPath(input string) (string, error) {
	first := p.currentToken()
	switch first.Type {
	case TokenIdentifier:
	case TokenComma, TokenEOF:
		return "", syntaxErrorAt(ErrInvalidFieldName, first, "empty field name")
	case TokenDot:
		return "", syntaxErrorAt(ErrInvalidFieldName, first, "field name must not start with '.'")
	default:
		return "", syntaxErrorAt(ErrInvalidFieldName, first, "expected field name, found %s", first.describe())
	}
	p.advance()

	segments := []string{first.Value}
	end := first.Pos + len(first.Value)

	for p.at(TokenDot, "") {
		dot := p.advance()
		segment := p.currentToken()
		if segment.Type != TokenIdentifier {
			return "", syntaxErrorAt(ErrInvalidFieldName, dot, "'.' must be followed by a property name")
		}
		p.advance()
		segments = append(segments, segment.Value)
		end = segment.Pos + len(segment.Value)
	}

	field := strings.Join(segments, ".")
	if input[first.Pos:end] != field {
		return "", syntaxErrorAt(ErrInvalidFieldName, first, "field name '%s' must not contain whitespace", input[first.Pos:end])
	}
	return field, nil
}
