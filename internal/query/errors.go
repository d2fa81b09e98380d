package query

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of these,
// so callers can classify failures with errors.Is.
var (
	// Tokenizer errors
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// Grammar errors
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrMissingOperand        = errors.New("missing operand")
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")

	// Lowering errors
	ErrUnknownFunction     = errors.New("unknown function")
	ErrWrongArgumentCount  = errors.New("wrong argument count")
	ErrUnsupportedFunction = errors.New("unsupported function")
	ErrInvalidArgument     = errors.New("invalid function argument")

	// Pagination errors
	ErrInvalidPaginationValue = errors.New("invalid pagination value")

	// Select errors
	ErrInvalidFieldName = errors.New("invalid field name")
	ErrDuplicateField   = errors.New("duplicate field")
	ErrEmptySelectQuery = errors.New("empty select query")

	// ErrQueryTooLong is returned when a query option exceeds a configured length limit
	ErrQueryTooLong = errors.New("query option exceeds maximum length")

	errNilExpressionNode = errors.New("expression node is nil")
	errMalformedNode     = errors.New("malformed expression node")
)

// SyntaxError is a positioned error raised while tokenizing or parsing.
type SyntaxError struct {
	Kind    error
	Message string
	// Pos is the byte offset of the offending character or token.
	Pos int
	// AtEnd is set when the input ended before the parser was satisfied.
	AtEnd bool
}

func (e *SyntaxError) Error() string {
	if e.AtEnd {
		return fmt.Sprintf("%s: %s at end of input", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s at position %d", e.Kind, e.Message, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Kind }

// LoweringError is raised after parsing, when a syntactically valid tree has no
// translation. It carries no position.
type LoweringError struct {
	Kind     error
	Function string
	Message  string
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.Kind, e.Function, e.Message)
}

func (e *LoweringError) Unwrap() error { return e.Kind }

// PaginationError names the pagination parameter that failed validation.
type PaginationError struct {
	Param string
	Value string
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("invalid '%s': must be a non-negative integer, got '%s'", e.Param, e.Value)
}

func (e *PaginationError) Unwrap() error { return ErrInvalidPaginationValue }

func syntaxErrorAt(kind error, tok Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     tok.Pos,
		AtEnd:   tok.Type == TokenEOF,
	}
}

func loweringError(kind error, function, format string, args ...any) *LoweringError {
	return &LoweringError{Kind: kind, Function: function, Message: fmt.Sprintf(format, args...)}
}
