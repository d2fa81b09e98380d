package odataquery

import (
	"errors"
	"net/http"

	"github.com/nlstn/go-odata-query/internal/query"
)

// Sentinel errors for every failure class. All errors returned by a Parser wrap
// one of these, so they can be classified with errors.Is().
var (
	// ErrUnterminatedString indicates a string literal without its closing quote.
	ErrUnterminatedString = query.ErrUnterminatedString

	// ErrUnexpectedCharacter indicates a character that starts no token.
	ErrUnexpectedCharacter = query.ErrUnexpectedCharacter

	// ErrUnexpectedToken indicates a token the grammar does not allow at its position.
	ErrUnexpectedToken = query.ErrUnexpectedToken

	// ErrMissingOperand indicates that an operand was required but not present.
	ErrMissingOperand = query.ErrMissingOperand

	// ErrUnbalancedParentheses indicates a missing or stray parenthesis.
	ErrUnbalancedParentheses = query.ErrUnbalancedParentheses

	// ErrUnknownFunction indicates a call to a function that does not exist.
	ErrUnknownFunction = query.ErrUnknownFunction

	// ErrWrongArgumentCount indicates a known function called with the wrong arity.
	ErrWrongArgumentCount = query.ErrWrongArgumentCount

	// ErrUnsupportedFunction indicates an OData function this parser does not translate.
	ErrUnsupportedFunction = query.ErrUnsupportedFunction

	// ErrInvalidArgument indicates an argument a function cannot accept, such as a null pattern.
	ErrInvalidArgument = query.ErrInvalidArgument

	// ErrInvalidPaginationValue indicates a $top or $skip that is not a non-negative integer.
	ErrInvalidPaginationValue = query.ErrInvalidPaginationValue

	// ErrInvalidFieldName indicates a $select entry that is not a dotted identifier.
	ErrInvalidFieldName = query.ErrInvalidFieldName

	// ErrDuplicateField indicates a field listed twice in $select.
	ErrDuplicateField = query.ErrDuplicateField

	// ErrEmptySelectQuery indicates a blank $select.
	ErrEmptySelectQuery = query.ErrEmptySelectQuery

	// ErrQueryTooLong indicates a query option longer than the configured limit.
	ErrQueryTooLong = query.ErrQueryTooLong
)

// SyntaxError re-exports the positioned tokenizer/grammar/select error.
type SyntaxError = query.SyntaxError

// LoweringError re-exports the unpositioned error raised while lowering a filter.
type LoweringError = query.LoweringError

// PaginationError re-exports the error naming the failing pagination parameter.
type PaginationError = query.PaginationError

// ErrorCode is a stable, client-facing name for a parse failure class.
type ErrorCode string

// Error codes reported by Code.
const (
	ErrorCodeUnterminatedString     ErrorCode = "UnterminatedString"
	ErrorCodeUnexpectedCharacter    ErrorCode = "UnexpectedCharacter"
	ErrorCodeUnexpectedToken        ErrorCode = "UnexpectedToken"
	ErrorCodeMissingOperand         ErrorCode = "MissingOperand"
	ErrorCodeUnbalancedParentheses  ErrorCode = "UnbalancedParentheses"
	ErrorCodeUnknownFunction        ErrorCode = "UnknownFunction"
	ErrorCodeWrongArgumentCount     ErrorCode = "WrongArgumentCount"
	ErrorCodeUnsupportedFunction    ErrorCode = "UnsupportedFunction"
	ErrorCodeInvalidArgument        ErrorCode = "InvalidArgument"
	ErrorCodeInvalidPaginationValue ErrorCode = "InvalidPaginationValue"
	ErrorCodeInvalidFieldName       ErrorCode = "InvalidFieldName"
	ErrorCodeDuplicateField         ErrorCode = "DuplicateField"
	ErrorCodeEmptySelectQuery       ErrorCode = "EmptySelectQuery"
	ErrorCodeQueryTooLong           ErrorCode = "QueryTooLong"
	ErrorCodeGeneral                ErrorCode = "General"
)

var errorCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrUnterminatedString, ErrorCodeUnterminatedString},
	{ErrUnexpectedCharacter, ErrorCodeUnexpectedCharacter},
	{ErrUnexpectedToken, ErrorCodeUnexpectedToken},
	{ErrMissingOperand, ErrorCodeMissingOperand},
	{ErrUnbalancedParentheses, ErrorCodeUnbalancedParentheses},
	{ErrUnknownFunction, ErrorCodeUnknownFunction},
	{ErrWrongArgumentCount, ErrorCodeWrongArgumentCount},
	{ErrUnsupportedFunction, ErrorCodeUnsupportedFunction},
	{ErrInvalidArgument, ErrorCodeInvalidArgument},
	{ErrInvalidPaginationValue, ErrorCodeInvalidPaginationValue},
	{ErrInvalidFieldName, ErrorCodeInvalidFieldName},
	{ErrDuplicateField, ErrorCodeDuplicateField},
	{ErrEmptySelectQuery, ErrorCodeEmptySelectQuery},
	{ErrQueryTooLong, ErrorCodeQueryTooLong},
}

// Code returns the error code for err, ErrorCodeGeneral for errors from other
// sources, and "" for nil.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return ErrorCodeGeneral
}

// StatusCode maps a parse error to the HTTP status a service should answer with.
// Every parse failure is the client's fault; anything else is a server error.
func StatusCode(err error) int {
	switch Code(err) {
	case "":
		return http.StatusOK
	case ErrorCodeGeneral:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
