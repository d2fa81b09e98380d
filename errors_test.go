package odataquery

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	p := New(WithMaxQueryLength(64))

	tests := []struct {
		name  string
		parse func() error
		code  ErrorCode
	}{
		{"unterminated string", func() error { _, err := p.Filter("Name eq 'Jo"); return err }, ErrorCodeUnterminatedString},
		{"unexpected character", func() error { _, err := p.Filter("Name eq #"); return err }, ErrorCodeUnexpectedCharacter},
		{"unexpected token", func() error { _, err := p.Filter("a eq 1 b"); return err }, ErrorCodeUnexpectedToken},
		{"missing operand", func() error { _, err := p.Filter("a eq"); return err }, ErrorCodeMissingOperand},
		{"unbalanced parentheses", func() error { _, err := p.Filter("(a eq 1"); return err }, ErrorCodeUnbalancedParentheses},
		{"unknown function", func() error { _, err := p.Filter("foo(a)"); return err }, ErrorCodeUnknownFunction},
		{"wrong argument count", func() error { _, err := p.Filter("contains(a)"); return err }, ErrorCodeWrongArgumentCount},
		{"unsupported function", func() error { _, err := p.Filter("month(a) eq 1"); return err }, ErrorCodeUnsupportedFunction},
		{"invalid argument", func() error { _, err := p.Filter("startswith(a, null)"); return err }, ErrorCodeInvalidArgument},
		{"invalid pagination value", func() error { _, err := p.TopSkip(TopSkip{Skip: Int64(-2)}); return err }, ErrorCodeInvalidPaginationValue},
		{"invalid field name", func() error { _, err := p.Select("a b"); return err }, ErrorCodeInvalidFieldName},
		{"duplicate field", func() error { _, err := p.Select("a,a"); return err }, ErrorCodeDuplicateField},
		{"empty select", func() error { _, err := p.Select(" "); return err }, ErrorCodeEmptySelectQuery},
		{"query too long", func() error { _, err := p.Select(fmt.Sprintf("%070d", 0)); return err }, ErrorCodeQueryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse()
			require.Error(t, err)
			assert.Equal(t, tt.code, Code(err))
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
		})
	}
}

func TestCodeWrapped(t *testing.T) {
	_, err := New().OrderBy("a,")
	require.Error(t, err)

	wrapped := fmt.Errorf("list products: %w", err)
	assert.Equal(t, ErrorCodeMissingOperand, Code(wrapped))

	var syntaxErr *SyntaxError
	require.True(t, errors.As(wrapped, &syntaxErr))
	assert.Equal(t, 2, syntaxErr.Pos)
	assert.True(t, syntaxErr.AtEnd)
}

func TestCodeForeignErrors(t *testing.T) {
	assert.Equal(t, ErrorCode(""), Code(nil))
	assert.Equal(t, http.StatusOK, StatusCode(nil))

	err := errors.New("connection refused")
	assert.Equal(t, ErrorCodeGeneral, Code(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestErrorTypes(t *testing.T) {
	_, err := New().Filter("contains(Name)")
	var lowerErr *LoweringError
	require.True(t, errors.As(err, &lowerErr))
	assert.Equal(t, "contains", lowerErr.Function)

	_, err = New().TopSkipValues(map[string]string{"$skip": "x"})
	var pageErr *PaginationError
	require.True(t, errors.As(err, &pageErr))
	assert.Equal(t, "skip", pageErr.Param)
	assert.Equal(t, "x", pageErr.Value)
}
