package main

import (
	"bytes"
	"errors"
	"testing"

	odataquery "github.com/nlstn/go-odata-query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"odataq"}, args...))
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "filter",
			args:     []string{"filter", "Price gt 5 and contains(Name,'Jo')"},
			expected: "tree: And(GreaterThan(Price, ?), Like(Name, ?))\nargs: [5 %Jo%]\n",
		},
		{
			name:     "filter with mapping and sql",
			args:     []string{"filter", "--sql", "-m", "Price=price", "Price gt 5"},
			expected: "tree: GreaterThan(price, ?)\nargs: [5]\nwhere: \"price\" > ?\nargs:  [5]\n",
		},
		{
			name:     "filter ast",
			args:     []string{"filter", "--ast", "not (a eq 1)"},
			expected: "not(eq(a, 1))\n",
		},
		{
			name:     "orderby",
			args:     []string{"orderby", "--map", "age=user_age", "age desc, name"},
			expected: "Desc(user_age)\nAsc(name)\n",
		},
		{
			name:     "select",
			args:     []string{"select", "id,address.city"},
			expected: "id\naddress.city\n",
		},
		{
			name:     "page",
			args:     []string{"page", "--top", "10", "--skip", "20"},
			expected: "tree: Limit(?, ?)\nargs: [10 20]\n",
		},
		{
			name:     "no page",
			args:     []string{"page", "--skip", "0"},
			expected: "no pagination\n",
		},
		{
			name:     "query",
			args:     []string{"query", "?$filter=Price%20le%2010&$orderby=Name%20desc&$select=Name&$top=3"},
			expected: "filter:  \"Price\" <= ? [10]\norderby: \"Name\" DESC\nselect:  Name\ntop:     3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestTokensCommand(t *testing.T) {
	out, err := run(t, "tokens", "Name eq 'Jo'")
	require.NoError(t, err)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Jo")
	assert.Contains(t, out, "8 ")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind error
		code int
	}{
		{"filter syntax", []string{"filter", "Price gt"}, odataquery.ErrMissingOperand, 2},
		{"filter lowering", []string{"filter", "length(Name) gt 1"}, odataquery.ErrUnsupportedFunction, 2},
		{"orderby", []string{"orderby", "a,"}, odataquery.ErrMissingOperand, 2},
		{"select", []string{"select", "a,a"}, odataquery.ErrDuplicateField, 2},
		{"page", []string{"page", "--top=-1"}, odataquery.ErrInvalidPaginationValue, 2},
		{"tokens", []string{"tokens", "'open"}, odataquery.ErrUnterminatedString, 2},
		{"query", []string{"query", "$skip=x"}, odataquery.ErrInvalidPaginationValue, 2},
		{"missing argument", []string{"filter"}, nil, 1},
		{"bad mapping", []string{"filter", "-m", "Price", "Price gt 1"}, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			if tt.kind != nil {
				assert.True(t, errors.Is(err, tt.kind), "expected %v, got %v", tt.kind, err)
			}
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}
