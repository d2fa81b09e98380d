package query

import (
	"errors"
	"testing"

	"github.com/nlstn/go-odata-query/internal/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLower(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		expected string
		args     []any
	}{
		{
			name:     "comparison",
			filter:   "age gt 25",
			expected: "GreaterThan(age, ?)",
			args:     []any{int64(25)},
		},
		{
			name:     "every comparison operator",
			filter:   "a eq 1 and b ne 2 and c gt 3 and d ge 4 and e lt 5 and f le 6",
			expected: "And(And(And(And(And(Equal(a, ?), NotEqual(b, ?)), GreaterThan(c, ?)), GreaterThanEqual(d, ?)), LessThan(e, ?)), LessThanEqual(f, ?))",
			args:     []any{int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)},
		},
		{
			name:     "nested boolean logic",
			filter:   "age gt 25 and (name eq 'John' or name eq 'Jane')",
			expected: "And(GreaterThan(age, ?), Or(Equal(name, ?), Equal(name, ?)))",
			args:     []any{int64(25), "John", "Jane"},
		},
		{
			name:     "not",
			filter:   "not (Active eq true)",
			expected: "Not(Equal(Active, ?))",
			args:     []any{true},
		},
		{
			name:     "null comparison",
			filter:   "Deleted eq null",
			expected: "Equal(Deleted, ?)",
			args:     []any{nil},
		},
		{
			name:     "chained arithmetic",
			filter:   "Price mul (2) add (Tax) gt 10",
			expected: "GreaterThan(Plus(Multiply(Price, ?), Tax), ?)",
			args:     []any{int64(2), int64(10)},
		},
		{
			name:     "sub and div",
			filter:   "Total div (2) sub (Discount) le 5",
			expected: "LessThanEqual(Minus(Divide(Total, ?), Discount), ?)",
			args:     []any{int64(2), int64(5)},
		},
		{
			name:     "call-form arithmetic",
			filter:   "add(Price, 5) gt 10",
			expected: "GreaterThan(Plus(Price, ?), ?)",
			args:     []any{int64(5), int64(10)},
		},
		{
			name:     "contains",
			filter:   "contains(name,'Jo')",
			expected: "Like(name, ?)",
			args:     []any{"%Jo%"},
		},
		{
			name:     "startswith",
			filter:   "startswith(Name,'Jo')",
			expected: "Like(Name, ?)",
			args:     []any{"Jo%"},
		},
		{
			name:     "endswith",
			filter:   "endswith(Name,'son')",
			expected: "Like(Name, ?)",
			args:     []any{"%son"},
		},
		{
			name:     "wildcards in the value are escaped",
			filter:   `startswith(Code,'50%_off\\')`,
			expected: "Like(Code, ?, ?)",
			args:     []any{`50\%\_off\\%`, `\`},
		},
		{
			name:     "contains a percent sign",
			filter:   "contains(name,'50%')",
			expected: "Like(name, ?, ?)",
			args:     []any{`%50\%%`, `\`},
		},
		{
			name:     "contains an underscore",
			filter:   "contains(name,'a_b')",
			expected: "Like(name, ?, ?)",
			args:     []any{`%a\_b%`, `\`},
		},
		{
			name:     "contains with a column pattern",
			filter:   "contains(Name, Nickname)",
			expected: "Like(Name, Concat(?, Nickname, ?))",
			args:     []any{"%", "%"},
		},
		{
			name:     "startswith with a column pattern",
			filter:   "startswith(Name, Prefix)",
			expected: "Like(Name, Concat(Prefix, ?))",
			args:     []any{"%"},
		},
		{
			name:     "numeric pattern is formatted",
			filter:   "contains(Sku, 42)",
			expected: "Like(Sku, ?)",
			args:     []any{"%42%"},
		},
		{
			name:     "in",
			filter:   "in(Status,'open','closed')",
			expected: "In(Status, ?, ?)",
			args:     []any{"open", "closed"},
		},
		{
			name:     "in with a single candidate",
			filter:   "in(Id, 7)",
			expected: "In(Id, ?)",
			args:     []any{int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseFilter(tt.filter, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, node.String())
			assert.Equal(t, tt.args, node.BoundArgs())
		})
	}
}

func TestLowerKeepsValuesOutOfText(t *testing.T) {
	node, err := ParseFilter(`Name eq 'x\'; DROP TABLE users; --'`, nil)
	require.NoError(t, err)

	assert.Equal(t, "Equal(Name, ?)", node.String())
	assert.NotContains(t, node.String(), "DROP")
	assert.Equal(t, []any{"x'; DROP TABLE users; --"}, node.BoundArgs())
}

func TestLowerFieldMapping(t *testing.T) {
	fields := MapFields(map[string]string{
		"age":  "user_age",
		"name": "full_name",
	})

	tests := []struct {
		filter   string
		expected string
	}{
		{"age gt 25", "GreaterThan(user_age, ?)"},
		{"contains(name,'Jo')", "Like(full_name, ?)"},
		{"in(age, 1, 2)", "In(user_age, ?, ?)"},
		{"Age gt 25", "GreaterThan(Age, ?)"},
		{"email eq 'a'", "Equal(email, ?)"},
		{"age add (bonus) gt 1", "GreaterThan(Plus(user_age, bonus), ?)"},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			node, err := ParseFilter(tt.filter, fields)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, node.String())
		})
	}
}

func TestMapFieldsCopiesInput(t *testing.T) {
	columns := map[string]string{"age": "user_age"}
	fields := MapFields(columns)
	columns["age"] = "changed"

	assert.Equal(t, "user_age", fields.Column("age"))
	assert.Equal(t, "other", fields.Column("other"))
}

func TestLowerErrors(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		kind     error
		function string
	}{
		{"contains with one argument", "contains(Name)", ErrWrongArgumentCount, "contains"},
		{"endswith with three arguments", "endswith(Name,'a','b')", ErrWrongArgumentCount, "endswith"},
		{"in without candidates", "in(Status)", ErrWrongArgumentCount, "in"},
		{"add with one argument", "add(Price) gt 1", ErrWrongArgumentCount, "add"},
		{"contains with null pattern", "contains(Name, null)", ErrInvalidArgument, "contains"},
		{"length", "length(Name) gt 3", ErrUnsupportedFunction, "length"},
		{"year", "year(Created) eq 2024", ErrUnsupportedFunction, "year"},
		{"second", "second(Created) eq 0", ErrUnsupportedFunction, "second"},
		{"mod is not a function keyword", "mod(a,b) eq 0", ErrUnknownFunction, "mod"},
		{"unknown function", "foo(x)", ErrUnknownFunction, "foo"},
		{"nested error surfaces", "a eq 1 and not contains(Name)", ErrWrongArgumentCount, "contains"},
		{"error inside in candidate", "in(a, foo(1))", ErrUnknownFunction, "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseFilter(tt.filter, nil)
			require.Error(t, err)
			assert.Nil(t, node)
			assert.ErrorIs(t, err, tt.kind)

			var lowerErr *LoweringError
			require.True(t, errors.As(err, &lowerErr), "expected *LoweringError, got %T", err)
			assert.Equal(t, tt.function, lowerErr.Function)
		})
	}
}

func TestLoweringErrorMessage(t *testing.T) {
	_, err := ParseFilter("mod(a,b) eq 0", nil)
	require.Error(t, err)
	assert.Equal(t, "unknown function 'mod': no such function", err.Error())

	_, err = ParseFilter("contains(Name)", nil)
	require.Error(t, err)
	assert.Equal(t, "wrong argument count 'contains': requires 2 arguments, got 1", err.Error())
}

func TestLowerNilNode(t *testing.T) {
	_, err := Lower(nil, nil)
	assert.ErrorIs(t, err, errNilExpressionNode)
}

func TestLowerLiteral(t *testing.T) {
	node, err := Lower(&Literal{Kind: LiteralString, Value: "x"}, nil)
	require.NoError(t, err)

	assert.Equal(t, expr.KindPlaceholder, node.Kind())
	value, ok := node.Value()
	assert.True(t, ok)
	assert.Equal(t, "x", value)
}

func TestLowerLikeEscape(t *testing.T) {
	node, err := ParseFilter("contains(name,'50%')", nil)
	require.NoError(t, err)
	require.Len(t, node.Children, 3)

	pattern, ok := node.Children[1].Value()
	require.True(t, ok)
	assert.Equal(t, `%50\%%`, pattern)

	escape, ok := node.Children[2].Value()
	require.True(t, ok)
	assert.Equal(t, LikeEscapeChar, escape)

	plain, err := ParseFilter("contains(name,'Jo')", nil)
	require.NoError(t, err)
	assert.Len(t, plain.Children, 2)
}

func TestEscapeLikePattern(t *testing.T) {
	input := "%_\\"
	expected := `\%\_\\`

	result := escapeLikePattern(input)
	if result != expected {
		t.Fatalf("expected escaped pattern %q, got %q", expected, result)
	}
}
