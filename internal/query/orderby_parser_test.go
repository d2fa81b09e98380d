package query

import (
	"errors"
	"testing"
)

func TestParseOrderBy(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []OrderByClause
	}{
		{
			name:     "Single field defaults to ascending",
			input:    "name",
			expected: []OrderByClause{{Field: "name", Direction: Ascending}},
		},
		{
			name:  "Mixed directions keep input order",
			input: "name asc, age desc, createdAt",
			expected: []OrderByClause{
				{Field: "name", Direction: Ascending},
				{Field: "age", Direction: Descending},
				{Field: "createdAt", Direction: Ascending},
			},
		},
		{
			name:  "Direction keywords are case-insensitive",
			input: "Name DESC,Price Asc",
			expected: []OrderByClause{
				{Field: "Name", Direction: Descending},
				{Field: "Price", Direction: Ascending},
			},
		},
		{
			name:  "Whitespace around commas",
			input: "  a  ,  b desc  ",
			expected: []OrderByClause{
				{Field: "a", Direction: Ascending},
				{Field: "b", Direction: Descending},
			},
		},
		{
			name:     "Filter keywords are plain fields",
			input:    "eq desc",
			expected: []OrderByClause{{Field: "eq", Direction: Descending}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses, err := ParseOrderBy(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if len(clauses) != len(tt.expected) {
				t.Fatalf("Expected %d clauses, got %d: %v", len(tt.expected), len(clauses), clauses)
			}

			for i, clause := range clauses {
				if clause != tt.expected[i] {
					t.Errorf("Clause %d: expected %+v, got %+v", i, tt.expected[i], clause)
				}
			}
		})
	}
}

func TestParseOrderByErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		pos   int
	}{
		{"Empty input", "", ErrMissingOperand, 0},
		{"Leading comma", ",name", ErrMissingOperand, 0},
		{"Trailing comma", "name,", ErrMissingOperand, 5},
		{"Double comma", "name,,age", ErrMissingOperand, 5},
		{"Direction without field", "asc", ErrMissingOperand, 0},
		{"Direction without field after comma", "name, desc", ErrMissingOperand, 6},
		{"Two directions", "name asc desc", ErrUnexpectedToken, 9},
		{"Missing comma", "name age", ErrUnexpectedToken, 5},
		{"Parenthesis", "name(", ErrUnexpectedToken, 4},
		{"String literal", "'name'", ErrUnexpectedToken, 0},
		{"Navigation path", "a.b", ErrUnexpectedCharacter, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses, err := ParseOrderBy(tt.input)
			if err == nil {
				t.Fatalf("Expected error, got clauses %v", clauses)
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Expected %v, got %v", tt.kind, err)
			}

			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("Expected *SyntaxError, got %T", err)
			}
			if syntaxErr.Pos != tt.pos {
				t.Errorf("Expected position %d, got %d", tt.pos, syntaxErr.Pos)
			}
		})
	}
}

func TestLowerOrderBy(t *testing.T) {
	clauses, err := ParseOrderBy("age desc, name")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	nodes := LowerOrderBy(clauses, MapFields(map[string]string{"age": "user_age"}))
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(nodes))
	}

	expected := []string{"Desc(user_age)", "Asc(name)"}
	for i, node := range nodes {
		if node.String() != expected[i] {
			t.Errorf("Node %d: expected %s, got %s", i, expected[i], node.String())
		}
		if len(node.BoundArgs()) != 0 {
			t.Errorf("Node %d: expected no bound args, got %v", i, node.BoundArgs())
		}
	}
}

func TestDirectionString(t *testing.T) {
	if Ascending.String() != "asc" {
		t.Errorf("Ascending.String() = %q", Ascending.String())
	}
	if Descending.String() != "desc" {
		t.Errorf("Descending.String() = %q", Descending.String())
	}
}
