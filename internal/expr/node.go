// Package expr defines the backend-agnostic expression tree handed to SQL builders.
//
// A Node is one of three shapes:
//   - a column reference: Literal holds the column name, no operator, no args
//   - a placeholder: Literal holds "?" and Args holds exactly one bound value
//   - an operator: Operator is set and Children holds the operands
//
// Literal values are never written into the textual form of a tree. They travel in
// Args so that builders can emit parameterized statements.
package expr

import (
	"fmt"
	"strings"
)

// PlaceholderText is the textual form of a bound parameter.
const PlaceholderText = "?"

// Kind identifies the shape of a Node.
type Kind int

const (
	KindColumn Kind = iota
	KindPlaceholder
	KindOperator
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "Column"
	case KindPlaceholder:
		return "Placeholder"
	case KindOperator:
		return "Operator"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a single expression tree node.
type Node struct {
	Literal  *string
	Operator Operator
	Children []*Node
	Args     []any
}

// Column returns a column reference node.
func Column(name string) *Node {
	return &Node{Literal: &name}
}

// Placeholder returns a parameter placeholder node bound to value.
func Placeholder(value any) *Node {
	text := PlaceholderText
	return &Node{Literal: &text, Args: []any{value}}
}

// Op returns an operator node over the given children.
func Op(op Operator, children ...*Node) *Node {
	return &Node{Operator: op, Children: children}
}

// Kind reports the shape of the node.
func (n *Node) Kind() Kind {
	if n.Operator != OpNone {
		return KindOperator
	}
	if n.Literal != nil && *n.Literal == PlaceholderText && len(n.Args) == 1 {
		return KindPlaceholder
	}
	return KindColumn
}

// Text returns the literal text of the node, or "" for operator nodes.
func (n *Node) Text() string {
	if n == nil || n.Literal == nil {
		return ""
	}
	return *n.Literal
}

// Value returns the bound value of a placeholder node.
func (n *Node) Value() (any, bool) {
	if n == nil || n.Kind() != KindPlaceholder {
		return nil, false
	}
	return n.Args[0], true
}

// BoundArgs collects the bound values of the tree in depth-first, left-to-right order.
func (n *Node) BoundArgs() []any {
	var args []any
	n.walk(func(node *Node) {
		args = append(args, node.Args...)
	})
	return args
}

// Columns lists the column names referenced by the tree in depth-first order.
// Repeated references are reported once.
func (n *Node) Columns() []string {
	var columns []string
	seen := make(map[string]struct{})
	n.walk(func(node *Node) {
		if node.Kind() != KindColumn {
			return
		}
		name := node.Text()
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		columns = append(columns, name)
	})
	return columns
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.walk(fn)
	}
}

// String renders the tree for debugging, e.g. And(GreaterThan(age, ?), Like(name, ?)).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	switch n.Kind() {
	case KindColumn, KindPlaceholder:
		sb.WriteString(n.Text())
	case KindOperator:
		sb.WriteString(n.Operator.String())
		sb.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.writeTo(sb)
		}
		sb.WriteByte(')')
	}
}
