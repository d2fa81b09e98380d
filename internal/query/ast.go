package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ASTNode represents a node in the abstract syntax tree.
// The set of implementations is closed: *BinaryExpr, *UnaryExpr, *FunctionCall,
// *Literal and *Identifier.
type ASTNode interface {
	astNode()
	fmt.Stringer
}

// BinaryOperator is an infix operator of the filter grammar
type BinaryOperator string

const (
	OpEq  BinaryOperator = "eq"
	OpNe  BinaryOperator = "ne"
	OpGt  BinaryOperator = "gt"
	OpGe  BinaryOperator = "ge"
	OpLt  BinaryOperator = "lt"
	OpLe  BinaryOperator = "le"
	OpAnd BinaryOperator = "and"
	OpOr  BinaryOperator = "or"
	OpAdd BinaryOperator = "add"
	OpSub BinaryOperator = "sub"
	OpMul BinaryOperator = "mul"
	OpDiv BinaryOperator = "div"
)

// UnaryOperator is a prefix operator of the filter grammar
type UnaryOperator string

const (
	OpNot UnaryOperator = "not"
)

// BinaryExpr represents a binary expression (e.g., A and B, Price gt 100)
type BinaryExpr struct {
	Operator BinaryOperator
	Left     ASTNode
	Right    ASTNode
}

func (e *BinaryExpr) astNode() {}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.Operator, e.Left, e.Right)
}

// UnaryExpr represents a unary expression (e.g., not X)
type UnaryExpr struct {
	Operator UnaryOperator
	Operand  ASTNode
}

func (e *UnaryExpr) astNode() {}

func (e *UnaryExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Operator, e.Operand)
}

// FunctionCall represents a function call (e.g., contains(Name, 'text')).
// Name is lowercased for function keywords and kept verbatim otherwise.
type FunctionCall struct {
	Name string
	Args []ASTNode
}

func (e *FunctionCall) astNode() {}

func (e *FunctionCall) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

// LiteralKind is the lexical kind of a literal
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralNull
)

// Literal represents a literal value. Value holds a string, an int64 or
// decimal.Decimal for numbers, a bool, or nil.
type Literal struct {
	Kind  LiteralKind
	Value any
}

func (e *Literal) astNode() {}

func (e *Literal) String() string {
	switch e.Kind {
	case LiteralString:
		return fmt.Sprintf("%q", e.Value)
	case LiteralNull:
		return "null"
	default:
		return fmt.Sprint(e.Value)
	}
}

// Identifier represents a property name
type Identifier struct {
	Name string
}

func (e *Identifier) astNode() {}

func (e *Identifier) String() string { return e.Name }

// numberLiteral converts the text of a number token. Integers that fit in an
// int64 stay integers; anything else keeps its exact decimal value.
func numberLiteral(text string) (*Literal, error) {
	if isInteger(text) {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return &Literal{Kind: LiteralNumber, Value: v}, nil
		}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, err
	}
	return &Literal{Kind: LiteralNumber, Value: d}, nil
}

func isInteger(text string) bool {
	return !strings.Contains(text, ".")
}
