package query

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-query/internal/expr"
)

var binaryOperators = map[BinaryOperator]expr.Operator{
	OpEq:  expr.OpEqual,
	OpNe:  expr.OpNotEqual,
	OpGt:  expr.OpGreaterThan,
	OpGe:  expr.OpGreaterThanEqual,
	OpLt:  expr.OpLessThan,
	OpLe:  expr.OpLessThanEqual,
	OpAnd: expr.OpAnd,
	OpOr:  expr.OpOr,
	OpAdd: expr.OpPlus,
	OpSub: expr.OpMinus,
	OpMul: expr.OpMultiply,
	OpDiv: expr.OpDivide,
}

// Functions that are part of OData but have no translation here.
var unsupportedFunctions = map[string]bool{
	"length": true,
	"year":   true,
	"month":  true,
	"day":    true,
	"hour":   true,
	"minute": true,
	"second": true,
}

type likeShape struct {
	prefix, suffix bool
}

var likeFunctions = map[string]likeShape{
	"contains":   {prefix: true, suffix: true},
	"startswith": {prefix: false, suffix: true},
	"endswith":   {prefix: true, suffix: false},
}

// Lower translates an AST into an expression tree. Identifiers are resolved
// through fields; literals become placeholders carrying their value.
func Lower(node ASTNode, fields FieldMap) (*expr.Node, error) {
	switch n := node.(type) {
	case *BinaryExpr:
		return lowerBinary(n, fields)
	case *UnaryExpr:
		return lowerUnary(n, fields)
	case *FunctionCall:
		return lowerFunctionCall(n, fields)
	case *Literal:
		return expr.Placeholder(n.Value), nil
	case *Identifier:
		return expr.Column(resolveColumn(fields, n.Name)), nil
	case nil:
		return nil, errNilExpressionNode
	default:
		panic(fmt.Sprintf("query: unhandled AST node %T", node))
	}
}

func lowerBinary(n *BinaryExpr, fields FieldMap) (*expr.Node, error) {
	op, ok := binaryOperators[n.Operator]
	if !ok {
		return nil, loweringError(ErrUnknownFunction, string(n.Operator), "operator has no translation")
	}
	left, err := Lower(n.Left, fields)
	if err != nil {
		return nil, err
	}
	right, err := Lower(n.Right, fields)
	if err != nil {
		return nil, err
	}
	return expr.Op(op, left, right), nil
}

func lowerUnary(n *UnaryExpr, fields FieldMap) (*expr.Node, error) {
	if n.Operator != OpNot {
		return nil, loweringError(ErrUnknownFunction, string(n.Operator), "operator has no translation")
	}
	operand, err := Lower(n.Operand, fields)
	if err != nil {
		return nil, err
	}
	return expr.Op(expr.OpNot, operand), nil
}

func lowerFunctionCall(n *FunctionCall, fields FieldMap) (*expr.Node, error) {
	name := strings.ToLower(n.Name)

	if shape, ok := likeFunctions[name]; ok {
		return lowerLike(n, name, shape, fields)
	}

	switch name {
	case "in":
		return lowerIn(n, fields)
	case "add", "sub", "mul", "div":
		if len(n.Args) != 2 {
			return nil, loweringError(ErrWrongArgumentCount, name, "requires 2 arguments, got %d", len(n.Args))
		}
		return lowerBinary(&BinaryExpr{Operator: BinaryOperator(name), Left: n.Args[0], Right: n.Args[1]}, fields)
	}

	if unsupportedFunctions[name] {
		return nil, loweringError(ErrUnsupportedFunction, n.Name, "function is not supported by this parser")
	}
	return nil, loweringError(ErrUnknownFunction, n.Name, "no such function")
}

func lowerLike(n *FunctionCall, name string, shape likeShape, fields FieldMap) (*expr.Node, error) {
	if len(n.Args) != 2 {
		return nil, loweringError(ErrWrongArgumentCount, name, "requires 2 arguments, got %d", len(n.Args))
	}
	target, err := Lower(n.Args[0], fields)
	if err != nil {
		return nil, err
	}
	value, err := Lower(n.Args[1], fields)
	if err != nil {
		return nil, err
	}
	operands, err := buildLikePattern(name, n.Args[1], value, shape.prefix, shape.suffix)
	if err != nil {
		return nil, err
	}
	return expr.Op(expr.OpLike, append([]*expr.Node{target}, operands...)...), nil
}

func lowerIn(n *FunctionCall, fields FieldMap) (*expr.Node, error) {
	if len(n.Args) < 2 {
		return nil, loweringError(ErrWrongArgumentCount, "in", "requires at least 2 arguments, got %d", len(n.Args))
	}
	children := make([]*expr.Node, len(n.Args))
	for i, arg := range n.Args {
		child, err := Lower(arg, fields)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return expr.Op(expr.OpIn, children...), nil
}
