package odataquery

import (
	"github.com/nlstn/go-odata-query/internal/expr"
	"github.com/nlstn/go-odata-query/internal/query"
)

// Node is the backend-agnostic expression tree produced by the parsers.
//
// A Node is a column reference, a parameter placeholder or an operator over
// child nodes. Literal values from the query are only ever carried in Args of
// placeholder nodes, never in the textual form:
//
//	n, _ := odataquery.New().Filter("contains(Name,'Jo')")
//	fmt.Println(n)             // Like(Name, ?)
//	fmt.Println(n.BoundArgs()) // [%Jo%]
type Node = expr.Node

// NodeKind re-exports the node shape enumeration.
type NodeKind = expr.Kind

// Operator re-exports the expression tree operator enumeration.
type Operator = expr.Operator

// Expression tree operators.
const (
	OpEqual            = expr.OpEqual
	OpNotEqual         = expr.OpNotEqual
	OpGreaterThan      = expr.OpGreaterThan
	OpGreaterThanEqual = expr.OpGreaterThanEqual
	OpLessThan         = expr.OpLessThan
	OpLessThanEqual    = expr.OpLessThanEqual
	OpAnd              = expr.OpAnd
	OpOr               = expr.OpOr
	OpNot              = expr.OpNot
	OpPlus             = expr.OpPlus
	OpMinus            = expr.OpMinus
	OpMultiply         = expr.OpMultiply
	OpDivide           = expr.OpDivide
	OpLike             = expr.OpLike
	OpIn               = expr.OpIn
	OpConcat           = expr.OpConcat
	OpAsc              = expr.OpAsc
	OpDesc             = expr.OpDesc
	OpLimit            = expr.OpLimit
)

// Token re-exports the tokenizer's token type for external consumers.
type Token = query.Token

// TokenType re-exports the token kind enumeration for external consumers.
type TokenType = query.TokenType

// ASTNode re-exports the $filter syntax tree interface. Its implementations are
// *BinaryExpr, *UnaryExpr, *FunctionCall, *Literal and *Identifier.
type ASTNode = query.ASTNode

// BinaryExpr re-exports the binary expression node.
type BinaryExpr = query.BinaryExpr

// UnaryExpr re-exports the unary expression node.
type UnaryExpr = query.UnaryExpr

// FunctionCall re-exports the function call node.
type FunctionCall = query.FunctionCall

// Literal re-exports the literal node.
type Literal = query.Literal

// Identifier re-exports the identifier node.
type Identifier = query.Identifier

// OrderByClause re-exports a parsed $orderby clause.
type OrderByClause = query.OrderByClause

// Direction re-exports the sort direction of an $orderby clause.
type Direction = query.Direction

// Sort directions.
const (
	Ascending  = query.Ascending
	Descending = query.Descending
)

// TopSkip re-exports the pagination parameters. Nil fields are absent.
type TopSkip = query.TopSkip

// UnboundedTop is the size carried by a pagination node when only $skip was given.
const UnboundedTop = query.UnboundedTop

// FieldMap resolves logical field names to column names.
type FieldMap = query.FieldMap

// Query holds the lowered options of one request. Absent options are nil.
type Query = query.QueryOptions

// Tokenize tokenizes a $filter expression.
func Tokenize(input string) ([]Token, error) {
	return query.Tokenize(input)
}

// TopSkipFromNode recovers pagination parameters from a node produced by the
// top/skip parser. The unbounded-top marker is reported as an absent top.
func TopSkipFromNode(node *Node) (TopSkip, error) {
	return query.TopSkipFromNode(node)
}

// MapFields builds a FieldMap from a field-to-column table.
func MapFields(columns map[string]string) FieldMap {
	return query.MapFields(columns)
}

// Int64 returns a pointer to v, for building TopSkip values.
func Int64(v int64) *int64 {
	return &v
}
