// Package sqlbuild renders expression trees as parameterized SQL and applies
// them to GORM statements.
package sqlbuild

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-query/internal/expr"
)

var (
	errNilNode             = errors.New("sqlbuild: nil expression node")
	errUnsupportedOperator = errors.New("sqlbuild: unsupported operator")
	errArity               = errors.New("sqlbuild: wrong number of operands")
)

var comparisonSQL = map[expr.Operator]string{
	expr.OpEqual:            "=",
	expr.OpNotEqual:         "!=",
	expr.OpGreaterThan:      ">",
	expr.OpGreaterThanEqual: ">=",
	expr.OpLessThan:         "<",
	expr.OpLessThanEqual:    "<=",
}

var arithmeticSQL = map[expr.Operator]string{
	expr.OpPlus:     "+",
	expr.OpMinus:    "-",
	expr.OpMultiply: "*",
	expr.OpDivide:   "/",
}

// quoteIdent quotes an identifier with double quotes, which sqlite and postgres
// both accept. Embedded double quotes are doubled. Dotted names are quoted per
// segment so "orders.total" becomes "orders"."total".
func quoteIdent(ident string) string {
	segments := strings.Split(ident, ".")
	for i, segment := range segments {
		segments[i] = `"` + strings.ReplaceAll(segment, `"`, `""`) + `"`
	}
	return strings.Join(segments, ".")
}

// Render renders a filter tree as a SQL boolean expression with '?' placeholders.
func Render(node *expr.Node) (string, []interface{}, error) {
	var args []interface{}
	sql, err := render(node, &args)
	if err != nil {
		return "", nil, err
	}
	return sql, args, nil
}

func render(node *expr.Node, args *[]interface{}) (string, error) {
	if node == nil {
		return "", errNilNode
	}

	switch node.Kind() {
	case expr.KindColumn:
		return quoteIdent(node.Text()), nil
	case expr.KindPlaceholder:
		*args = append(*args, node.Args[0])
		return expr.PlaceholderText, nil
	}

	op := node.Operator
	switch {
	case op == expr.OpAnd || op == expr.OpOr:
		return renderLogical(node, args)
	case op == expr.OpNot:
		if len(node.Children) != 1 {
			return "", fmt.Errorf("%w: %s", errArity, op)
		}
		inner, err := render(node.Children[0], args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("NOT (%s)", inner), nil
	case op.IsComparison():
		return renderComparison(node, args)
	case op.IsArithmetic():
		left, right, err := renderPair(node, args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s %s)", left, arithmeticSQL[op], right), nil
	case op == expr.OpLike:
		return renderLike(node, args)
	case op == expr.OpIn:
		return renderIn(node, args)
	case op == expr.OpConcat:
		parts := make([]string, len(node.Children))
		for i, child := range node.Children {
			part, err := render(child, args)
			if err != nil {
				return "", err
			}
			parts[i] = part
		}
		return "(" + strings.Join(parts, " || ") + ")", nil
	}

	return "", fmt.Errorf("%w: %s", errUnsupportedOperator, op)
}

func renderPair(node *expr.Node, args *[]interface{}) (string, string, error) {
	if len(node.Children) != 2 {
		return "", "", fmt.Errorf("%w: %s", errArity, node.Operator)
	}
	left, err := render(node.Children[0], args)
	if err != nil {
		return "", "", err
	}
	right, err := render(node.Children[1], args)
	if err != nil {
		return "", "", err
	}
	return left, right, nil
}

// renderLike renders Like(target, pattern) and Like(target, pattern, escape).
func renderLike(node *expr.Node, args *[]interface{}) (string, error) {
	if len(node.Children) != 3 {
		left, right, err := renderPair(node, args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s LIKE %s", left, right), nil
	}
	parts := make([]string, 3)
	for i, child := range node.Children {
		part, err := render(child, args)
		if err != nil {
			return "", err
		}
		parts[i] = part
	}
	return fmt.Sprintf("%s LIKE %s ESCAPE %s", parts[0], parts[1], parts[2]), nil
}

func renderLogical(node *expr.Node, args *[]interface{}) (string, error) {
	left, right, err := renderPair(node, args)
	if err != nil {
		return "", err
	}
	keyword := "AND"
	if node.Operator == expr.OpOr {
		keyword = "OR"
	}
	return fmt.Sprintf("(%s) %s (%s)", left, keyword, right), nil
}

// renderComparison renders a comparison. Equality against a null literal becomes
// IS NULL / IS NOT NULL since "= NULL" never matches.
func renderComparison(node *expr.Node, args *[]interface{}) (string, error) {
	if len(node.Children) != 2 {
		return "", fmt.Errorf("%w: %s", errArity, node.Operator)
	}
	if isNullPlaceholder(node.Children[1]) {
		switch node.Operator {
		case expr.OpEqual, expr.OpNotEqual:
			left, err := render(node.Children[0], args)
			if err != nil {
				return "", err
			}
			if node.Operator == expr.OpEqual {
				return fmt.Sprintf("%s IS NULL", left), nil
			}
			return fmt.Sprintf("%s IS NOT NULL", left), nil
		}
	}
	left, right, err := renderPair(node, args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, comparisonSQL[node.Operator], right), nil
}

func isNullPlaceholder(node *expr.Node) bool {
	value, ok := node.Value()
	return ok && value == nil
}

func renderIn(node *expr.Node, args *[]interface{}) (string, error) {
	if len(node.Children) < 2 {
		return "", fmt.Errorf("%w: %s", errArity, node.Operator)
	}
	target, err := render(node.Children[0], args)
	if err != nil {
		return "", err
	}
	values := make([]string, len(node.Children)-1)
	for i, child := range node.Children[1:] {
		value, err := render(child, args)
		if err != nil {
			return "", err
		}
		values[i] = value
	}
	return fmt.Sprintf("%s IN (%s)", target, strings.Join(values, ", ")), nil
}

// RenderOrderBy renders Asc/Desc nodes as an ORDER BY list without the keyword.
func RenderOrderBy(nodes []*expr.Node) (string, error) {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		if node == nil || len(node.Children) != 1 || node.Children[0].Kind() != expr.KindColumn {
			return "", fmt.Errorf("%w: orderby node must wrap a single column", errArity)
		}
		column := quoteIdent(node.Children[0].Text())
		switch node.Operator {
		case expr.OpAsc:
			parts[i] = column + " ASC"
		case expr.OpDesc:
			parts[i] = column + " DESC"
		default:
			return "", fmt.Errorf("%w: %s", errUnsupportedOperator, node.Operator)
		}
	}
	return strings.Join(parts, ", "), nil
}
