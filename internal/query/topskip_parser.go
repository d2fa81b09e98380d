package query

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/nlstn/go-odata-query/internal/expr"
)

// UnboundedTop is the size bound to a Limit node when only an offset was requested.
// TopSkipFromNode recognizes it and reports no top.
const UnboundedTop int64 = math.MaxInt64

// TopSkip holds the pagination parameters. Nil means absent.
type TopSkip struct {
	Top  *int64
	Skip *int64
}

// ParseTopSkip validates pagination parameters and returns a Limit node, or nil
// when no pagination applies. The node's first child is the size and the optional
// second child is a non-zero offset.
func ParseTopSkip(params TopSkip) (*expr.Node, error) {
	if params.Top != nil && *params.Top < 0 {
		return nil, &PaginationError{Param: "top", Value: strconv.FormatInt(*params.Top, 10)}
	}
	if params.Skip != nil && *params.Skip < 0 {
		return nil, &PaginationError{Param: "skip", Value: strconv.FormatInt(*params.Skip, 10)}
	}

	var skip int64
	if params.Skip != nil {
		skip = *params.Skip
	}

	if params.Top == nil && skip == 0 {
		return nil, nil
	}

	top := UnboundedTop
	if params.Top != nil {
		top = *params.Top
	}

	node := expr.Op(expr.OpLimit, expr.Placeholder(top))
	if skip > 0 {
		node.Children = append(node.Children, expr.Placeholder(skip))
	}
	return node, nil
}

// ParseTopSkipValues parses "$top" and "$skip" from a map of raw query values.
func ParseTopSkipValues(values map[string]string) (*expr.Node, error) {
	var params TopSkip
	if raw, ok := values["$top"]; ok {
		top, err := parseNonNegativeInt(raw, "top")
		if err != nil {
			return nil, err
		}
		params.Top = &top
	}
	if raw, ok := values["$skip"]; ok {
		skip, err := parseNonNegativeInt(raw, "skip")
		if err != nil {
			return nil, err
		}
		params.Skip = &skip
	}
	return ParseTopSkip(params)
}

// ParseTopSkipQuery parses "$top" and "$skip" out of a full query string such as
// "?$filter=...&$top=10&$skip=20".
func ParseTopSkipQuery(rawQuery string) (*expr.Node, error) {
	parsed, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return nil, fmt.Errorf("invalid query string: %w", err)
	}
	return ParseTopSkipValues(firstValues(parsed, "$top", "$skip"))
}

// firstValues flattens the named keys of url.Values to their first value.
func firstValues(values url.Values, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := values[key]; ok && len(v) > 0 {
			out[key] = v[0]
		}
	}
	return out
}

// TopSkipFromNode recovers the parameters from a node built by ParseTopSkip.
// A nil node means no pagination.
func TopSkipFromNode(node *expr.Node) (TopSkip, error) {
	var params TopSkip
	if node == nil {
		return params, nil
	}
	if node.Operator != expr.OpLimit || len(node.Children) == 0 || len(node.Children) > 2 {
		return params, fmt.Errorf("%w: expected Limit node, got %s", errMalformedNode, node)
	}

	top, err := limitChildValue(node.Children[0])
	if err != nil {
		return params, err
	}
	if top != UnboundedTop {
		params.Top = &top
	}

	if len(node.Children) == 2 {
		skip, err := limitChildValue(node.Children[1])
		if err != nil {
			return params, err
		}
		params.Skip = &skip
	}
	return params, nil
}

func limitChildValue(child *expr.Node) (int64, error) {
	value, ok := child.Value()
	if !ok {
		return 0, fmt.Errorf("%w: Limit child must be a placeholder", errMalformedNode)
	}
	n, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: Limit value must be int64, got %T", errMalformedNode, value)
	}
	return n, nil
}

// parseNonNegativeInt parses a string as a non-negative integer
func parseNonNegativeInt(str, paramName string) (int64, error) {
	trimmed := strings.TrimSpace(str)
	if trimmed == "" || strings.Trim(trimmed, "0123456789") != "" {
		return 0, &PaginationError{Param: paramName, Value: str}
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, &PaginationError{Param: paramName, Value: str}
	}
	return value, nil
}
