package query

import (
	"fmt"
	"net/url"

	"github.com/nlstn/go-odata-query/internal/expr"
)

// QueryOptions holds the lowered query options of one request. Options absent
// from the request stay nil.
type QueryOptions struct {
	Filter  *expr.Node
	OrderBy []*expr.Node
	Select  []string
	Page    *expr.Node
}

// ParseQueryOptions parses the $filter, $orderby, $select, $top and $skip
// parameters present in queryParams. Each parser runs only for its own key.
func ParseQueryOptions(queryParams url.Values, fields FieldMap) (*QueryOptions, error) {
	options := &QueryOptions{}

	if err := parseFilterOption(queryParams, fields, options); err != nil {
		return nil, err
	}

	if err := parseOrderByOption(queryParams, fields, options); err != nil {
		return nil, err
	}

	if err := parseSelectOption(queryParams, options); err != nil {
		return nil, err
	}

	if err := parsePageOption(queryParams, options); err != nil {
		return nil, err
	}

	return options, nil
}

// parseFilterOption parses the $filter query parameter
func parseFilterOption(queryParams url.Values, fields FieldMap, options *QueryOptions) error {
	if filterStr := queryParams.Get("$filter"); filterStr != "" {
		filter, err := ParseFilter(filterStr, fields)
		if err != nil {
			return fmt.Errorf("invalid $filter: %w", err)
		}
		options.Filter = filter
	}
	return nil
}

// parseOrderByOption parses the $orderby query parameter
func parseOrderByOption(queryParams url.Values, fields FieldMap, options *QueryOptions) error {
	if orderByStr := queryParams.Get("$orderby"); orderByStr != "" {
		clauses, err := ParseOrderBy(orderByStr)
		if err != nil {
			return fmt.Errorf("invalid $orderby: %w", err)
		}
		options.OrderBy = LowerOrderBy(clauses, fields)
	}
	return nil
}

// parseSelectOption parses the $select query parameter. A present but blank
// $select is an error; an absent one selects everything.
func parseSelectOption(queryParams url.Values, options *QueryOptions) error {
	if !queryParams.Has("$select") {
		return nil
	}
	selected, err := ParseSelect(queryParams.Get("$select"))
	if err != nil {
		return fmt.Errorf("invalid $select: %w", err)
	}
	options.Select = selected
	return nil
}

// parsePageOption parses the $top and $skip query parameters
func parsePageOption(queryParams url.Values, options *QueryOptions) error {
	page, err := ParseTopSkipValues(firstValues(queryParams, "$top", "$skip"))
	if err != nil {
		return err
	}
	options.Page = page
	return nil
}
