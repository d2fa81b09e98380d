package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	odataquery "github.com/nlstn/go-odata-query"
	"github.com/nlstn/go-odata-query/internal/sqlbuild"
	"github.com/urfave/cli"
)

// exitCode is 2 for rejected query options and 1 for everything else.
func exitCode(err error) int {
	if odataquery.StatusCode(err) == http.StatusBadRequest {
		return 2
	}
	return 1
}

func singleArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%s: expected exactly one argument, got %d", c.Command.Name, c.NArg())
	}
	return c.Args().First(), nil
}

func newParser(c *cli.Context) (*odataquery.Parser, error) {
	columns := make(map[string]string)
	for _, mapping := range c.StringSlice("map") {
		field, column, ok := strings.Cut(mapping, "=")
		if !ok || field == "" || column == "" {
			return nil, fmt.Errorf("invalid mapping '%s', expected field=column", mapping)
		}
		columns[field] = column
	}
	return odataquery.New(odataquery.WithFieldMap(columns)), nil
}

func tokensCommand(c *cli.Context) error {
	input, err := singleArg(c)
	if err != nil {
		return err
	}

	tokens, err := odataquery.Tokenize(input)
	if err != nil {
		return err
	}
	for _, token := range tokens {
		fmt.Fprintf(c.App.Writer, "%-4d %-12s %s\n", token.Pos, token.Type, token.Value)
	}
	return nil
}

func filterCommand(c *cli.Context) error {
	input, err := singleArg(c)
	if err != nil {
		return err
	}
	p, err := newParser(c)
	if err != nil {
		return err
	}

	if c.Bool("ast") {
		ast, err := p.FilterAST(input)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, ast)
		return nil
	}

	node, err := p.Filter(input)
	if err != nil {
		return err
	}
	printNode(c, node)

	if c.Bool("sql") {
		where, args, err := sqlbuild.Render(node)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "where: %s\n", where)
		fmt.Fprintf(c.App.Writer, "args:  %v\n", args)
	}
	return nil
}

func orderByCommand(c *cli.Context) error {
	input, err := singleArg(c)
	if err != nil {
		return err
	}
	p, err := newParser(c)
	if err != nil {
		return err
	}

	nodes, err := p.OrderBy(input)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		fmt.Fprintln(c.App.Writer, node)
	}
	return nil
}

func selectCommand(c *cli.Context) error {
	input, err := singleArg(c)
	if err != nil {
		return err
	}

	fields, err := odataquery.New().Select(input)
	if err != nil {
		return err
	}
	for _, field := range fields {
		fmt.Fprintln(c.App.Writer, field)
	}
	return nil
}

func pageCommand(c *cli.Context) error {
	values := make(map[string]string)
	if c.IsSet("top") {
		values["$top"] = c.String("top")
	}
	if c.IsSet("skip") {
		values["$skip"] = c.String("skip")
	}

	node, err := odataquery.New().TopSkipValues(values)
	if err != nil {
		return err
	}
	if node == nil {
		fmt.Fprintln(c.App.Writer, "no pagination")
		return nil
	}
	printNode(c, node)
	return nil
}

func queryCommand(c *cli.Context) error {
	input, err := singleArg(c)
	if err != nil {
		return err
	}
	p, err := newParser(c)
	if err != nil {
		return err
	}

	values, err := url.ParseQuery(strings.TrimPrefix(input, "?"))
	if err != nil {
		return fmt.Errorf("invalid query string: %w", err)
	}
	q, err := p.Parse(context.Background(), values)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if q.Filter != nil {
		where, args, err := sqlbuild.Render(q.Filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "filter:  %s %v\n", where, args)
	}
	if len(q.OrderBy) > 0 {
		order, err := sqlbuild.RenderOrderBy(q.OrderBy)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "orderby: %s\n", order)
	}
	if q.Select != nil {
		fmt.Fprintf(w, "select:  %s\n", strings.Join(q.Select, ", "))
	}
	if q.Page != nil {
		page, err := odataquery.TopSkipFromNode(q.Page)
		if err != nil {
			return err
		}
		if page.Top != nil {
			fmt.Fprintf(w, "top:     %d\n", *page.Top)
		}
		if page.Skip != nil {
			fmt.Fprintf(w, "skip:    %d\n", *page.Skip)
		}
	}
	return nil
}

func printNode(c *cli.Context, node *odataquery.Node) {
	fmt.Fprintf(c.App.Writer, "tree: %s\n", node)
	fmt.Fprintf(c.App.Writer, "args: %v\n", node.BoundArgs())
}
