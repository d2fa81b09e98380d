// Command odataq prints the tokens, syntax trees, expression trees and SQL
// produced for OData query options.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

func newApp(stdout io.Writer) *cli.App {
	mapFlag := cli.StringSliceFlag{
		Name:  "map, m",
		Usage: "Map a field to a column, as field=column (repeatable)",
	}

	app := cli.NewApp()
	app.Name = "odataq"
	app.Usage = "inspect how OData query options are parsed"
	app.Version = "0.1.0"
	app.Writer = stdout
	app.Commands = []cli.Command{
		cli.Command{
			Name:      "tokens",
			Usage:     "Print the tokens of a $filter expression",
			ArgsUsage: "<filter>",
			Action:    tokensCommand,
		},
		cli.Command{
			Name:      "filter",
			Usage:     "Print the expression tree and bound values of a $filter expression",
			ArgsUsage: "<filter>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "ast",
					Usage: "Print the syntax tree instead of the lowered expression tree",
				},
				cli.BoolFlag{
					Name:  "sql",
					Usage: "Also print the rendered WHERE clause",
				},
				mapFlag,
			},
			Action: filterCommand,
		},
		cli.Command{
			Name:      "orderby",
			Usage:     "Print the sort nodes of an $orderby expression",
			ArgsUsage: "<orderby>",
			Flags:     []cli.Flag{mapFlag},
			Action:    orderByCommand,
		},
		cli.Command{
			Name:      "select",
			Usage:     "Print the fields of a $select list",
			ArgsUsage: "<select>",
			Action:    selectCommand,
		},
		cli.Command{
			Name:  "page",
			Usage: "Print the pagination node for $top and $skip",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "top",
					Usage: "Value of $top",
				},
				cli.StringFlag{
					Name:  "skip",
					Usage: "Value of $skip",
				},
			},
			Action: pageCommand,
		},
		cli.Command{
			Name:      "query",
			Usage:     "Parse a full query string, e.g. '$filter=Price gt 5&$top=10'",
			ArgsUsage: "<query>",
			Flags:     []cli.Flag{mapFlag},
			Action:    queryCommand,
		},
	}
	return app
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
