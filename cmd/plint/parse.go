package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	promParser "github.com/prometheus/prometheus/promql/parser"
	"github.com/urfave/cli/v2"

	"github.com/lenslabs/plint/internal/promql"
	"github.com/lenslabs/plint/internal/sqlquery"
)

const (
	kindFlag = "kind"

	levelStep = 2
)

var parseCmd = &cli.Command{
	Name:   "parse",
	Usage:  "Parse a query and print details, use it for debugging or understanding query details.",
	Action: actionParse,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    kindFlag,
			Aliases: []string{"k"},
			Value:   "promql",
			Usage:   "Query language to parse the input as, promql or sql",
		},
	},
}

func actionParse(c *cli.Context) (err error) {
	err = initLogger(c.String(logLevelFlag), c.Bool(noColorFlag))
	if err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}

	parts := c.Args().Slice()
	if len(parts) == 0 {
		return errors.New("a query string is required")
	}
	query := strings.Join(parts, " ")

	switch kind := c.String(kindFlag); kind {
	case "promql":
		return parsePromQLQuery(query)
	case "sql":
		return parseSQLQuery(query)
	default:
		return fmt.Errorf("unknown query kind %q", kind)
	}
}

func printNode(ident int, format string, a ...interface{}) {
	prefix := strings.Repeat(" ", ident)
	fmt.Printf(prefix+format+"\n", a...)
}

func parsePromQLQuery(query string) error {
	meta := promql.ParseQuery(query)
	printNode(0, "++ metric: %q", meta.Metric)
	if meta.Labels.Found {
		printNode(0, "++ label block: %d-%d", meta.Labels.Start, meta.Labels.End)
		names := make([]string, 0, len(meta.Labels.Pairs))
		for name := range meta.Labels.Pairs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			printNode(levelStep, "* %s=%q", name, meta.Labels.Pairs[name])
		}
	}

	expr, err := promParser.ParseExpr(query)
	if err != nil {
		return err
	}
	parseNode(expr, 0)
	return nil
}

func parseNode(node promParser.Node, level int) {
	printNode(level, "++ node: %v", node)
	level += levelStep

	switch n := node.(type) {
	case promParser.Expressions:
		printNode(level, "Expressions:")
		for _, e := range n {
			parseNode(e, level+levelStep)
		}
	case *promParser.AggregateExpr:
		printNode(level, "AggregateExpr:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* Op: %v", n.Op)
		printNode(level, "* Expr: %v", n.Expr)
		printNode(level, "* Param: %v", n.Param)
		printNode(level, "* Grouping: %v", n.Grouping)
		printNode(level, "* Without: %v", n.Without)
		parseNode(n.Expr, level+levelStep)
	case *promParser.BinaryExpr:
		printNode(level, "BinaryExpr:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* Op: %v", n.Op)
		printNode(level, "* LHS: %v", n.LHS)
		printNode(level, "* RHS: %v", n.RHS)
		printNode(level, "* VectorMatching:")
		if n.VectorMatching != nil {
			printNode(level+levelStep, "* Card: %v", n.VectorMatching.Card)
			printNode(level+levelStep, "* MatchingLabels: %v", n.VectorMatching.MatchingLabels)
			printNode(level+levelStep, "* On: %v", n.VectorMatching.On)
			printNode(level+levelStep, "* Include: %v", n.VectorMatching.Include)
		}
		printNode(level, "* ReturnBool: %v", n.ReturnBool)
		parseNode(n.LHS, level+levelStep)
		parseNode(n.RHS, level+levelStep)
	case *promParser.Call:
		printNode(level, "Call:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* Func: %v", n.Func.Name)
		printNode(level, "* Args: %v", n.Args)
		parseNode(n.Args, level+levelStep)
	case *promParser.ParenExpr:
		printNode(level, "ParenExpr:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* Expr: %v", n.Expr)
		parseNode(n.Expr, level+levelStep)
	case *promParser.SubqueryExpr:
		printNode(level, "SubqueryExpr:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* Expr: %v", n.Expr)
		printNode(level, "* Step: %v", n.Step)
		printNode(level, "* Range: %v", n.Range)
		printNode(level, "* Offset: %v", n.Offset)
		parseNode(n.Expr, level+levelStep)
	case *promParser.MatrixSelector:
		printNode(level, "MatrixSelector:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* VectorSelector: %v", n.VectorSelector)
		printNode(level, "* Range: %v", n.Range)
	case *promParser.VectorSelector:
		printNode(level, "VectorSelector:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* Name: %v", n.Name)
		printNode(level, "* Offset: %v", n.Offset)
		printNode(level, "* LabelMatchers: %v", n.LabelMatchers)
	case *promParser.NumberLiteral:
		printNode(level, "NumberLiteral:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
	case *promParser.StringLiteral:
		printNode(level, "StringLiteral:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
	case *promParser.UnaryExpr:
		printNode(level, "UnaryExpr:")
		level += levelStep
		printNode(level, "* Type: %v", n.Type())
		printNode(level, "* Op: %v", n.Op)
		printNode(level, "* Expr: %v", n.Expr)
	default:
		printNode(level, "! Unsupported node")
	}
}

func parseSQLQuery(query string) error {
	node, err := sqlquery.Parse(query)
	if err != nil {
		return err
	}

	for n := node; n != nil; n = n.Next {
		printNode(0, "++ select:")
		for _, col := range n.Columns {
			var verdict string
			switch {
			case col.Alias != "":
				verdict = fmt.Sprintf("aliased as %q", col.Alias)
			case col.Simple:
				verdict = "bare column reference"
			default:
				verdict = "missing alias"
			}
			printNode(levelStep, "* %s: %s", col.Name, verdict)
		}
		if n.Op != "" {
			printNode(0, "++ %s", n.Op)
		}
	}

	printNode(0, "++ all projections aliased: %v", sqlquery.AllProjectionsHaveAlias(query))
	return nil
}
