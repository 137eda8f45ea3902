package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/prometheus/model/labels"
	"github.com/urfave/cli/v2"

	"github.com/lenslabs/plint/internal/promql"
)

const (
	labelNameFlag    = "name"
	labelValueFlag   = "value"
	labelOpFlag      = "op"
	allSelectorsFlag = "all"
)

var labelCmd = &cli.Command{
	Name:   "label",
	Usage:  "Add a label matcher to a query and print the result",
	Action: actionLabel,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  labelNameFlag,
			Usage: "Label name to add",
		},
		&cli.StringFlag{
			Name:  labelValueFlag,
			Usage: "Label value to add, with an empty value only the bare label name is inserted",
		},
		&cli.StringFlag{
			Name:  labelOpFlag,
			Value: "=",
			Usage: "Label matching operator",
		},
		&cli.BoolFlag{
			Name:    allSelectorsFlag,
			Aliases: []string{"a"},
			Value:   false,
			Usage:   "Add the matcher to every selector in the query, requires a valid query",
		},
	},
}

func actionLabel(c *cli.Context) (err error) {
	err = initLogger(c.String(logLevelFlag), c.Bool(noColorFlag))
	if err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}

	parts := c.Args().Slice()
	if len(parts) == 0 {
		return errors.New("a query string is required")
	}
	query := strings.Join(parts, " ")

	name := c.String(labelNameFlag)
	if name == "" {
		return errors.New("a label name is required")
	}
	value := c.String(labelValueFlag)
	op := c.String(labelOpFlag)

	if c.Bool(allSelectorsFlag) {
		matchType, err := parseMatchOp(op)
		if err != nil {
			return err
		}
		matcher, err := labels.NewMatcher(matchType, name, value)
		if err != nil {
			return err
		}
		out, err := promql.InjectMatchers(query, matcher)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Println(promql.AddLabel(query, name, value, op))
	return nil
}

func parseMatchOp(op string) (labels.MatchType, error) {
	switch op {
	case "=":
		return labels.MatchEqual, nil
	case "!=":
		return labels.MatchNotEqual, nil
	case "=~":
		return labels.MatchRegexp, nil
	case "!~":
		return labels.MatchNotRegexp, nil
	}
	return labels.MatchEqual, fmt.Errorf("unsupported label operator %q", op)
}
