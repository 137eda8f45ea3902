package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lenslabs/plint/internal/checks"
	"github.com/lenslabs/plint/internal/discovery"
	"github.com/lenslabs/plint/internal/reporter"
)

const (
	minSeverityFlag = "min-severity"
	failOnFlag      = "fail-on"
)

var lintCmd = &cli.Command{
	Name:   "lint",
	Usage:  "Lint specified files",
	Action: actionLint,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    minSeverityFlag,
			Aliases: []string{"m"},
			Value:   "warning",
			Usage:   "Set minimum severity for reported problems",
		},
		&cli.StringFlag{
			Name:    failOnFlag,
			Aliases: []string{"f"},
			Value:   "bug",
			Usage:   "Exit with non-zero code if there are problems with given severity (or higher) detected",
		},
	},
}

func actionLint(c *cli.Context) error {
	meta, err := actionSetup(c)
	if err != nil {
		return err
	}

	paths := c.Args().Slice()
	if len(paths) == 0 {
		return errors.New("at least one file or directory required")
	}

	minSeverity, err := checks.ParseSeverity(c.String(minSeverityFlag))
	if err != nil {
		return fmt.Errorf("invalid --%s value: %w", minSeverityFlag, err)
	}

	failOn, err := checks.ParseSeverity(c.String(failOnFlag))
	if err != nil {
		return fmt.Errorf("invalid --%s value: %w", failOnFlag, err)
	}

	finder := discovery.NewGlobFinder(
		paths,
		discovery.NewPathFilter(meta.cfg.Parser.CompileInclude(), meta.cfg.Parser.CompileExclude()),
	)
	entries, err := finder.Find()
	if err != nil {
		return err
	}

	summary := checkPanels(context.Background(), meta.workers, meta.cfg, entries)

	reps := []reporter.Reporter{
		reporter.NewConsoleReporter(os.Stderr, minSeverity),
	}
	if meta.cfg.Report != nil && meta.cfg.Report.JSON != "" {
		reps = append(reps, reporter.NewJSONReporter(meta.cfg.Report.JSON))
	}

	if err = submitReports(reps, summary); err != nil {
		return fmt.Errorf("submitting reports: %w", err)
	}

	bySeverity := summary.CountBySeverity()
	if len(bySeverity) > 0 {
		slog.Info("Problems found", logSeverityCounters(bySeverity)...)
	}

	var problems int
	for s, c := range bySeverity {
		if s >= failOn {
			problems += c
		}
	}
	if problems > 0 {
		return errors.New("problems found")
	}

	return nil
}
