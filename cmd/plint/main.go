package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"

	"github.com/lenslabs/plint/internal/config"
	"github.com/lenslabs/plint/internal/log"
)

const (
	configFlag   = "config"
	workersFlag  = "workers"
	logLevelFlag = "log-level"
	noColorFlag  = "no-color"
	disabledFlag = "disabled"
)

var (
	version = "unknown"
	commit  = "unknown"
)

func newApp() *cli.App {
	return &cli.App{
		Usage: "Dashboard panel linter",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Value:   ".plint.hcl",
				Usage:   "Configuration file to use",
			},
			&cli.IntFlag{
				Name:    workersFlag,
				Aliases: []string{"w"},
				Value:   10,
				Usage:   "Number of worker threads for running checks",
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   fmt.Sprintf("Log level (%s)", strings.Join(log.LevelNames(), ", ")),
			},
			&cli.BoolFlag{
				Name:    noColorFlag,
				Aliases: []string{"n"},
				Value:   false,
				Usage:   "Disable output colouring",
			},
			&cli.StringSliceFlag{
				Name:    disabledFlag,
				Aliases: []string{"d"},
				Value:   cli.NewStringSlice(),
				Usage:   "List of checks to disable (example: promql/labels)",
			},
		},
		Commands: []*cli.Command{
			versionCmd,
			lintCmd,
			watchCmd,
			configCmd,
			parseCmd,
			labelCmd,
		},
	}
}

type actionMeta struct {
	cfg     config.Config
	workers int
}

func actionSetup(c *cli.Context) (meta actionMeta, err error) {
	err = initLogger(c.String(logLevelFlag), c.Bool(noColorFlag))
	if err != nil {
		return meta, fmt.Errorf("failed to set log level: %w", err)
	}

	meta.workers = c.Int(workersFlag)
	if meta.workers < 1 {
		return meta, fmt.Errorf("--%s flag must be > 0", workersFlag)
	}

	meta.cfg, err = config.Load(c.Path(configFlag), c.IsSet(configFlag))
	if err != nil {
		return meta, fmt.Errorf("failed to load config file %q: %w", c.Path(configFlag), err)
	}
	meta.cfg.SetDisabledChecks(c.StringSlice(disabledFlag))

	return meta, nil
}

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Execution completed with error(s)", slog.Any("err", err))
		os.Exit(1)
	}
}
