package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lenslabs/plint/internal/config"
)

var configCmd = &cli.Command{
	Name:   "config",
	Usage:  "Print the effective configuration",
	Action: actionConfig,
}

func actionConfig(c *cli.Context) (err error) {
	err = initLogger(c.String(logLevelFlag), c.Bool(noColorFlag))
	if err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}

	cfg, err := config.Load(c.Path(configFlag), c.IsSet(configFlag))
	if err != nil {
		return fmt.Errorf("failed to load config file %q: %w", c.Path(configFlag), err)
	}
	cfg.SetDisabledChecks(c.StringSlice(disabledFlag))

	fmt.Fprintln(os.Stderr, cfg.String())

	return nil
}
