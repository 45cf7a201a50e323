package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kdevops/pulselog/config"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "parse and build a config file, reporting any error",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("validate: a config file path is required")
			}
			f, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			built, err := f.Build()
			if err != nil {
				return fmt.Errorf("building %s: %w", path, err)
			}
			fmt.Printf("%s: ok — %d appender(s), %d logger override(s)\n",
				path, len(built.Resolver.Appenders), len(built.Resolver.Loggers))
			return nil
		},
	}
}
