package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kdevops/pulselog/config"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "watch a config file and print every reload, valid or not",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("watch: a config file path is required")
			}
			if _, err := config.Load(path); err != nil {
				return fmt.Errorf("initial load of %s: %w", path, err)
			}
			fmt.Printf("watching %s (Ctrl-C to stop)\n", path)

			w, err := config.Watch(path, func(f *config.File) error {
				built, err := f.Build()
				if err != nil {
					fmt.Printf("reload: rejected — %v\n", err)
					return err
				}
				fmt.Printf("reload: ok — %d appender(s), %d logger override(s)\n",
					len(built.Resolver.Appenders), len(built.Resolver.Loggers))
				return nil
			})
			if err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
			defer w.Close()

			sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-sigCtx.Done()
			return nil
		},
	}
}
