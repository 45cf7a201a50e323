// Command pulselogctl is the operator-facing companion to the pulselog
// library: validate a config file before rolling it out, watch one for
// hot-reloads and print what happened, or tail the raw datagrams an
// appender/udp sink is sending.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "pulselogctl",
		Usage: "inspect and validate pulselog configuration",
		Commands: []*cli.Command{
			validateCommand(),
			watchCommand(),
			tailUDPCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
