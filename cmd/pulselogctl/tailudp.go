package main

import (
	"context"
	"fmt"
	"net"

	"github.com/urfave/cli/v3"
)

func tailUDPCommand() *cli.Command {
	return &cli.Command{
		Name:      "tail-udp",
		Usage:     "listen on a UDP address and print every datagram an appender/udp sink sends",
		ArgsUsage: "<host:port>",
		Action: func(ctx context.Context, c *cli.Command) error {
			addr := c.Args().First()
			if addr == "" {
				return fmt.Errorf("tail-udp: a listen address is required")
			}
			udpAddr, err := net.ResolveUDPAddr("udp", addr)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", addr, err)
			}
			conn, err := net.ListenUDP("udp", udpAddr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			defer conn.Close()

			go func() {
				<-ctx.Done()
				conn.Close()
			}()

			fmt.Printf("listening on %s (Ctrl-C to stop)\n", addr)
			buf := make([]byte, 64*1024)
			for {
				n, from, err := conn.ReadFromUDP(buf)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("reading: %w", err)
				}
				fmt.Printf("%s: %s", from, buf[:n])
			}
		},
	}
}
