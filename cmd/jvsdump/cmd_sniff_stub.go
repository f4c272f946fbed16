//go:build !linux

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var sniffCommand = &cli.Command{
	Name:  "sniff",
	Usage: "decode frames from the configured serial device until interrupted",
	Action: func(c *cli.Context) error {
		return fmt.Errorf("sniff needs a termios serial port and is only built on linux")
	},
}
