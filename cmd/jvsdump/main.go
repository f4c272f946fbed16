package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var Version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "jvsdump",
		Usage:   "encode, decode and sniff JVS bus frames",
		Version: Version,
		Commands: []*cli.Command{
			encodeCommand,
			decodeCommand,
			sniffCommand,
			logsCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
