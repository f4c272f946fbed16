package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"jvs-go/pkg/log"
)

var logsCommand = &cli.Command{
	Name:      "logs",
	Usage:     "retrieve log entries from past sniff sessions",
	UsageText: "jvsdump logs [-n 50] [--pretty]",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of entries to retrieve `NUMBER`",
			Value:   100,
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "prefix each entry with its id and insertion time",
		},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	count := c.Int("count")
	if count <= 0 {
		return cli.Exit("Error: --count (-n) must be a positive number.", 1)
	}

	if err := log.Init("jvsdump.db"); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}
	defer log.Close()

	results, err := log.GetLastNLogs(count)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found.")
		return nil
	}

	for _, entry := range results {
		if c.Bool("pretty") {
			fmt.Printf("%d %s %s", entry.ID, entry.InsertedAt.Format(time.RFC3339), entry.LogData)
		} else {
			fmt.Print(entry.LogData)
		}
	}
	return nil
}
