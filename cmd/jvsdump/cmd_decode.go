package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"jvs-go/pkg/capture"
	"jvs-go/pkg/framing"
)

var decodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "decode frames from a capture file or a hex string",
	UsageText: "jvsdump decode [--layout response] (--file frames.jvscap | E0FF03010205)",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "capture file to read (.zst decompresses)"},
		&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Value: "response", Usage: layoutUsage},
	},
	Action: decodeCmd,
}

func decodeCmd(c *cli.Context) error {
	layout := c.String("layout")
	if _, err := newPacketForLayout(layout); err != nil {
		return err
	}

	if file := c.String("file"); file != "" {
		return decodeCapture(file, layout)
	}
	if c.NArg() != 1 {
		return fmt.Errorf("need a capture file or exactly one hex string argument")
	}

	wire, err := parseHex(c.Args().First())
	if err != nil {
		return err
	}
	return decodeWire(wire, layout)
}

// decodeWire decodes every frame found in wire, reporting bad frames and
// moving on to the remaining bytes.
func decodeWire(wire []byte, layout string) error {
	offset := 0
	for offset < len(wire) {
		p, _ := newPacketForLayout(layout)
		n, err := framing.DecodeBytes(wire[offset:], p)
		if err != nil {
			fmt.Printf("offset %d: %v\n", offset, err)
			if n == 0 {
				return nil
			}
			offset += n
			continue
		}
		printFrame(p)
		offset += n
	}
	return nil
}

func decodeCapture(path, layout string) error {
	r, err := capture.NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for i := 0; ; i++ {
		wire, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		p, _ := newPacketForLayout(layout)
		if _, err := framing.DecodeBytes(wire, p); err != nil {
			fmt.Printf("record %d: %v\n", i, err)
			continue
		}
		printFrame(p)
	}
}
