package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"jvs-go/pkg/capture"
	"jvs-go/pkg/framing"
	"jvs-go/pkg/jvs"
	"jvs-go/pkg/jvs/modified"
)

var encodeCommand = &cli.Command{
	Name:      "encode",
	Usage:     "build a request frame and print its wire encoding",
	UsageText: "jvsdump encode --dest 0x01 --payload 0102 [--modified --seq 1 --cmd 0x20] [--out frames.jvscap]",
	Flags: []cli.Flag{
		&cli.UintFlag{Name: "dest", Aliases: []string{"d"}, Usage: "destination node address", Required: true},
		&cli.StringFlag{Name: "payload", Aliases: []string{"p"}, Usage: "payload as a hex string"},
		&cli.BoolFlag{Name: "modified", Aliases: []string{"m"}, Usage: "use the modified (NFC reader) layout"},
		&cli.UintFlag{Name: "seq", Usage: "sequence byte (modified layout)"},
		&cli.UintFlag{Name: "cmd", Usage: "command byte (modified layout)"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the frame to a capture file (.zst compresses)"},
	},
	Action: encodeCmd,
}

func parseHex(s string) ([]byte, error) {
	s = strings.ReplaceAll(strings.TrimPrefix(s, "0x"), " ", "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string %q: %w", s, err)
	}
	return b, nil
}

func encodeCmd(c *cli.Context) error {
	payload, err := parseHex(c.String("payload"))
	if err != nil {
		return err
	}
	if c.Uint("dest") > 0xFF {
		return fmt.Errorf("destination %d does not fit a byte", c.Uint("dest"))
	}

	var p jvs.Packet
	if c.Bool("modified") {
		req := modified.NewRequestPacket()
		req.SetDest(byte(c.Uint("dest")))
		req.SetSequence(byte(c.Uint("seq")))
		req.SetCmd(byte(c.Uint("cmd")))
		if err := req.SetPayload(payload); err != nil {
			return err
		}
		req.CalculateChecksum()
		p = req
	} else {
		req := jvs.NewRequestPacket()
		req.SetDest(byte(c.Uint("dest")))
		if err := req.SetPayload(payload); err != nil {
			return err
		}
		req.CalculateChecksum()
		p = req
	}

	wire, err := framing.EncodeBytes(p)
	if err != nil {
		return err
	}

	printFrame(p)
	fmt.Printf("frame: % 02X\n", p.Slice())
	fmt.Printf("wire:  % 02X\n", wire)

	if out := c.String("out"); out != "" {
		w, err := capture.NewWriter(out)
		if err != nil {
			return err
		}
		if err := w.WriteFrame(wire); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
	}
	return nil
}
