package main

import (
	"fmt"

	"jvs-go/pkg/jvs"
	"jvs-go/pkg/jvs/modified"
)

// layout names accepted by the --layout flag.
const layoutUsage = "frame layout: request, response, mrequest or mresponse (modified protocol)"

func newPacketForLayout(layout string) (jvs.Packet, error) {
	switch layout {
	case "request":
		return jvs.NewRequestPacket(), nil
	case "response":
		return jvs.NewResponsePacket(), nil
	case "mrequest":
		return modified.NewRequestPacket(), nil
	case "mresponse":
		return modified.NewResponsePacket(), nil
	default:
		return nil, fmt.Errorf("unknown layout %q (%s)", layout, layoutUsage)
	}
}

func printFrame(p jvs.Packet) {
	switch v := p.(type) {
	case *jvs.RequestPacket:
		fmt.Printf("request  dest=%#02x size=%d payload=% 02X sum=%#02x valid=%t\n",
			v.Dest(), v.Size(), v.Payload(), v.Checksum(), v.Valid())
	case *jvs.ResponsePacket:
		fmt.Printf("response dest=%#02x size=%d report=%s payload=% 02X sum=%#02x valid=%t\n",
			v.Dest(), v.Size(), v.Report(), v.Payload(), v.Checksum(), v.Valid())
	case *modified.RequestPacket:
		fmt.Printf("mrequest dest=%#02x seq=%d cmd=%#02x size=%d payload=% 02X sum=%#02x valid=%t\n",
			v.Dest(), v.Sequence(), v.Cmd(), v.Size(), v.Payload(), v.Checksum(), v.Valid())
	case *modified.ResponsePacket:
		fmt.Printf("mresponse dest=%#02x seq=%d status=%#02x cmd=%#02x report=%s size=%d payload=% 02X sum=%#02x valid=%t\n",
			v.Dest(), v.Sequence(), v.Status(), v.Cmd(), v.Report(), v.Size(), v.Payload(), v.Checksum(), v.Valid())
	default:
		fmt.Printf("frame % 02X valid=%t\n", p.Slice(), p.Valid())
	}
}
