//go:build linux

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"jvs-go/pkg/bus"
	"jvs-go/pkg/capture"
	"jvs-go/pkg/framing"
	"jvs-go/pkg/jvs"
	"jvs-go/pkg/jvs/modified"
	"jvs-go/pkg/log"
	"jvs-go/pkg/serial"
)

var sniffCommand = &cli.Command{
	Name:      "sniff",
	Usage:     "decode frames from the configured serial device until interrupted",
	UsageText: "jvsdump sniff [--device /dev/ttyUSB0] [--capture frames.jvscap.zst]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "device", Usage: "serial device (overrides config)"},
		&cli.StringFlag{Name: "capture", Usage: "record wire frames to a capture file (overrides config)"},
		&cli.BoolFlag{Name: "api", Usage: "serve the stats API on the configured listen address"},
	},
	Action: sniffCmd,
}

func sniffCmd(c *cli.Context) error {
	log.MustInit("jvsdump")
	defer log.Close()

	cfg, err := bus.LoadConfig()
	if err != nil {
		return err
	}
	if dev := c.String("device"); dev != "" {
		cfg.Device = dev
	}
	if cap := c.String("capture"); cap != "" {
		cfg.CaptureFile = cap
	}

	port, err := serial.Open(cfg.Device, cfg.BaudRate)
	if err != nil {
		return err
	}
	log.Printf("sniffing %s at %d baud", cfg.Device, cfg.BaudRate)

	var rec *capture.Writer
	if cfg.CaptureFile != "" {
		rec, err = capture.NewWriter(cfg.CaptureFile)
		if err != nil {
			port.Close()
			return err
		}
		log.Printf("recording frames to %s", cfg.CaptureFile)
	}

	handler := bus.NewHandler(port)
	handler.SetMaxResyncSkip(cfg.MaxResyncSkip)

	if c.Bool("api") {
		api := bus.NewHandlerApi(handler, cfg.APIListenAddr)
		go api.Run()
		log.Printf("stats API listening on %s", cfg.APIListenAddr)
	}

	newPacket := func() jvs.Packet {
		if cfg.ModifiedLayout {
			return modified.NewResponsePacket()
		}
		return jvs.NewResponsePacket()
	}
	handler.Start(newPacket, func(p jvs.Packet) {
		printFrame(p)
		if rec == nil {
			return
		}
		wire, err := framing.EncodeBytes(p)
		if err == nil {
			err = rec.WriteFrame(wire)
		}
		if err != nil {
			log.Error().Err(err).Msg("capture write failed")
		}
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("received signal %s, shutting down", sig)

	if err := handler.Stop(); err != nil {
		log.Error().Err(err).Msg("device close failed")
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			return err
		}
	}
	stats := handler.Stats()
	log.Printf("session: %d frames read, %d bytes skipped, %d checksum errors",
		stats.FramesRead, stats.BytesSkipped, stats.ChecksumErrors)
	return nil
}
