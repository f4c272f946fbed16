//go:build linux

// Package serial opens a tty in raw mode for use as a bus device. JVS links
// run over RS485 at 115200 8N1; the usual adapters show up as a plain
// serial device, so termios is all the configuration needed.
package serial

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Port is an open raw-mode serial device. It implements bus.ReadWriteCloser.
type Port struct {
	f *os.File
}

var baudFlags = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

// Open opens device (e.g. /dev/ttyUSB0) at the given baud rate, 8N1, no
// flow control, blocking single-byte reads.
func Open(device string, baud int) (*Port, error) {
	flag, ok := baudFlags[baud]
	if !ok {
		return nil, fmt.Errorf("serial: unsupported baud rate %d", baud)
	}

	f, err := os.OpenFile(device, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", device, err)
	}

	fd := int(f.Fd())
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("serial: tcgetattr %s: %w", device, err)
	}

	// Raw mode, 8 data bits, no parity, one stop bit.
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CRTSCTS | unix.CBAUD
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | flag
	t.Ispeed = flag
	t.Ospeed = flag

	// Block until at least one byte arrives; the framing layer reads byte
	// by byte anyway.
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		f.Close()
		return nil, fmt.Errorf("serial: tcsetattr %s: %w", device, err)
	}
	if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		f.Close()
		return nil, fmt.Errorf("serial: flush %s: %w", device, err)
	}

	return &Port{f: f}, nil
}

func (p *Port) Read(b []byte) (int, error) {
	return p.f.Read(b)
}

func (p *Port) Write(b []byte) (int, error) {
	return p.f.Write(b)
}

func (p *Port) Close() error {
	return p.f.Close()
}

// Name returns the device path.
func (p *Port) Name() string {
	return p.f.Name()
}
