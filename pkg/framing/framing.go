// Package framing converts packets between their in-buffer representation
// and the escaped byte stream carried on the wire.
//
// The wire format is [SYNC][escaped bytes...]: the sync byte 0xE0 opens a
// frame and is the only byte transmitted unescaped. Every following logical
// byte b equal to 0xE0 or 0xD0 is emitted as 0xD0, b-1; everything else
// passes through unchanged. Decoding is the mirror: a 0xD0 on the wire means
// the next byte plus one is the logical value. The escape state lives only
// inside a single read call, so the decoder is a plain two-state loop.
//
// Readers and writers pull one byte at a time from the underlying stream,
// since a frame's total length is unknown until its size byte has been
// decoded. Wrap the source in a bufio.Reader (and the sink in a
// bufio.Writer) to avoid per-byte syscalls on a real serial port.
package framing

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"jvs-go/pkg/checksum"
	"jvs-go/pkg/jvs"
)

var (
	// ErrFrameSync is returned when the first wire byte of a frame is not
	// the sync marker. The stream is desynchronized; callers should scan
	// forward for the next sync byte (see bus.Handler.ReadFrame).
	ErrFrameSync = errors.New("framing: expected sync byte 0xE0")

	// ErrUnexpectedEnd is returned when the source is exhausted mid-frame:
	// an escape byte with no follower, or fewer bytes than the size byte
	// declared.
	ErrUnexpectedEnd = errors.New("framing: stream ended mid-frame")

	// ErrChecksumMismatch is returned when a decoded frame's stored
	// checksum does not match the recomputed one. The packet buffer keeps
	// the decoded bytes; the caller decides whether to retry or drop.
	ErrChecksumMismatch = errors.New("framing: frame checksum mismatch")

	// ErrFrameTooLarge is returned when a decoded size byte declares a
	// frame that does not fit the packet buffer. The frame is rejected,
	// never truncated.
	ErrFrameTooLarge = errors.New("framing: declared size exceeds packet capacity")
)

// Reader decodes escaped wire bytes from an io.Reader into packet buffers.
type Reader struct {
	r   io.Reader
	one [1]byte
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadByte reads a single raw wire byte.
func (d *Reader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(d.r, d.one[:]); err != nil {
		return 0, err
	}
	return d.one[0], nil
}

// ReadEscaped reads a single logical byte, resolving the mark escape: a
// 0xD0 on the wire consumes the following byte and yields it plus one. The
// protocol only ever escapes 0xE0 and 0xD0, but any escaped value is
// resolved the same way and accepted literally.
func (d *Reader) ReadEscaped() (byte, error) {
	b, err := d.ReadByte()
	if err != nil {
		return 0, midFrame(err)
	}
	if b == jvs.MarkByte {
		b, err = d.ReadByte()
		if err != nil {
			return 0, midFrame(err)
		}
		b++
	}
	return b, nil
}

// midFrame maps a source EOF inside a frame to ErrUnexpectedEnd; other I/O
// errors pass through.
func midFrame(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrUnexpectedEnd, err)
	}
	return err
}

// ReadPacket reads one frame into p and returns its logical length.
//
// The first wire byte must be the sync marker, otherwise ErrFrameSync is
// returned with that byte consumed. Header bytes are then decoded up to the
// size byte, and the size byte drives the rest of the read, so trailing
// bytes belonging to the next frame are never consumed. After the fill the
// frame checksum is verified; on mismatch the buffer keeps the decoded
// frame and ErrChecksumMismatch is returned.
//
// A clean EOF before any byte of the frame is reported as io.EOF; an EOF
// anywhere after that is ErrUnexpectedEnd.
func (d *Reader) ReadPacket(p jvs.Packet) (int, error) {
	sync, err := d.ReadByte()
	if err != nil {
		return 0, err
	}
	if sync != jvs.SyncByte {
		return 0, fmt.Errorf("%w, found %#02x", ErrFrameSync, sync)
	}

	buf := p.Bytes()
	layout := p.Layout()
	buf[0] = sync

	for i := 1; i <= layout.SizeIndex; i++ {
		if buf[i], err = d.ReadEscaped(); err != nil {
			return 0, err
		}
	}

	size := int(buf[layout.SizeIndex])
	if size < layout.DataIndex-layout.SizeIndex {
		return 0, fmt.Errorf("%w: size byte %d below minimum %d",
			jvs.ErrShortFrame, size, layout.DataIndex-layout.SizeIndex)
	}
	end := layout.SizeIndex + size // index of the checksum byte
	if end >= len(buf) {
		return 0, fmt.Errorf("%w: size byte %d, capacity %d", ErrFrameTooLarge, size, len(buf))
	}

	for i := layout.SizeIndex + 1; i <= end; i++ {
		if buf[i], err = d.ReadEscaped(); err != nil {
			return 0, err
		}
	}

	if !checksum.Verify(buf[1:end], buf[end]) {
		return end + 1, fmt.Errorf("%w: stored %#02x, computed %#02x",
			ErrChecksumMismatch, buf[end], checksum.Sum(buf[1:end]))
	}
	return end + 1, nil
}

// Writer encodes packet buffers into escaped wire bytes on an io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteByte writes a single raw wire byte.
func (e *Writer) WriteByte(b byte) error {
	_, err := e.w.Write([]byte{b})
	return err
}

// WriteEscaped writes a single logical byte, escaping the reserved sync and
// mark values. It returns the number of wire bytes written (1 or 2).
func (e *Writer) WriteEscaped(b byte) (int, error) {
	if b == jvs.SyncByte || b == jvs.MarkByte {
		if _, err := e.w.Write([]byte{jvs.MarkByte, b - 1}); err != nil {
			return 0, err
		}
		return 2, nil
	}
	if err := e.WriteByte(b); err != nil {
		return 0, err
	}
	return 1, nil
}

// WritePacket writes p's frame as-is: whatever checksum is stored in the
// buffer goes on the wire. Stamp it first with CalculateChecksum, or use
// WritePacketWithChecksum.
func (e *Writer) WritePacket(p jvs.Packet) (int, error) {
	frame := p.Slice()
	if frame == nil {
		return 0, fmt.Errorf("%w: size byte %d", ErrFrameTooLarge, p.Bytes()[p.Layout().SizeIndex])
	}
	if len(frame) <= p.Layout().DataIndex {
		return 0, fmt.Errorf("%w: frame length %d", jvs.ErrShortFrame, len(frame))
	}

	if err := e.WriteByte(jvs.SyncByte); err != nil {
		return 0, err
	}
	written := 1
	for _, b := range frame[1:] {
		n, err := e.WriteEscaped(b)
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

// WritePacketWithChecksum writes p's frame, computing the checksum over the
// outgoing bytes and emitting it in place of whatever the buffer holds. The
// packet itself is not modified.
func (e *Writer) WritePacketWithChecksum(p jvs.Packet) (int, error) {
	frame := p.Slice()
	if frame == nil {
		return 0, fmt.Errorf("%w: size byte %d", ErrFrameTooLarge, p.Bytes()[p.Layout().SizeIndex])
	}
	if len(frame) <= p.Layout().DataIndex {
		return 0, fmt.Errorf("%w: frame length %d", jvs.ErrShortFrame, len(frame))
	}

	if err := e.WriteByte(jvs.SyncByte); err != nil {
		return 0, err
	}
	written := 1
	var sum uint8
	for _, b := range frame[1 : len(frame)-1] {
		n, err := e.WriteEscaped(b)
		if err != nil {
			return written, err
		}
		written += n
		sum += b
	}
	n, err := e.WriteEscaped(sum)
	if err != nil {
		return written, err
	}
	return written + n, nil
}

// EncodeBytes returns the wire encoding of p with a freshly computed
// checksum.
func EncodeBytes(p jvs.Packet) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := NewWriter(&buf).WritePacketWithChecksum(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes decodes one frame from data into p and returns the number of
// wire bytes consumed. Bytes past the frame end are left for the caller.
func DecodeBytes(data []byte, p jvs.Packet) (int, error) {
	r := bytes.NewReader(data)
	_, err := NewReader(r).ReadPacket(p)
	return len(data) - r.Len(), err
}
