// Package capture reads and writes wire-frame capture files. A capture is a
// sequence of records, each a 2-byte big-endian length followed by that many
// raw wire bytes (escaped frame, sync byte included). Files ending in .zst
// are zstd-compressed as a single stream.
package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"jvs-go/pkg/buffers"
)

// ErrFrameTooLong is returned when a record cannot be represented by the
// 2-byte length prefix. The worst-case wire frame is well under this.
var ErrFrameTooLong = errors.New("capture: frame exceeds record size limit")

// Compressed reports whether path names a zstd-compressed capture.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// Writer appends wire frames to a capture file.
type Writer struct {
	f  *os.File
	zw *zstd.Encoder
	w  io.Writer
}

// NewWriter creates (or truncates) a capture file at path. Compression is
// chosen by the file extension.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: create %s: %w", path, err)
	}
	cw := &Writer{f: f, w: f}
	if Compressed(path) {
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("capture: failed to initialize zstd encoder: %w", err)
		}
		cw.zw = zw
		cw.w = zw
	}
	return cw, nil
}

// WriteFrame appends one wire frame as a record.
func (w *Writer) WriteFrame(wire []byte) error {
	if len(wire) > 0xFFFF {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLong, len(wire))
	}
	var hdr [2]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(len(wire)))
	if _, err := w.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("capture: write record header: %w", err)
	}
	if _, err := w.w.Write(wire); err != nil {
		return fmt.Errorf("capture: write record: %w", err)
	}
	return nil
}

// Close finalizes the compressed stream, if any, and closes the file.
func (w *Writer) Close() error {
	var firstErr error
	if w.zw != nil {
		// Close is what flushes the final zstd block.
		if err := w.zw.Close(); err != nil {
			firstErr = fmt.Errorf("capture: close zstd encoder: %w", err)
		}
	}
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("capture: close file: %w", err)
	}
	return firstErr
}

// Reader iterates the records of a capture file.
type Reader struct {
	f  *os.File
	zr *zstd.Decoder
	r  io.Reader
}

// NewReader opens a capture file for reading. Compression is chosen by the
// file extension.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", path, err)
	}
	cr := &Reader{f: f, r: f}
	if Compressed(path) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("capture: failed to initialize zstd decoder: %w", err)
		}
		cr.zr = zr
		cr.r = zr
	}
	return cr, nil
}

// ReadFrame returns the next recorded wire frame, or io.EOF after the last
// record. The returned slice is freshly allocated and owned by the caller.
func (r *Reader) ReadFrame() ([]byte, error) {
	var hdr [2]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("capture: read record header: %w", err)
	}
	n := int(binary.BigEndian.Uint16(hdr[:]))

	scratch := buffers.WireBufferPool.Get()
	defer buffers.WireBufferPool.Put(scratch)
	buf := scratch
	if n > len(buf) {
		buf = make([]byte, n)
	}
	if _, err := io.ReadFull(r.r, buf[:n]); err != nil {
		return nil, fmt.Errorf("capture: truncated record: %w", err)
	}

	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

// Close releases the decoder, if any, and closes the file.
func (r *Reader) Close() error {
	if r.zr != nil {
		r.zr.Close()
	}
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("capture: close file: %w", err)
	}
	return nil
}
