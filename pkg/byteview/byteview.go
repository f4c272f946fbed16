// Package byteview provides a bounds-checked accessor over a fixed-capacity
// byte buffer. Unlike a bare slice, every access past the buffer capacity is
// surfaced as ErrOutOfBounds instead of a panic or a silent truncation, which
// is what a packet layer built on fixed field offsets needs: an offset past
// the end is a protocol or programmer error and must be observable.
package byteview

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when offset+len exceeds the view capacity.
var ErrOutOfBounds = errors.New("byteview: access past buffer capacity")

// View wraps a fixed-capacity buffer. The capacity is set at construction
// and never changes; there is no implicit resizing.
type View struct {
	buf []byte
}

// New creates a zero-filled view with the given capacity.
func New(capacity int) *View {
	return &View{buf: make([]byte, capacity)}
}

// FromBytes creates a view over a copy of b. The view capacity equals len(b).
func FromBytes(b []byte) *View {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &View{buf: buf}
}

// Cap returns the fixed capacity of the view.
func (v *View) Cap() int {
	return len(v.buf)
}

// Bytes exposes the full underlying buffer.
func (v *View) Bytes() []byte {
	return v.buf
}

func (v *View) check(offset, n int) error {
	if offset < 0 || n < 0 || offset+n > len(v.buf) {
		return fmt.Errorf("%w: offset %d len %d cap %d", ErrOutOfBounds, offset, n, len(v.buf))
	}
	return nil
}

// U8 returns the byte at offset.
func (v *View) U8(offset int) (byte, error) {
	if err := v.check(offset, 1); err != nil {
		return 0, err
	}
	return v.buf[offset], nil
}

// SetU8 writes b at offset.
func (v *View) SetU8(offset int, b byte) error {
	if err := v.check(offset, 1); err != nil {
		return err
	}
	v.buf[offset] = b
	return nil
}

// Range returns the n bytes starting at offset. The returned slice aliases
// the underlying buffer.
func (v *View) Range(offset, n int) ([]byte, error) {
	if err := v.check(offset, n); err != nil {
		return nil, err
	}
	return v.buf[offset : offset+n], nil
}

// SetRange copies p into the buffer starting at offset.
func (v *View) SetRange(offset int, p []byte) error {
	if err := v.check(offset, len(p)); err != nil {
		return err
	}
	copy(v.buf[offset:], p)
	return nil
}
