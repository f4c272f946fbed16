package jvs

import (
	"fmt"

	"jvs-go/pkg/byteview"
	"jvs-go/pkg/checksum"
)

// Layout maps the semantic fields of a packet variant to byte offsets within
// its buffer. Offsets are static per variant and never overlap; the sync
// byte is always at offset 0 and the checksum always directly follows the
// payload.
type Layout struct {
	// SizeIndex is the offset of the SIZE byte. SIZE counts every byte
	// after itself up to and including the checksum.
	SizeIndex int
	// DestIndex is the offset of the destination (node address) byte.
	DestIndex int
	// DataIndex is the offset of the first payload byte.
	DataIndex int
}

// minFrameLen is the length of a frame with an empty payload: header
// through checksum.
func (l Layout) minFrameLen() int {
	return l.DataIndex + 1
}

// Packet is the contract shared by all packet variants: access to the
// underlying buffer, the variant's field offsets, and validity checks. It is
// what the framing layer programs against.
type Packet interface {
	// Bytes exposes the full underlying buffer.
	Bytes() []byte
	// Slice returns the logical frame, sync byte through checksum, or nil
	// when the stored size byte does not fit the buffer.
	Slice() []byte
	// Layout returns the variant's field offsets.
	Layout() Layout
	// Len returns the logical frame length derived from the size byte.
	Len() int
	// Valid reports whether the stored size and checksum are consistent
	// with the buffer contents.
	Valid() bool
}

// Frame is the common implementation backing every packet variant. Variants
// embed it and add their own field accessors on top.
//
// A Frame owns its buffer exclusively; there is no sharing between packets
// and no synchronization. Fixed header fields (sync, size, dest) are always
// within capacity, which NewFrame enforces, so their accessors cannot fail.
// Size-derived accessors (Payload, Slice, Checksum) depend on the stored
// size byte; when a corrupted size points past the buffer they return the
// zero value and Valid reports false. Explicit offset access goes through
// byteview and surfaces ErrOutOfBounds.
type Frame struct {
	view   *byteview.View
	layout Layout
}

// NewFrame creates an empty frame for the given layout: sync byte set, size
// covering an empty payload, checksum stamped. It panics if capacity cannot
// hold the minimal frame, since layouts are compile-time constants and an
// undersized buffer is a programming error, not an input error.
func NewFrame(capacity int, layout Layout) Frame {
	if capacity < layout.minFrameLen() {
		panic(fmt.Sprintf("jvs: capacity %d below minimal frame length %d", capacity, layout.minFrameLen()))
	}
	f := Frame{view: byteview.New(capacity), layout: layout}
	f.SetSync()
	f.SetSize(byte(layout.DataIndex - layout.SizeIndex))
	f.CalculateChecksum()
	return f
}

// FrameFromSlice creates a frame over a copy of b, padded to capacity. The
// slice must hold at least a minimal frame and fit the capacity.
func FrameFromSlice(b []byte, capacity int, layout Layout) (Frame, error) {
	if len(b) < layout.minFrameLen() {
		return Frame{}, fmt.Errorf("%w: got %d bytes, need at least %d", ErrShortFrame, len(b), layout.minFrameLen())
	}
	if len(b) > capacity {
		return Frame{}, fmt.Errorf("%w: %d bytes exceed capacity %d", ErrPayloadTooLarge, len(b), capacity)
	}
	view := byteview.New(capacity)
	_ = view.SetRange(0, b)
	return Frame{view: view, layout: layout}, nil
}

// Layout returns the variant's field offsets.
func (f *Frame) Layout() Layout {
	return f.layout
}

// Bytes exposes the full underlying buffer for transport.
func (f *Frame) Bytes() []byte {
	return f.view.Bytes()
}

// Len returns the logical frame length: the size byte plus everything
// before and including it.
func (f *Frame) Len() int {
	return f.layout.SizeIndex + int(f.Size()) + 1
}

// Slice returns the frame from the sync byte through the checksum, or nil
// when the size byte points past the buffer.
func (f *Frame) Slice() []byte {
	s, err := f.view.Range(0, f.Len())
	if err != nil {
		return nil
	}
	return s
}

// Sync returns the byte at offset 0.
func (f *Frame) Sync() byte {
	b, _ := f.view.U8(0)
	return b
}

// SetSync writes the sync marker at offset 0.
func (f *Frame) SetSync() {
	_ = f.view.SetU8(0, SyncByte)
}

// Size returns the SIZE byte.
func (f *Frame) Size() byte {
	b, _ := f.view.U8(f.layout.SizeIndex)
	return b
}

// SetSize writes the SIZE byte directly. Callers normally should not need
// this: SetPayload derives the size byte from the payload length, which
// keeps the two from drifting apart.
func (f *Frame) SetSize(size byte) {
	_ = f.view.SetU8(f.layout.SizeIndex, size)
}

// Dest returns the destination (node address) byte.
func (f *Frame) Dest() byte {
	b, _ := f.view.U8(f.layout.DestIndex)
	return b
}

// SetDest writes the destination byte.
func (f *Frame) SetDest(dest byte) {
	_ = f.view.SetU8(f.layout.DestIndex, dest)
}

// MaxPayload returns the payload capacity of this frame: the buffer minus
// header and checksum, bounded by what the single size byte can express.
func (f *Frame) MaxPayload() int {
	byCap := f.view.Cap() - f.layout.DataIndex - 1
	bySize := 0xFF - (f.layout.DataIndex - f.layout.SizeIndex)
	if byCap < bySize {
		return byCap
	}
	return bySize
}

// Payload returns the payload region, or nil when the size byte points past
// the buffer. The returned slice aliases the frame buffer.
func (f *Frame) Payload() []byte {
	n := f.Len() - 1 - f.layout.DataIndex
	if n < 0 {
		return nil
	}
	p, err := f.view.Range(f.layout.DataIndex, n)
	if err != nil {
		return nil
	}
	return p
}

// SetPayload copies data into the payload region and derives the SIZE byte
// from its length, so the size field can never desynchronize from the
// payload. It does not refresh the checksum; use CalculateChecksum (or the
// checksum-stamping writer) before transmission.
func (f *Frame) SetPayload(data []byte) error {
	if len(data) > f.MaxPayload() {
		return fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLarge, len(data), f.MaxPayload())
	}
	if err := f.view.SetRange(f.layout.DataIndex, data); err != nil {
		return err
	}
	f.SetSize(byte(len(data) + f.layout.DataIndex - f.layout.SizeIndex))
	return nil
}

// Checksum returns the stored checksum byte at the end of the frame.
func (f *Frame) Checksum() byte {
	b, _ := f.view.U8(f.Len() - 1)
	return b
}

// SetChecksum writes the checksum byte directly. Callers normally should
// not need this; use CalculateChecksum.
func (f *Frame) SetChecksum(sum byte) {
	_ = f.view.SetU8(f.Len()-1, sum)
}

// CalculateChecksum computes the mod-256 sum of every byte after the sync
// byte up to the checksum position, stores it, and returns it.
func (f *Frame) CalculateChecksum() byte {
	s := f.Slice()
	if s == nil {
		return 0
	}
	sum := checksum.Sum(s[1 : len(s)-1])
	f.SetChecksum(sum)
	return sum
}

// Valid reports whether the stored size byte fits the buffer and the stored
// checksum equals the recomputed one. Inconsistent frames are never
// corrected, only reported.
func (f *Frame) Valid() bool {
	if int(f.Size()) < f.layout.DataIndex-f.layout.SizeIndex {
		return false
	}
	s := f.Slice()
	if s == nil {
		return false
	}
	return checksum.Verify(s[1:len(s)-1], s[len(s)-1])
}
