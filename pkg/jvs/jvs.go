// Package jvs implements packet structures for the JAMMA Video Standard
// master/slave serial protocol. A packet is a fixed-layout view over an
// owned byte buffer: each variant declares static offsets for its sync,
// destination, size, payload and checksum fields, and the accessors read and
// write the buffer in place. The wire representation (sync detection and
// MARK-byte escaping) lives in package framing.
package jvs

import "errors"

// SyncByte indicates the beginning of a packet.
//
// Readers should skip bytes until the sync byte is found.
const SyncByte byte = 0xE0

// MarkByte escapes the reserved SyncByte and MarkByte values on the wire.
//
// Since SyncByte is reserved for frame boundaries, an occurrence inside the
// frame body is transmitted as MarkByte followed by the value minus one:
// 0xE0 becomes D0 DF and 0xD0 becomes D0 CF. MarkByte never appears in the
// logical buffer, only in the wire encoding.
const MarkByte byte = 0xD0

// DefaultCapacity is the buffer capacity used by the packet constructors.
// The base protocol bounds a frame to a single size byte worth of payload,
// so 256 bytes covers every legal frame.
const DefaultCapacity = 256

var (
	// ErrPayloadTooLarge is returned by SetPayload when the input exceeds
	// the packet's payload capacity. Recoverable: trim the payload or use a
	// larger buffer.
	ErrPayloadTooLarge = errors.New("jvs: payload exceeds packet capacity")

	// ErrShortFrame is returned when a slice cannot hold a complete frame
	// for the variant's layout (header plus checksum).
	ErrShortFrame = errors.New("jvs: slice too short for a complete frame")
)

// Report is the response report code placed before the first data byte of a
// slave response. It indicates whether a request completed successfully.
type Report byte

const (
	// ReportNormal: request was processed successfully.
	ReportNormal Report = 1
	// ReportIncorrectDataSize: incorrect number of parameters were sent.
	ReportIncorrectDataSize Report = 2
	// ReportInvalidData: incorrect data was sent.
	ReportInvalidData Report = 3
	// ReportBusy: the device I/O is busy.
	ReportBusy Report = 4
)

func (r Report) String() string {
	switch r {
	case ReportNormal:
		return "Normal"
	case ReportIncorrectDataSize:
		return "IncorrectDataSize"
	case ReportInvalidData:
		return "InvalidData"
	case ReportBusy:
		return "Busy"
	default:
		return "Unknown"
	}
}
