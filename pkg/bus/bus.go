// Package bus handles the lower-level transport of JVS frames over a
// ReadWriteCloser device such as a serial port. It layers transaction and
// resynchronization policy on top of the framing codec: the codec reports a
// desynchronized stream, the handler decides to scan forward for the next
// sync byte.
package bus

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"jvs-go/pkg/buffers"
	"jvs-go/pkg/framing"
	"jvs-go/pkg/jvs"
	"jvs-go/pkg/log"
)

// ReadWriteCloser abstracts the underlying byte stream (an RS485 serial
// port, a TCP bridge, or an in-memory pipe in tests).
type ReadWriteCloser interface {
	Read([]byte) (int, error)
	Write([]byte) (int, error)
	Close() error
}

// DefaultMaxResyncSkip bounds how many junk bytes ReadFrame scans past
// while looking for a sync marker before giving up.
const DefaultMaxResyncSkip = 512

// Stats are cumulative counters for one handler lifetime.
type Stats struct {
	FramesRead     uint64 `json:"frames_read"`
	FramesWritten  uint64 `json:"frames_written"`
	BytesSkipped   uint64 `json:"bytes_skipped"`
	ChecksumErrors uint64 `json:"checksum_errors"`
}

// Handler manages frame transmission and reception on a single device. Its
// counters are safe for concurrent readers; the device itself carries one
// conversation at a time, per the master/slave protocol.
type Handler struct {
	port          ReadWriteCloser
	reader        *framing.Reader
	maxResyncSkip int

	stop chan struct{}
	wg   sync.WaitGroup

	framesRead     atomic.Uint64
	framesWritten  atomic.Uint64
	bytesSkipped   atomic.Uint64
	checksumErrors atomic.Uint64
}

// NewHandler creates a Handler for the provided device.
func NewHandler(port ReadWriteCloser) *Handler {
	return &Handler{
		port:          port,
		reader:        framing.NewReader(port),
		maxResyncSkip: DefaultMaxResyncSkip,
		stop:          make(chan struct{}),
	}
}

// SetMaxResyncSkip overrides the resynchronization scan budget.
func (h *Handler) SetMaxResyncSkip(n int) {
	h.maxResyncSkip = n
}

// Stats returns a snapshot of the handler counters.
func (h *Handler) Stats() Stats {
	return Stats{
		FramesRead:     h.framesRead.Load(),
		FramesWritten:  h.framesWritten.Load(),
		BytesSkipped:   h.bytesSkipped.Load(),
		ChecksumErrors: h.checksumErrors.Load(),
	}
}

// WriteFrame encodes p with a fresh checksum and writes the whole escaped
// frame to the device in a single Write call, which matters on half-duplex
// RS485 links where the master must not pause mid-frame.
func (h *Handler) WriteFrame(p jvs.Packet) error {
	scratch := buffers.WireBufferPool.Get()
	defer buffers.WireBufferPool.Put(scratch)

	buf := bytes.NewBuffer(scratch[:0])
	if _, err := framing.NewWriter(buf).WritePacketWithChecksum(p); err != nil {
		return err
	}
	if _, err := h.port.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("bus: device write failed: %w", err)
	}
	h.framesWritten.Add(1)
	return nil
}

// ReadFrame reads the next frame from the device into p, scanning past up
// to the configured number of junk bytes to regain frame sync. Checksum
// mismatches are counted and surfaced to the caller, who owns the
// retry/drop decision.
func (h *Handler) ReadFrame(p jvs.Packet) error {
	skipped := 0
	for {
		_, err := h.reader.ReadPacket(p)
		switch {
		case err == nil:
			h.framesRead.Add(1)
			return nil
		case errors.Is(err, framing.ErrFrameSync):
			// One junk byte consumed; keep scanning for the sync marker.
			h.bytesSkipped.Add(1)
			skipped++
			if skipped > h.maxResyncSkip {
				return fmt.Errorf("bus: no sync marker within %d bytes: %w", h.maxResyncSkip, err)
			}
		case errors.Is(err, framing.ErrChecksumMismatch):
			h.checksumErrors.Add(1)
			return err
		default:
			return err
		}
	}
}

// Transact performs one master/slave exchange: write req, read the slave's
// response into resp.
func (h *Handler) Transact(req, resp jvs.Packet) error {
	if err := h.WriteFrame(req); err != nil {
		return err
	}
	return h.ReadFrame(resp)
}

// Start launches a read loop that decodes frames into packets produced by
// newPacket and hands each good frame to onFrame. Decode errors are logged
// and the loop moves on to the next frame.
func (h *Handler) Start(newPacket func() jvs.Packet, onFrame func(jvs.Packet)) {
	h.wg.Add(1)
	go h.readLoop(newPacket, onFrame)
}

func (h *Handler) readLoop(newPacket func() jvs.Packet, onFrame func(jvs.Packet)) {
	defer h.wg.Done()
	for {
		select {
		case <-h.stop:
			return
		default:
		}

		p := newPacket()
		err := h.ReadFrame(p)
		if err == nil {
			onFrame(p)
			continue
		}
		select {
		case <-h.stop:
			return
		default:
		}
		if errors.Is(err, framing.ErrChecksumMismatch) || errors.Is(err, framing.ErrUnexpectedEnd) {
			log.Warn().Err(err).Msg("bus: dropped frame")
			continue
		}
		// Read errors on a closed or failed device end the loop.
		log.Error().Err(err).Msg("bus: read loop stopped")
		return
	}
}

// Stop closes the device to unblock any pending read and waits for the read
// loop to terminate.
func (h *Handler) Stop() error {
	close(h.stop)
	err := h.port.Close()
	h.wg.Wait()
	return err
}
