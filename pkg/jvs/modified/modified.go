// Package modified implements packet structures for the slightly modified
// JAMMA Video Standard layout found on NFC/e-money reader units. The framing,
// escaping and checksum rules are identical to the base protocol; only the
// field offsets differ and two header bytes are added (sequence and command).
//
// Request frame (master -> slave):
//
//	00     | 01  | 02     | 03    | 04    | 05       | ...          | N + 1
//	[SYNC] | `N` | `DEST` | `SEQ` | `CMD` | `DATA_0` | `DATA_(N-4)` | `SUM`
//
// Response frame (slave -> master):
//
//	00     | 01  | 02     | 03    | 04       | 05    | 06       | 07       | ...          | N + 1
//	[SYNC] | `N` | `DEST` | `SEQ` | `STATUS` | `CMD` | [REPORT] | `DATA_0` | `DATA_(N-6)` | `SUM`
package modified

import "jvs-go/pkg/jvs"

var (
	requestLayout  = jvs.Layout{SizeIndex: 1, DestIndex: 2, DataIndex: 5}
	responseLayout = jvs.Layout{SizeIndex: 1, DestIndex: 2, DataIndex: 7}
)

const (
	sequenceIndex       = 3
	requestCmdIndex     = 4
	responseStatusIndex = 4
	responseCmdIndex    = 5
	responseReportIndex = 6
)

// RequestPacket is a master-to-slave frame of the modified protocol.
type RequestPacket struct {
	jvs.Frame
}

// NewRequestPacket creates an empty request with the default capacity.
func NewRequestPacket() *RequestPacket {
	return &RequestPacket{Frame: jvs.NewFrame(jvs.DefaultCapacity, requestLayout)}
}

// RequestPacketFromSlice initializes a request from an existing frame slice.
func RequestPacketFromSlice(b []byte) (*RequestPacket, error) {
	f, err := jvs.FrameFromSlice(b, jvs.DefaultCapacity, requestLayout)
	if err != nil {
		return nil, err
	}
	return &RequestPacket{Frame: f}, nil
}

// Sequence returns the SEQ byte.
func (p *RequestPacket) Sequence() byte {
	return p.Bytes()[sequenceIndex]
}

// SetSequence writes the SEQ byte.
func (p *RequestPacket) SetSequence(seq byte) {
	p.Bytes()[sequenceIndex] = seq
}

// Cmd returns the CMD byte.
func (p *RequestPacket) Cmd() byte {
	return p.Bytes()[requestCmdIndex]
}

// SetCmd writes the CMD byte.
func (p *RequestPacket) SetCmd(cmd byte) {
	p.Bytes()[requestCmdIndex] = cmd
}

// ResponsePacket is a slave-to-master frame of the modified protocol.
type ResponsePacket struct {
	jvs.Frame
}

// NewResponsePacket creates an empty response with the default capacity.
func NewResponsePacket() *ResponsePacket {
	return &ResponsePacket{Frame: jvs.NewFrame(jvs.DefaultCapacity, responseLayout)}
}

// ResponsePacketFromSlice initializes a response from an existing frame slice.
func ResponsePacketFromSlice(b []byte) (*ResponsePacket, error) {
	f, err := jvs.FrameFromSlice(b, jvs.DefaultCapacity, responseLayout)
	if err != nil {
		return nil, err
	}
	return &ResponsePacket{Frame: f}, nil
}

// Sequence returns the SEQ byte.
func (p *ResponsePacket) Sequence() byte {
	return p.Bytes()[sequenceIndex]
}

// SetSequence writes the SEQ byte.
func (p *ResponsePacket) SetSequence(seq byte) {
	p.Bytes()[sequenceIndex] = seq
}

// Status returns the STATUS byte.
func (p *ResponsePacket) Status() byte {
	return p.Bytes()[responseStatusIndex]
}

// SetStatus writes the STATUS byte.
func (p *ResponsePacket) SetStatus(status byte) {
	p.Bytes()[responseStatusIndex] = status
}

// Cmd returns the CMD byte.
func (p *ResponsePacket) Cmd() byte {
	return p.Bytes()[responseCmdIndex]
}

// SetCmd writes the CMD byte.
func (p *ResponsePacket) SetCmd(cmd byte) {
	p.Bytes()[responseCmdIndex] = cmd
}

// Report returns the report code.
func (p *ResponsePacket) Report() jvs.Report {
	return jvs.Report(p.Bytes()[responseReportIndex])
}

// ReportRaw returns the report byte without interpretation.
func (p *ResponsePacket) ReportRaw() byte {
	return p.Bytes()[responseReportIndex]
}

// SetReport writes the report code.
func (p *ResponsePacket) SetReport(r jvs.Report) {
	p.Bytes()[responseReportIndex] = byte(r)
}
