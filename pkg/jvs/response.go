package jvs

// Response frame layout (slave -> master):
//
//	00     | 01     | 02   | 03       | 04       | ...          | N + 1
//	[SYNC] | `DEST` | `N`  | [REPORT] | `DATA_0` | `DATA_(N-3)` | `SUM`
var responseLayout = Layout{SizeIndex: 2, DestIndex: 1, DataIndex: 4}

const responseReportIndex = 3

// ResponsePacket is a slave-to-master frame of the base protocol. Every
// response carries a report code before the first data byte.
type ResponsePacket struct {
	Frame
}

// NewResponsePacket creates an empty response with the default capacity.
func NewResponsePacket() *ResponsePacket {
	return &ResponsePacket{Frame: NewFrame(DefaultCapacity, responseLayout)}
}

// ResponsePacketFromSlice initializes a response from an existing frame slice.
func ResponsePacketFromSlice(b []byte) (*ResponsePacket, error) {
	f, err := FrameFromSlice(b, DefaultCapacity, responseLayout)
	if err != nil {
		return nil, err
	}
	return &ResponsePacket{Frame: f}, nil
}

// Report returns the report code.
func (p *ResponsePacket) Report() Report {
	return Report(p.Bytes()[responseReportIndex])
}

// ReportRaw returns the report byte without interpretation.
func (p *ResponsePacket) ReportRaw() byte {
	return p.Bytes()[responseReportIndex]
}

// SetReport writes the report code.
func (p *ResponsePacket) SetReport(r Report) {
	p.Bytes()[responseReportIndex] = byte(r)
}
