package jvs

// Request frame layout (master -> slave):
//
//	00     | 01     | 02   | 03       | ...          | N + 1
//	[SYNC] | `DEST` | `N`  | `DATA_0` | `DATA_(N-2)` | `SUM`
var requestLayout = Layout{SizeIndex: 2, DestIndex: 1, DataIndex: 3}

// RequestPacket is a master-to-slave frame of the base protocol.
type RequestPacket struct {
	Frame
}

// NewRequestPacket creates an empty request with the default capacity.
func NewRequestPacket() *RequestPacket {
	return &RequestPacket{Frame: NewFrame(DefaultCapacity, requestLayout)}
}

// RequestPacketFromSlice initializes a request from an existing frame slice.
func RequestPacketFromSlice(b []byte) (*RequestPacket, error) {
	f, err := FrameFromSlice(b, DefaultCapacity, requestLayout)
	if err != nil {
		return nil, err
	}
	return &RequestPacket{Frame: f}, nil
}
