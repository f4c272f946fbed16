package modified

import (
	"bytes"
	"testing"

	"jvs-go/pkg/jvs"
)

var (
	// size 6, dest 0xFF, seq 1, cmd 2, data [01 02], checksum 0x0B.
	requestData = []byte{0xE0, 0x06, 0xFF, 0x01, 0x02, 0x01, 0x02, 0x0B}
	// size 8, dest 0xFF, seq 1, status 3, cmd 2, report 4, data [01 02],
	// checksum 0x14.
	responseData = []byte{0xE0, 0x08, 0xFF, 0x01, 0x03, 0x02, 0x04, 0x01, 0x02, 0x14}
)

func TestRequestPacketFromSlice(t *testing.T) {
	p, err := RequestPacketFromSlice(requestData)
	if err != nil {
		t.Fatalf("RequestPacketFromSlice failed: %v", err)
	}
	if !bytes.Equal(p.Slice(), requestData) {
		t.Errorf("Slice mismatch: got % 02X, want % 02X", p.Slice(), requestData)
	}
}

func TestRequestPacketAccessors(t *testing.T) {
	p, err := RequestPacketFromSlice(requestData)
	if err != nil {
		t.Fatalf("RequestPacketFromSlice failed: %v", err)
	}

	if p.Sync() != requestData[0] {
		t.Errorf("Sync: got %#02x, want %#02x", p.Sync(), requestData[0])
	}
	if p.Size() != requestData[1] {
		t.Errorf("Size: got %#02x, want %#02x", p.Size(), requestData[1])
	}
	if p.Dest() != requestData[2] {
		t.Errorf("Dest: got %#02x, want %#02x", p.Dest(), requestData[2])
	}
	if p.Sequence() != requestData[3] {
		t.Errorf("Sequence: got %#02x, want %#02x", p.Sequence(), requestData[3])
	}
	if p.Cmd() != requestData[4] {
		t.Errorf("Cmd: got %#02x, want %#02x", p.Cmd(), requestData[4])
	}
	if !bytes.Equal(p.Payload(), requestData[5:7]) {
		t.Errorf("Payload: got % 02X, want % 02X", p.Payload(), requestData[5:7])
	}
	if p.Checksum() != requestData[7] {
		t.Errorf("Checksum: got %#02x, want %#02x", p.Checksum(), requestData[7])
	}
}

func TestRequestPacketSetters(t *testing.T) {
	p := NewRequestPacket()
	p.SetDest(requestData[2])
	p.SetSequence(requestData[3])
	p.SetCmd(requestData[4])
	if err := p.SetPayload(requestData[5:7]); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	p.CalculateChecksum()

	if !bytes.Equal(p.Slice(), requestData) {
		t.Errorf("Built frame % 02X, want % 02X", p.Slice(), requestData)
	}
	if !p.Valid() {
		t.Errorf("Built frame reported invalid")
	}

	// Shrinking the payload shrinks the size byte with it.
	if err := p.SetPayload([]byte{0x01}); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	if p.Size() != requestData[1]-1 {
		t.Errorf("Size after shrink: got %d, want %d", p.Size(), requestData[1]-1)
	}
}

func TestResponsePacketAccessors(t *testing.T) {
	p, err := ResponsePacketFromSlice(responseData)
	if err != nil {
		t.Fatalf("ResponsePacketFromSlice failed: %v", err)
	}

	if p.Sync() != responseData[0] {
		t.Errorf("Sync: got %#02x, want %#02x", p.Sync(), responseData[0])
	}
	if p.Size() != responseData[1] {
		t.Errorf("Size: got %#02x, want %#02x", p.Size(), responseData[1])
	}
	if p.Dest() != responseData[2] {
		t.Errorf("Dest: got %#02x, want %#02x", p.Dest(), responseData[2])
	}
	if p.Sequence() != responseData[3] {
		t.Errorf("Sequence: got %#02x, want %#02x", p.Sequence(), responseData[3])
	}
	if p.Status() != responseData[4] {
		t.Errorf("Status: got %#02x, want %#02x", p.Status(), responseData[4])
	}
	if p.Cmd() != responseData[5] {
		t.Errorf("Cmd: got %#02x, want %#02x", p.Cmd(), responseData[5])
	}
	if p.ReportRaw() != responseData[6] {
		t.Errorf("ReportRaw: got %#02x, want %#02x", p.ReportRaw(), responseData[6])
	}
	if p.Report() != jvs.ReportBusy {
		t.Errorf("Report: got %v, want Busy", p.Report())
	}
	if !bytes.Equal(p.Payload(), responseData[7:9]) {
		t.Errorf("Payload: got % 02X, want % 02X", p.Payload(), responseData[7:9])
	}
	if p.Checksum() != responseData[9] {
		t.Errorf("Checksum: got %#02x, want %#02x", p.Checksum(), responseData[9])
	}
}

func TestResponsePacketSetters(t *testing.T) {
	p := NewResponsePacket()
	p.SetDest(responseData[2])
	p.SetSequence(responseData[3])
	p.SetStatus(responseData[4])
	p.SetCmd(responseData[5])
	p.SetReport(jvs.Report(responseData[6]))
	if err := p.SetPayload(responseData[7:9]); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	p.CalculateChecksum()

	if !bytes.Equal(p.Slice(), responseData) {
		t.Errorf("Built frame % 02X, want % 02X", p.Slice(), responseData)
	}
	if p.Checksum() != responseData[9] {
		t.Errorf("Checksum: got %#02x, want %#02x", p.Checksum(), responseData[9])
	}
	if !p.Valid() {
		t.Errorf("Built frame reported invalid")
	}
}
