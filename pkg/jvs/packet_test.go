package jvs

import (
	"bytes"
	"errors"
	"testing"
)

// Frame with address 0xFF, payload [0x01 0x02]: 0xFF+0x03+0x01+0x02 = 0x105,
// checksum 0x05.
var requestData = []byte{0xE0, 0xFF, 0x03, 0x01, 0x02, 0x05}

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
	if p.Dest() != requestData[1] {
		t.Errorf("Dest: got %#02x, want %#02x", p.Dest(), requestData[1])
	}
	if p.Size() != requestData[2] {
		t.Errorf("Size: got %#02x, want %#02x", p.Size(), requestData[2])
	}
	if !bytes.Equal(p.Payload(), requestData[3:5]) {
		t.Errorf("Payload: got % 02X, want % 02X", p.Payload(), requestData[3:5])
	}
	if p.Checksum() != requestData[5] {
		t.Errorf("Checksum: got %#02x, want %#02x", p.Checksum(), requestData[5])
	}
	if p.Len() != len(requestData) {
		t.Errorf("Len: got %d, want %d", p.Len(), len(requestData))
	}
}

func TestRequestPacketSetters(t *testing.T) {
	p := NewRequestPacket()
	p.SetDest(0xFF)
	if err := p.SetPayload([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	p.CalculateChecksum()

	if !bytes.Equal(p.Slice(), requestData) {
		t.Errorf("Built frame % 02X, want % 02X", p.Slice(), requestData)
	}
}

func TestSetPayloadDerivesSize(t *testing.T) {
	p := NewRequestPacket()
	if err := p.SetPayload([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	// Size counts payload plus the checksum byte.
	if p.Size() != 3 {
		t.Errorf("Size after SetPayload: got %d, want 3", p.Size())
	}
	if err := p.SetPayload([]byte{0x01}); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	if p.Size() != 2 {
		t.Errorf("Size after shrinking payload: got %d, want 2", p.Size())
	}
}

func TestSetPayloadTooLarge(t *testing.T) {
	p := NewRequestPacket()
	big := make([]byte, p.MaxPayload()+1)
	err := p.SetPayload(big)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("Expected ErrPayloadTooLarge, got %v", err)
	}
	// A payload at exactly the maximum must fit.
	if err := p.SetPayload(big[:p.MaxPayload()]); err != nil {
		t.Errorf("SetPayload at MaxPayload failed: %v", err)
	}
}

func TestValid(t *testing.T) {
	p, err := RequestPacketFromSlice(requestData)
	if err != nil {
		t.Fatalf("RequestPacketFromSlice failed: %v", err)
	}
	if !p.Valid() {
		t.Errorf("Expected valid frame")
	}

	// Same frame with a corrupted checksum byte.
	bad := append([]byte(nil), requestData...)
	bad[5] = 0x06
	q, err := RequestPacketFromSlice(bad)
	if err != nil {
		t.Fatalf("RequestPacketFromSlice failed: %v", err)
	}
	if q.Valid() {
		t.Errorf("Expected invalid frame for checksum 0x06")
	}
}

func TestChecksumRefreshAfterMutation(t *testing.T) {
	p := NewRequestPacket()
	p.SetDest(0x01)
	if err := p.SetPayload([]byte{0x10, 0x20, 0x30}); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	sum := p.CalculateChecksum()
	if p.Checksum() != sum {
		t.Errorf("Stored checksum %#02x != computed %#02x", p.Checksum(), sum)
	}
	if !p.Valid() {
		t.Errorf("Frame invalid after checksum refresh")
	}
}

func TestFromSliceTooShort(t *testing.T) {
	_, err := RequestPacketFromSlice([]byte{0xE0, 0xFF, 0x01})
	if !errors.Is(err, ErrShortFrame) {
		t.Errorf("Expected ErrShortFrame, got %v", err)
	}
}

func TestCorruptSizeByte(t *testing.T) {
	p, err := RequestPacketFromSlice(requestData)
	if err != nil {
		t.Fatalf("RequestPacketFromSlice failed: %v", err)
	}
	p.SetSize(0xFF) // points past the 256-byte buffer
	if p.Slice() != nil {
		t.Errorf("Expected nil Slice for size past capacity")
	}
	if p.Valid() {
		t.Errorf("Expected invalid frame for size past capacity")
	}
}

func TestResponsePacket(t *testing.T) {
	// dest 0x00, report Normal, payload [0x01], size = 1+2 = 3,
	// checksum = 0x00+0x03+0x01+0x01 = 0x05.
	p := NewResponsePacket()
	p.SetDest(0x00)
	p.SetReport(ReportNormal)
	if err := p.SetPayload([]byte{0x01}); err != nil {
		t.Fatalf("SetPayload failed: %v", err)
	}
	p.CalculateChecksum()

	want := []byte{0xE0, 0x00, 0x03, 0x01, 0x01, 0x05}
	if !bytes.Equal(p.Slice(), want) {
		t.Errorf("Built response % 02X, want % 02X", p.Slice(), want)
	}
	if p.Report() != ReportNormal {
		t.Errorf("Report: got %v, want Normal", p.Report())
	}
	if !p.Valid() {
		t.Errorf("Expected valid response")
	}
}

func TestReportString(t *testing.T) {
	testCases := []struct {
		report   Report
		expected string
	}{
		{ReportNormal, "Normal"},
		{ReportIncorrectDataSize, "IncorrectDataSize"},
		{ReportInvalidData, "InvalidData"},
		{ReportBusy, "Busy"},
		{Report(0x7F), "Unknown"},
	}

	for _, tc := range testCases {
		if tc.report.String() != tc.expected {
			t.Errorf("Report(%d).String() = %q, expected %q",
				tc.report, tc.report.String(), tc.expected)
		}
	}
}

func BenchmarkCalculateChecksum(b *testing.B) {
	p := NewRequestPacket()
	payload := make([]byte, p.MaxPayload())
	_ = p.SetPayload(payload)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.CalculateChecksum()
	}
}
