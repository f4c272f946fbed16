package checksum

import (
	"testing"
)

func TestSumEmpty(t *testing.T) {
	if s := Sum([]byte{}); s != 0 {
		t.Errorf("Expected sum of empty slice to be 0, got %d", s)
	}
}

func TestSumWraps(t *testing.T) {
	// 0xFF + 0x03 + 0x01 + 0x02 = 0x105, truncated to 0x05.
	data := []byte{0xFF, 0x03, 0x01, 0x02}
	if s := Sum(data); s != 0x05 {
		t.Errorf("Expected wrapped sum 0x05, got %#02x", s)
	}
}

func TestSumConsistency(t *testing.T) {
	data := []byte{0x06, 0xFF, 0x01, 0x02, 0x01, 0x02}
	s1 := Sum(data)
	s2 := Sum(data)
	if s1 != s2 {
		t.Errorf("Sum is inconsistent: %d vs %d", s1, s2)
	}
	if s1 != 0x0B {
		t.Errorf("Expected 0x0B, got %#02x", s1)
	}
}

func TestVerify(t *testing.T) {
	data := []byte{0xFF, 0x03, 0x01, 0x02}
	if !Verify(data, 0x05) {
		t.Errorf("Verify rejected a correct checksum")
	}
	if Verify(data, 0x06) {
		t.Errorf("Verify accepted an incorrect checksum")
	}
}
