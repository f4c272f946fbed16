package byteview

import (
	"bytes"
	"errors"
	"testing"
)

func TestU8RoundTrip(t *testing.T) {
	v := New(8)
	if err := v.SetU8(3, 0xAB); err != nil {
		t.Fatalf("SetU8 failed: %v", err)
	}
	b, err := v.U8(3)
	if err != nil {
		t.Fatalf("U8 failed: %v", err)
	}
	if b != 0xAB {
		t.Errorf("Expected 0xAB, got %#02x", b)
	}
}

func TestOutOfBounds(t *testing.T) {
	v := New(4)

	if _, err := v.U8(4); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("U8(4) expected ErrOutOfBounds, got %v", err)
	}
	if err := v.SetU8(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetU8(-1) expected ErrOutOfBounds, got %v", err)
	}
	if _, err := v.Range(2, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Range(2,3) expected ErrOutOfBounds, got %v", err)
	}
	if err := v.SetRange(3, []byte{1, 2}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetRange(3, 2 bytes) expected ErrOutOfBounds, got %v", err)
	}
}

func TestRangeAliasesBuffer(t *testing.T) {
	v := New(6)
	if err := v.SetRange(1, []byte{0x01, 0x02, 0x03}); err != nil {
		t.Fatalf("SetRange failed: %v", err)
	}
	r, err := v.Range(1, 3)
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if !bytes.Equal(r, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("Range returned %v", r)
	}

	// Mutations through the slice must be visible through the view.
	r[0] = 0xFF
	b, _ := v.U8(1)
	if b != 0xFF {
		t.Errorf("Expected aliased write to be visible, got %#02x", b)
	}
}

func TestFromBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	v := FromBytes(src)
	src[0] = 0xEE
	b, _ := v.U8(0)
	if b != 1 {
		t.Errorf("FromBytes must copy, got %#02x", b)
	}
	if v.Cap() != 3 {
		t.Errorf("Expected cap 3, got %d", v.Cap())
	}
}
