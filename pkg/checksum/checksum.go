// Package checksum implements the additive mod-256 integrity check used by
// JVS frames. The checksum of a region is the wrapping 8-bit sum of its
// bytes; it is a pure function of the input and carries no state, so the
// same routine stamps outgoing frames and validates incoming ones.
package checksum

// Sum computes the wrapping mod-256 sum of data. An empty region sums to 0.
func Sum(data []byte) uint8 {
	var s uint8
	for _, b := range data {
		s += b
	}
	return s
}

// Verify reports whether Sum(data) equals want. Validation failures are
// reported, never corrected.
func Verify(data []byte, want uint8) bool {
	return Sum(data) == want
}
