// Package helpers provides small constant-time building blocks shared
// across the limb, field, and fiat packages.
package helpers

import (
	"encoding/binary"
	"encoding/hex"
)

// Uint64IsZero returns 1 iff v == 0, 0 otherwise, in constant time.
func Uint64IsZero(v uint64) uint64 {
	// For v != 0, v | -v always has the sign bit set (two's complement).
	// For v == 0, v | -v == 0.  Negating and shifting isolates the bit.
	return ^(v | -v) >> 63
}

// Uint64IsNonzero returns 1 iff v != 0, 0 otherwise, in constant time.
func Uint64IsNonzero(v uint64) uint64 {
	return 1 ^ Uint64IsZero(v)
}

// FiatLimbsAreEqual returns 1 iff a == b (limb-wise), 0 otherwise, in
// constant time.
func FiatLimbsAreEqual(a, b *[4]uint64) uint64 {
	diff := (a[0] ^ b[0]) | (a[1] ^ b[1]) | (a[2] ^ b[2]) | (a[3] ^ b[3])
	return Uint64IsZero(diff)
}

// BytesToSaturated decodes a 32-byte big-endian value into a little-endian
// saturated limb array.
func BytesToSaturated(src *[32]byte) [4]uint64 {
	var l [4]uint64
	l[0] = binary.BigEndian.Uint64(src[24:32])
	l[1] = binary.BigEndian.Uint64(src[16:24])
	l[2] = binary.BigEndian.Uint64(src[8:16])
	l[3] = binary.BigEndian.Uint64(src[0:8])
	return l
}

// MustBytesFromHex decodes a hex string, panicking on failure.  It exists
// solely to allow constants to be expressed as readable hex literals.
func MustBytesFromHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("internal/helpers: invalid hex constant: " + err.Error())
	}
	return b
}
