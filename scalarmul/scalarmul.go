// Package scalarmul provides curve-agnostic constant-time scalar
// multiplication, written once against a small group-element method
// set (mirroring the "pointer method set" idiom in package field) and
// monomorphized per concrete point type (curve/shortw.Point,
// curve/shortw.Projective or curve/edwards.Point, for any curve
// instantiation of these).
//
// ScalarMul is a fixed-iteration double-and-always-add walk over the
// scalar's bits, MSB to LSB: every bit performs exactly one Double and
// one Add, with the Add's result kept or discarded via
// ConditionalSelect, so the sequence of group operations executed
// depends only on the scalar's bit-length, never its value. This is
// the same shape as field.Pow's square-and-multiply, at one level up
// the algebra.
//
// Curves whose endomorphism ring supports a GLV/GLS decomposition
// (secp256k1, BN254) additionally expose an accelerated path in their
// own curves/<name> package, built on top of this package's
// GLV2Table and ScalarMulGLV2: one simultaneous double-and-add over
// both half-length decomposed scalars against a combined table.
package scalarmul

// Group is the method set every concrete point type (for any curve,
// in either coordinate system this module uses) implements. E is the
// pointer type, following the same constraint idiom as field.Element.
type Group[T any] interface {
	*T

	Set(a *T) *T
	Add(a, b *T) *T
	Double(a *T) *T
	ConditionalSelect(a, b *T, ctrl uint64) *T
}

// ScalarMul sets acc = acc (treated as the running total, which the
// caller MUST have already set to the group identity) plus
// base*scalar, where scalar's bits (MSB first) are supplied by
// bitAt(i) for i in [0, bitLen). It returns acc.
//
// acc and base MUST NOT alias.
func ScalarMul[T any, G Group[T]](acc, base G, bitLen int, bitAt func(i int) uint64) G {
	for i := bitLen - 1; i >= 0; i-- {
		acc.Double(acc)

		var tmp T
		g := G(&tmp)
		g.Add(acc, base)

		acc.ConditionalSelect(acc, g, bitAt(i))
	}
	return acc
}

// BitAtBigEndianBytes returns a bitAt function reading bit i (0 = MSB
// of the first byte) out of a big-endian byte slice of bitLen bits,
// for use with ScalarMul.
func BitAtBigEndianBytes(scalar []byte, bitLen int) func(i int) uint64 {
	return func(i int) uint64 {
		// i counts down from bitLen-1 (MSB) to 0 (LSB) as ScalarMul walks;
		// byte index and in-byte bit position are both measured from the
		// most significant end.
		bitIdx := bitLen - 1 - i
		byteIdx := bitIdx / 8
		bitInByte := 7 - uint(bitIdx%8)
		return uint64(scalar[byteIdx]>>bitInByte) & 1
	}
}
