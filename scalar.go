// Package secp256k1 is a thin, ergonomic facade over curves/secp256k1
// (itself generic arithmetic from curve/shortw, field, and scalarmul
// monomorphized against curves/secp256k1/internal/fp,fr) exposing the
// conventional NewXxx-constructor, SEC1-encoding API that secec and
// other direct consumers of the secp256k1 group expect.
package secp256k1

import (
	"math/big"

	"gitlab.com/ctcurve/ctcurve/curves/secp256k1"
	"gitlab.com/ctcurve/ctcurve/curves/secp256k1/internal/fr"
	"gitlab.com/ctcurve/ctcurve/internal/disalloweq"
)

// ScalarSize is the size, in bytes, of a canonically-encoded Scalar.
const ScalarSize = fr.ByteLength

var order = func() *big.Int {
	n, ok := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	if !ok {
		panic("secp256k1: invalid scalar field order")
	}
	return n
}()

// Scalar is an element of the scalar field of the secp256k1 group (ie:
// the set of integers mod the group order n). The zero value is NOT
// valid, and may only be used as a receiver.
type Scalar struct {
	_ disalloweq.DisallowEqual

	inner fr.Element
}

// NewScalar returns a new Scalar set to 0.
func NewScalar() *Scalar {
	s := &Scalar{}
	s.inner.Zero()
	return s
}

// NewScalarFrom creates a new Scalar from another.
func NewScalarFrom(s *Scalar) *Scalar {
	return NewScalar().Set(s)
}

// NewScalarFromCanonicalBytes creates a new Scalar from its canonical
// big-endian byte encoding, returning an error if the encoding is not
// that of a value in [0, n).
func NewScalarFromCanonicalBytes(b *[ScalarSize]byte) (*Scalar, error) {
	s := &Scalar{}
	if _, err := s.inner.SetCanonicalBytes(b); err != nil {
		return nil, err
	}
	return s, nil
}

// Set sets `s = a`, and returns `s`.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.inner.Set(&a.inner)
	return s
}

// Zero sets `s = 0`, and returns `s`.
func (s *Scalar) Zero() *Scalar {
	s.inner.Zero()
	return s
}

// One sets `s = 1`, and returns `s`.
func (s *Scalar) One() *Scalar {
	s.inner.One()
	return s
}

// SetCanonicalBytes sets `s` to the big-endian byte encoding `b`,
// returning `s` and no error iff `b` is the canonical encoding of a
// value in `[0, n)`.
func (s *Scalar) SetCanonicalBytes(b *[ScalarSize]byte) (*Scalar, error) {
	if _, err := s.inner.SetCanonicalBytes(b); err != nil {
		return nil, err
	}
	return s, nil
}

// SetBytes sets `s = OS2IP(b) mod n`, and returns `s` and 1 iff a
// reduction was required to bring the value into range, 0 otherwise.
// b MUST be ScalarSize bytes long.
func (s *Scalar) SetBytes(b *[ScalarSize]byte) (*Scalar, uint64) {
	n := new(big.Int).SetBytes(b[:])
	var reduced uint64
	if n.Cmp(order) >= 0 {
		reduced = 1
	}
	n.Mod(n, order)

	var buf [ScalarSize]byte
	n.FillBytes(buf[:])
	if _, err := s.inner.SetCanonicalBytes(&buf); err != nil {
		panic("secp256k1: BUG: reduced scalar not canonical: " + err.Error())
	}
	return s, reduced
}

// Bytes returns the canonical big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

// Add sets `s = a + b`, and returns `s`.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.inner.Add(&a.inner, &b.inner)
	return s
}

// Subtract sets `s = a - b`, and returns `s`.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar {
	s.inner.Subtract(&a.inner, &b.inner)
	return s
}

// Multiply sets `s = a * b`, and returns `s`.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	s.inner.Multiply(&a.inner, &b.inner)
	return s
}

// Square sets `s = a * a`, and returns `s`.
func (s *Scalar) Square(a *Scalar) *Scalar {
	s.inner.Square(&a.inner)
	return s
}

// Negate sets `s = -a`, and returns `s`.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	s.inner.Negate(&a.inner)
	return s
}

// ConditionalNegate sets `s = a` iff `ctrl == 0`, `s = -a` otherwise,
// and returns `s`. ctrl MUST be 0 or 1.
func (s *Scalar) ConditionalNegate(a *Scalar, ctrl uint64) *Scalar {
	var neg Scalar
	neg.Negate(a)
	s.inner.ConditionalSelect(&a.inner, &neg.inner, ctrl)
	return s
}

// ConditionalSelect sets `s = a` iff `ctrl == 0`, `s = b` otherwise,
// and returns `s`. ctrl MUST be 0 or 1.
func (s *Scalar) ConditionalSelect(a, b *Scalar, ctrl uint64) *Scalar {
	s.inner.ConditionalSelect(&a.inner, &b.inner, ctrl)
	return s
}

// Invert sets `s = 1/a`, and returns `s`. Invert(0) is defined to be 0.
func (s *Scalar) Invert(a *Scalar) *Scalar {
	s.inner.Invert(&a.inner)
	return s
}

// Equal returns 1 iff `s == a`, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) uint64 {
	return s.inner.Equal(&a.inner)
}

// IsZero returns 1 iff `s == 0`, 0 otherwise.
func (s *Scalar) IsZero() uint64 {
	return s.inner.IsZero()
}

// IsGreaterThanHalfN returns 1 iff s > n/2, 0 otherwise, which ECDSA
// implementations conventionally use to normalize signatures to low-s
// form.
func (s *Scalar) IsGreaterThanHalfN() uint64 {
	b := s.inner.Bytes()
	n := new(big.Int).SetBytes(b[:])
	half := new(big.Int).Rsh(order, 1)
	if n.Cmp(half) > 0 {
		return 1
	}
	return 0
}

// MustRandomize sets s to a uniformly random scalar, and panics on
// entropy source failure.
func (s *Scalar) MustRandomize() *Scalar {
	s.inner.MustRandomize()
	return s
}

// scalarToSecp converts s to the curves/secp256k1 package's Scalar
// alias (currently the identical underlying type); kept as a named
// conversion point so the two packages' types can diverge later
// without touching every call site.
func scalarToSecp(s *Scalar) *secp256k1.Scalar {
	return &s.inner
}
