package secp256k1

import (
	"errors"
	"math/big"

	"gitlab.com/ctcurve/ctcurve/curves/secp256k1/internal/fp"
)

var fieldModulus = func() *big.Int {
	n, ok := new(big.Int).SetString("fffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 16)
	if !ok {
		panic("secp256k1: invalid field modulus")
	}
	return n
}()

// ErrInvalidRecoveryID is returned by RecoverPoint when recoveryID is
// out of the valid [0,3] range, or the resulting candidate x-coordinate
// is not on the curve.
var ErrInvalidRecoveryID = errors.New("secp256k1: invalid recovery ID")

// RecoverPoint reconstructs the point R used in an ECDSA signature
// from the signature's r scalar and a recovery ID (SEC 1, Version 2.0,
// Section 4.1.6): bit 0 of recoveryID selects R's y-coordinate parity,
// bit 1 signals that r's true x-coordinate overflowed the scalar field
// and must be recovered as r+n (vanishingly rare for secp256k1, since
// n is only slightly smaller than p, but still possible).
func RecoverPoint(r *Scalar, recoveryID byte) (*Point, error) {
	if recoveryID > 3 {
		return nil, ErrInvalidRecoveryID
	}

	rBytes := r.Bytes()
	x := new(big.Int).SetBytes(rBytes)
	if recoveryID&2 != 0 {
		x.Add(x, order)
	}
	if x.Cmp(fieldModulus) >= 0 {
		return nil, ErrInvalidRecoveryID
	}

	var rawX [CoordSize]byte
	x.FillBytes(rawX[:])

	var xElem fp.Element
	if _, err := xElem.SetCanonicalBytes(&rawX); err != nil {
		return nil, ErrInvalidRecoveryID
	}

	xBytes, yBytes, err := liftX(&xElem, uint64(recoveryID&1))
	if err != nil {
		return nil, ErrInvalidRecoveryID
	}

	return NewPointFromCoords(&xBytes, &yBytes)
}
