package secp256k1

// ScalarMult sets `v = s*p`, and returns `v`. Constant-time in s.
func (v *Point) ScalarMult(s *Scalar, p *Point) *Point {
	v.inner.ScalarMult(scalarToSecp(s), &p.inner)
	return v
}

// ScalarBaseMult sets `v = s*G`, and returns `v`. Constant-time in s.
func (v *Point) ScalarBaseMult(s *Scalar) *Point {
	v.inner.ScalarBaseMult(scalarToSecp(s))
	return v
}

// DoubleScalarMultBasepointVartime sets `v = u1*G + u2*p`, and returns
// `v`, in variable time. This is the workhorse of ECDSA/Schnorr
// signature verification, where u1, u2 are derived from public values
// (the signature and the message digest), so there is nothing to
// protect by running it at constant time; both terms use the GLV
// endomorphism decomposition for speed.
func (v *Point) DoubleScalarMultBasepointVartime(u1, u2 *Scalar, p *Point) *Point {
	var g, t1, t2 Point
	g.Generator()
	t1.inner.ScalarMultVartime(scalarToSecp(u1), &g.inner)
	t2.inner.ScalarMultVartime(scalarToSecp(u2), &p.inner)
	v.Add(&t1, &t2)
	return v
}
