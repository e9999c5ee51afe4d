package gnark

import (
	"fmt"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

	"go.dedis.ch/tbls/v2/curve"
)

const gtLen = 576

// pointGT mirrors kilic's pointGT: GT is multiplicative in gnark-crypto,
// mapped onto curve.Point's additive vocabulary (Add is GT multiplication,
// Mul is GT exponentiation) so ValidatePairing can share the Point
// interface across groups. Never constructed outside this package.
type pointGT struct {
	e bls12377.GT
}

func newPointGT() *pointGT {
	gt := &pointGT{}
	gt.e.SetOne()
	return gt
}

func (p *pointGT) Equal(o curve.Point) bool { return p.e.Equal(&o.(*pointGT).e) }

func (p *pointGT) Null() curve.Point {
	p.e.SetOne()
	return p
}

func (p *pointGT) Base() curve.Point { return p.Null() }

func (p *pointGT) Set(o curve.Point) curve.Point {
	p.e = o.(*pointGT).e
	return p
}

func (p *pointGT) Clone() curve.Point { return &pointGT{e: p.e} }

func (p *pointGT) Add(a, b curve.Point) curve.Point {
	p.e.Mul(&a.(*pointGT).e, &b.(*pointGT).e)
	return p
}

func (p *pointGT) Sub(a, b curve.Point) curve.Point {
	var inv bls12377.GT
	inv.Inverse(&b.(*pointGT).e)
	p.e.Mul(&a.(*pointGT).e, &inv)
	return p
}

func (p *pointGT) Neg(a curve.Point) curve.Point {
	p.e.Inverse(&a.(*pointGT).e)
	return p
}

func (p *pointGT) Mul(s curve.Scalar, a curve.Point) curve.Point {
	base := a
	if base == nil {
		base = newPointGT()
	}
	scalarBig := s.(*scalar).v.BigInt(new(big.Int))
	p.e.Exp(base.(*pointGT).e, scalarBig)
	return p
}

func (p *pointGT) MarshalBinary() ([]byte, error) {
	b := p.e.Bytes()
	return b[:], nil
}

func (p *pointGT) UnmarshalBinary(buf []byte) error {
	if len(buf) != gtLen {
		return fmt.Errorf("gnark: GT encoding must be %d bytes, got %d", gtLen, len(buf))
	}
	if _, err := p.e.SetBytes(buf); err != nil {
		return fmt.Errorf("gnark: decoding GT element: %w", err)
	}
	return nil
}
