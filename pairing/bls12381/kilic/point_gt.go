package kilic

import (
	"fmt"

	bls12381 "github.com/kilic/bls12-381"

	"go.dedis.ch/tbls/v2/curve"
)

const gtLen = 576

// pointGT wraps the Fp12 target-group element produced by a pairing. GT is
// written multiplicatively in the underlying library; this wrapper maps
// that onto curve.Point's additive vocabulary (Add is GT multiplication,
// Mul is GT exponentiation) purely so ValidatePairing can compare two GT
// elements through the same Point interface as G1/G2. Callers outside this
// package never construct a pointGT directly.
type pointGT struct {
	e *bls12381.E
}

func newPointGT() *pointGT {
	return &pointGT{e: new(bls12381.E)}
}

func (p *pointGT) Equal(o curve.Point) bool {
	return p.e.Equal(o.(*pointGT).e)
}

func (p *pointGT) Null() curve.Point {
	p.e = bls12381.NewGT().One()
	return p
}

func (p *pointGT) Base() curve.Point {
	return p.Null()
}

func (p *pointGT) Set(o curve.Point) curve.Point {
	p.e = new(bls12381.E).Set(o.(*pointGT).e)
	return p
}

func (p *pointGT) Clone() curve.Point {
	return &pointGT{e: new(bls12381.E).Set(p.e)}
}

func (p *pointGT) Add(a, b curve.Point) curve.Point {
	bls12381.NewGT().Mul(p.e, a.(*pointGT).e, b.(*pointGT).e)
	return p
}

func (p *pointGT) Sub(a, b curve.Point) curve.Point {
	inv := new(bls12381.E)
	bls12381.NewGT().Inverse(inv, b.(*pointGT).e)
	bls12381.NewGT().Mul(p.e, a.(*pointGT).e, inv)
	return p
}

func (p *pointGT) Neg(a curve.Point) curve.Point {
	bls12381.NewGT().Inverse(p.e, a.(*pointGT).e)
	return p
}

func (p *pointGT) Mul(s curve.Scalar, a curve.Point) curve.Point {
	base := a
	if base == nil {
		base = &pointGT{e: bls12381.NewGT().One()}
	}
	bls12381.NewGT().Exp(p.e, base.(*pointGT).e, s.(*scalar).v)
	return p
}

func (p *pointGT) MarshalBinary() ([]byte, error) {
	return p.e.ToBytes(), nil
}

func (p *pointGT) UnmarshalBinary(buf []byte) error {
	if len(buf) != gtLen {
		return fmt.Errorf("kilic: GT encoding must be %d bytes, got %d", gtLen, len(buf))
	}
	e, err := bls12381.NewGT().FromBytes(buf)
	if err != nil {
		return fmt.Errorf("kilic: decoding GT element: %w", err)
	}
	p.e = e
	return nil
}
