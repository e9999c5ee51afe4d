package gnark

import (
	"fmt"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

	"go.dedis.ch/tbls/v2/curve"
)

const g1CompressedLen = 48

type pointG1 struct {
	p bls12377.G1Affine
}

func newPointG1() *pointG1 { return &pointG1{} }

func (p *pointG1) Equal(o curve.Point) bool { return p.p.Equal(&o.(*pointG1).p) }

func (p *pointG1) Null() curve.Point {
	p.p.X.SetZero()
	p.p.Y.SetZero()
	return p
}

func (p *pointG1) Base() curve.Point {
	_, _, g1, _ := bls12377.Generators()
	p.p = g1
	return p
}

func (p *pointG1) Set(o curve.Point) curve.Point {
	p.p = o.(*pointG1).p
	return p
}

func (p *pointG1) Clone() curve.Point {
	return &pointG1{p: p.p}
}

func (p *pointG1) Add(a, b curve.Point) curve.Point {
	p.p.Add(&a.(*pointG1).p, &b.(*pointG1).p)
	return p
}

func (p *pointG1) Sub(a, b curve.Point) curve.Point {
	var neg bls12377.G1Affine
	neg.Neg(&b.(*pointG1).p)
	p.p.Add(&a.(*pointG1).p, &neg)
	return p
}

func (p *pointG1) Neg(a curve.Point) curve.Point {
	p.p.Neg(&a.(*pointG1).p)
	return p
}

func (p *pointG1) Mul(s curve.Scalar, a curve.Point) curve.Point {
	base := a
	if base == nil {
		base = &pointG1{}
		base.(*pointG1).Base()
	}
	scalarBig := s.(*scalar).v.BigInt(new(big.Int))
	p.p.ScalarMultiplication(&base.(*pointG1).p, scalarBig)
	return p
}

func (p *pointG1) MarshalBinary() ([]byte, error) {
	b := p.p.Bytes()
	return b[:], nil
}

func (p *pointG1) UnmarshalBinary(buf []byte) error {
	if len(buf) != g1CompressedLen {
		return fmt.Errorf("gnark: G1 encoding must be %d bytes, got %d", g1CompressedLen, len(buf))
	}
	if _, err := p.p.SetBytes(buf); err != nil {
		return fmt.Errorf("gnark: decoding G1 point: %w", err)
	}
	return nil
}
