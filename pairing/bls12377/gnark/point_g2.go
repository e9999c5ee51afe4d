package gnark

import (
	"fmt"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

	"go.dedis.ch/tbls/v2/curve"
)

const g2CompressedLen = 96

type pointG2 struct {
	p bls12377.G2Affine
}

func newPointG2() *pointG2 { return &pointG2{} }

func (p *pointG2) Equal(o curve.Point) bool { return p.p.Equal(&o.(*pointG2).p) }

func (p *pointG2) Null() curve.Point {
	p.p.X.SetZero()
	p.p.Y.SetZero()
	return p
}

func (p *pointG2) Base() curve.Point {
	_, _, _, g2 := bls12377.Generators()
	p.p = g2
	return p
}

func (p *pointG2) Set(o curve.Point) curve.Point {
	p.p = o.(*pointG2).p
	return p
}

func (p *pointG2) Clone() curve.Point {
	return &pointG2{p: p.p}
}

func (p *pointG2) Add(a, b curve.Point) curve.Point {
	p.p.Add(&a.(*pointG2).p, &b.(*pointG2).p)
	return p
}

func (p *pointG2) Sub(a, b curve.Point) curve.Point {
	var neg bls12377.G2Affine
	neg.Neg(&b.(*pointG2).p)
	p.p.Add(&a.(*pointG2).p, &neg)
	return p
}

func (p *pointG2) Neg(a curve.Point) curve.Point {
	p.p.Neg(&a.(*pointG2).p)
	return p
}

func (p *pointG2) Mul(s curve.Scalar, a curve.Point) curve.Point {
	base := a
	if base == nil {
		base = &pointG2{}
		base.(*pointG2).Base()
	}
	scalarBig := s.(*scalar).v.BigInt(new(big.Int))
	p.p.ScalarMultiplication(&base.(*pointG2).p, scalarBig)
	return p
}

func (p *pointG2) MarshalBinary() ([]byte, error) {
	b := p.p.Bytes()
	return b[:], nil
}

func (p *pointG2) UnmarshalBinary(buf []byte) error {
	if len(buf) != g2CompressedLen {
		return fmt.Errorf("gnark: G2 encoding must be %d bytes, got %d", g2CompressedLen, len(buf))
	}
	if _, err := p.p.SetBytes(buf); err != nil {
		return fmt.Errorf("gnark: decoding G2 point: %w", err)
	}
	return nil
}
