package kilic

import (
	"fmt"

	bls12381 "github.com/kilic/bls12-381"

	"go.dedis.ch/tbls/v2/curve"
)

const g2CompressedLen = 96

type pointG2 struct {
	g *bls12381.G2
	p *bls12381.PointG2
}

func newPointG2(g *bls12381.G2) *pointG2 {
	return &pointG2{g: g, p: g.Zero()}
}

func (p *pointG2) Equal(o curve.Point) bool {
	return p.g.Equal(p.p, o.(*pointG2).p)
}

func (p *pointG2) Null() curve.Point {
	p.p = p.g.Zero()
	return p
}

func (p *pointG2) Base() curve.Point {
	p.p = p.g.One()
	return p
}

func (p *pointG2) Set(o curve.Point) curve.Point {
	p.p = p.g.New().Set(o.(*pointG2).p)
	return p
}

func (p *pointG2) Clone() curve.Point {
	c := newPointG2(p.g)
	c.p = p.g.New().Set(p.p)
	return c
}

func (p *pointG2) Add(a, b curve.Point) curve.Point {
	p.g.Add(p.p, a.(*pointG2).p, b.(*pointG2).p)
	return p
}

func (p *pointG2) Sub(a, b curve.Point) curve.Point {
	p.g.Sub(p.p, a.(*pointG2).p, b.(*pointG2).p)
	return p
}

func (p *pointG2) Neg(a curve.Point) curve.Point {
	p.g.Neg(p.p, a.(*pointG2).p)
	return p
}

func (p *pointG2) Mul(s curve.Scalar, a curve.Point) curve.Point {
	base := a
	if base == nil {
		base = &pointG2{g: p.g, p: p.g.One()}
	}
	p.g.MulScalar(p.p, base.(*pointG2).p, s.(*scalar).v)
	return p
}

func (p *pointG2) MarshalBinary() ([]byte, error) {
	return p.g.ToCompressed(p.p), nil
}

func (p *pointG2) UnmarshalBinary(buf []byte) error {
	if len(buf) != g2CompressedLen {
		return fmt.Errorf("kilic: G2 encoding must be %d bytes, got %d", g2CompressedLen, len(buf))
	}
	pt, err := p.g.FromCompressed(buf)
	if err != nil {
		return fmt.Errorf("kilic: decoding G2 point: %w", err)
	}
	p.p = pt
	return nil
}
