package kilic

import (
	"fmt"

	bls12381 "github.com/kilic/bls12-381"

	"go.dedis.ch/tbls/v2/curve"
)

const g1CompressedLen = 48

type pointG1 struct {
	g *bls12381.G1
	p *bls12381.PointG1
}

func newPointG1(g *bls12381.G1) *pointG1 {
	return &pointG1{g: g, p: g.Zero()}
}

func (p *pointG1) Equal(o curve.Point) bool {
	return p.g.Equal(p.p, o.(*pointG1).p)
}

func (p *pointG1) Null() curve.Point {
	p.p = p.g.Zero()
	return p
}

func (p *pointG1) Base() curve.Point {
	p.p = p.g.One()
	return p
}

func (p *pointG1) Set(o curve.Point) curve.Point {
	p.p = p.g.New().Set(o.(*pointG1).p)
	return p
}

func (p *pointG1) Clone() curve.Point {
	c := newPointG1(p.g)
	c.p = p.g.New().Set(p.p)
	return c
}

func (p *pointG1) Add(a, b curve.Point) curve.Point {
	p.g.Add(p.p, a.(*pointG1).p, b.(*pointG1).p)
	return p
}

func (p *pointG1) Sub(a, b curve.Point) curve.Point {
	p.g.Sub(p.p, a.(*pointG1).p, b.(*pointG1).p)
	return p
}

func (p *pointG1) Neg(a curve.Point) curve.Point {
	p.g.Neg(p.p, a.(*pointG1).p)
	return p
}

func (p *pointG1) Mul(s curve.Scalar, a curve.Point) curve.Point {
	base := a
	if base == nil {
		base = &pointG1{g: p.g, p: p.g.One()}
	}
	p.g.MulScalar(p.p, base.(*pointG1).p, s.(*scalar).v)
	return p
}

func (p *pointG1) MarshalBinary() ([]byte, error) {
	return p.g.ToCompressed(p.p), nil
}

func (p *pointG1) UnmarshalBinary(buf []byte) error {
	if len(buf) != g1CompressedLen {
		return fmt.Errorf("kilic: G1 encoding must be %d bytes, got %d", g1CompressedLen, len(buf))
	}
	pt, err := p.g.FromCompressed(buf)
	if err != nil {
		return fmt.Errorf("kilic: decoding G1 point: %w", err)
	}
	p.p = pt
	return nil
}
