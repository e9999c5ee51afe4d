// Package kilic implements the C381 pairing.Suite: BLS12-381 backed by
// github.com/kilic/bls12-381, the library the teacher's own
// pairing/bls12381/kilic wrapper is built on.
package kilic

import (
	bls12381 "github.com/kilic/bls12-381"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/pairing"
)

type suite struct {
	g1 *bls12381.G1
	g2 *bls12381.G2
}

// NewSuite returns the C381 pairing suite: G1 as the signature group, G2
// as the public-key group, matching this module's canonical pairing
// direction (pairing.SignatureGroup / pairing.PublicKeyGroup).
func NewSuite() pairing.Suite {
	return &suite{g1: bls12381.NewG1(), g2: bls12381.NewG2()}
}

func (s *suite) Name() string { return "C381" }

func (s *suite) G1() curve.Group { return groupG1{g: s.g1} }
func (s *suite) G2() curve.Group { return groupG2{g: s.g2} }
func (s *suite) GT() curve.Group { return groupGT{} }

func (s *suite) Pair(p1, p2 curve.Point) curve.Point {
	a1, ok1 := p1.(*pointG1)
	b1, ok2 := p2.(*pointG2)
	if !ok1 || !ok2 {
		panic("kilic: Pair requires a G1 point and a G2 point")
	}
	engine := bls12381.NewPairingEngine()
	engine.AddPair(a1.p, b1.p)
	return &pointGT{e: engine.Result()}
}

// ValidatePairing reports whether e(a1,b1) == e(a2,b2) using the engine's
// combined Miller-loop-plus-final-exponentiation check, avoiding the need
// to materialize and compare two GT elements directly.
func (s *suite) ValidatePairing(a1, b1, a2, b2 curve.Point) bool {
	pa1, ok1 := a1.(*pointG1)
	pb1, ok2 := b1.(*pointG2)
	pa2, ok3 := a2.(*pointG1)
	pb2, ok4 := b2.(*pointG2)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	engine := bls12381.NewPairingEngine()
	engine.AddPair(pa1.p, pb1.p)
	engine.AddPairInv(pa2.p, pb2.p)
	return engine.Check()
}
