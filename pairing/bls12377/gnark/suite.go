// Package gnark implements the C377 pairing.Suite: BLS12-377 backed by
// github.com/consensys/gnark-crypto, the other pairing library already
// present in the teacher's own dependency graph.
package gnark

import (
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/pairing"
)

type suite struct{}

// NewSuite returns the C377 pairing suite: G1 as the signature group, G2
// as the public-key group, the same canonical direction as C381.
func NewSuite() pairing.Suite { return suite{} }

func (suite) Name() string { return "C377" }

func (suite) G1() curve.Group { return groupG1{} }
func (suite) G2() curve.Group { return groupG2{} }
func (suite) GT() curve.Group { return groupGT{} }

func (suite) Pair(p1, p2 curve.Point) curve.Point {
	a, ok1 := p1.(*pointG1)
	b, ok2 := p2.(*pointG2)
	if !ok1 || !ok2 {
		panic("gnark: Pair requires a G1 point and a G2 point")
	}
	gt, err := bls12377.Pair([]bls12377.G1Affine{a.p}, []bls12377.G2Affine{b.p})
	if err != nil {
		panic("gnark: pairing computation failed: " + err.Error())
	}
	return &pointGT{e: gt}
}

// ValidatePairing reports whether e(a1,b1) == e(a2,b2) using gnark-crypto's
// PairingCheck, which tests e(a1,b1)*e(a2,-b2) == 1 via a single combined
// Miller loop and final exponentiation.
func (s suite) ValidatePairing(a1, b1, a2, b2 curve.Point) bool {
	pa1, ok1 := a1.(*pointG1)
	pb1, ok2 := b1.(*pointG2)
	pa2, ok3 := a2.(*pointG1)
	pb2, ok4 := b2.(*pointG2)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	var negB2 bls12377.G2Affine
	negB2.Neg(&pb2.p)
	ok, err := bls12377.PairingCheck(
		[]bls12377.G1Affine{pa1.p, pa2.p},
		[]bls12377.G2Affine{pb1.p, negB2},
	)
	if err != nil {
		return false
	}
	return ok
}
