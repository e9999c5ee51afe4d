package gnark

import (
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"

	"go.dedis.ch/tbls/v2/curve"
)

type groupG1 struct{}
type groupG2 struct{}
type groupGT struct{}

func (groupG1) String() string       { return "bls12-377.G1" }
func (groupG1) ScalarLen() int       { return scalarLen }
func (groupG1) Scalar() curve.Scalar { return newScalar() }
func (groupG1) PointLen() int        { return g1CompressedLen }
func (groupG1) Point() curve.Point   { return newPointG1() }
func (groupG1) HashToPoint(domain, message []byte) curve.Point {
	p, err := bls12377.HashToG1(message, domain)
	if err != nil {
		// HashToG1 only fails on malformed DST/expander parameters, never
		// on message content; a fixed domain tag makes this unreachable.
		panic("gnark: hash-to-curve on G1: " + err.Error())
	}
	return &pointG1{p: p}
}

func (groupG2) String() string       { return "bls12-377.G2" }
func (groupG2) ScalarLen() int       { return scalarLen }
func (groupG2) Scalar() curve.Scalar { return newScalar() }
func (groupG2) PointLen() int        { return g2CompressedLen }
func (groupG2) Point() curve.Point   { return newPointG2() }
func (groupG2) HashToPoint(domain, message []byte) curve.Point {
	p, err := bls12377.HashToG2(message, domain)
	if err != nil {
		panic("gnark: hash-to-curve on G2: " + err.Error())
	}
	return &pointG2{p: p}
}

func (groupGT) String() string       { return "bls12-377.GT" }
func (groupGT) ScalarLen() int       { return scalarLen }
func (groupGT) Scalar() curve.Scalar { return newScalar() }
func (groupGT) PointLen() int        { return gtLen }
func (groupGT) Point() curve.Point   { return newPointGT() }
func (groupGT) HashToPoint(_, _ []byte) curve.Point {
	panic("gnark: GT has no hash-to-point; it is only ever produced by a pairing")
}
