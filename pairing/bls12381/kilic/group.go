package kilic

import (
	"crypto/sha512"

	bls12381 "github.com/kilic/bls12-381"

	"go.dedis.ch/tbls/v2/curve"
)

type groupG1 struct{ g *bls12381.G1 }
type groupG2 struct{ g *bls12381.G2 }
type groupGT struct{}

func (groupG1) String() string   { return "bls12-381.G1" }
func (groupG1) ScalarLen() int   { return scalarLen }
func (groupG1) Scalar() curve.Scalar { return newScalar() }
func (groupG1) PointLen() int    { return g1CompressedLen }
func (g groupG1) Point() curve.Point { return newPointG1(g.g) }
func (g groupG1) HashToPoint(domain, message []byte) curve.Point {
	p := newPointG1(g.g)
	p.p = g.g.MapToCurve(expandMessage(domain, message, 64))
	return p
}

func (groupG2) String() string   { return "bls12-381.G2" }
func (groupG2) ScalarLen() int   { return scalarLen }
func (groupG2) Scalar() curve.Scalar { return newScalar() }
func (groupG2) PointLen() int    { return g2CompressedLen }
func (g groupG2) Point() curve.Point { return newPointG2(g.g) }
func (g groupG2) HashToPoint(domain, message []byte) curve.Point {
	p := newPointG2(g.g)
	p.p = g.g.MapToCurve(expandMessage(domain, message, 64))
	return p
}

func (groupGT) String() string   { return "bls12-381.GT" }
func (groupGT) ScalarLen() int   { return scalarLen }
func (groupGT) Scalar() curve.Scalar { return newScalar() }
func (groupGT) PointLen() int    { return gtLen }
func (groupGT) Point() curve.Point { return newPointGT() }
func (groupGT) HashToPoint(_, _ []byte) curve.Point {
	panic("kilic: GT has no hash-to-point; it is only ever produced by a pairing")
}

// expandMessage produces a domain-separated digest of the requisite length
// for MapToCurve, the same "hash then map" shape as the VESS scheme's use
// of HashAndMapToSignature: the domain tag and message are concatenated and
// run through SHA-512, which is wide enough to seed the simplified SWU map
// with negligible bias.
func expandMessage(domain, message []byte, length int) []byte {
	h := sha512.New()
	h.Write(domain)
	h.Write(message)
	digest := h.Sum(nil)
	out := make([]byte, 0, length)
	counter := byte(0)
	for len(out) < length {
		h.Reset()
		h.Write(digest)
		h.Write([]byte{counter})
		out = append(out, h.Sum(nil)...)
		counter++
	}
	return out[:length]
}
