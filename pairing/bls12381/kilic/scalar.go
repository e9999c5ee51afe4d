package kilic

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/kilic/bls12-381"

	"go.dedis.ch/tbls/v2/curve"
)

// frOrder is the prime order of the BLS12-381 scalar field, shared by both
// G1 and G2.
var frOrder = bls12381.NewG1().Q()

const scalarLen = 32

type scalar struct {
	v *big.Int
}

func newScalar() *scalar {
	return &scalar{v: new(big.Int)}
}

func (s *scalar) Equal(o curve.Scalar) bool {
	return s.v.Cmp(o.(*scalar).v) == 0
}

func (s *scalar) Set(o curve.Scalar) curve.Scalar {
	s.v.Set(o.(*scalar).v)
	return s
}

func (s *scalar) Clone() curve.Scalar {
	return &scalar{v: new(big.Int).Set(s.v)}
}

func (s *scalar) Zero() curve.Scalar {
	s.v.SetInt64(0)
	return s
}

func (s *scalar) One() curve.Scalar {
	s.v.SetInt64(1)
	return s
}

func (s *scalar) SetInt64(v int64) curve.Scalar {
	s.v.SetInt64(v)
	s.v.Mod(s.v, frOrder)
	return s
}

func (s *scalar) Add(a, b curve.Scalar) curve.Scalar {
	s.v.Add(a.(*scalar).v, b.(*scalar).v)
	s.v.Mod(s.v, frOrder)
	return s
}

func (s *scalar) Sub(a, b curve.Scalar) curve.Scalar {
	s.v.Sub(a.(*scalar).v, b.(*scalar).v)
	s.v.Mod(s.v, frOrder)
	return s
}

func (s *scalar) Neg(a curve.Scalar) curve.Scalar {
	s.v.Neg(a.(*scalar).v)
	s.v.Mod(s.v, frOrder)
	return s
}

func (s *scalar) Mul(a, b curve.Scalar) curve.Scalar {
	s.v.Mul(a.(*scalar).v, b.(*scalar).v)
	s.v.Mod(s.v, frOrder)
	return s
}

// Inv sets the receiver to a^-1 mod frOrder using Fermat's little theorem,
// computed with big.Int.Exp, which is not constant-time. Panics if a is
// zero.
func (s *scalar) Inv(a curve.Scalar) curve.Scalar {
	av := a.(*scalar).v
	if av.Sign() == 0 {
		panic("kilic: inverse of zero scalar")
	}
	exp := new(big.Int).Sub(frOrder, big.NewInt(2))
	s.v.Exp(av, exp, frOrder)
	return s
}

func (s *scalar) Pick(rnd io.Reader) curve.Scalar {
	if rnd == nil {
		rnd = rand.Reader
	}
	v, err := rand.Int(rnd, frOrder)
	if err != nil {
		panic(fmt.Sprintf("kilic: sampling scalar: %v", err))
	}
	s.v.Set(v)
	return s
}

func (s *scalar) SetBytes(buf []byte) curve.Scalar {
	// canonical encoding is little-endian; big.Int wants big-endian.
	be := reverse(buf)
	s.v.SetBytes(be)
	s.v.Mod(s.v, frOrder)
	return s
}

func (s *scalar) MarshalBinary() ([]byte, error) {
	be := s.v.FillBytes(make([]byte, scalarLen))
	return reverse(be), nil
}

func (s *scalar) UnmarshalBinary(buf []byte) error {
	if len(buf) != scalarLen {
		return fmt.Errorf("kilic: scalar encoding must be %d bytes, got %d", scalarLen, len(buf))
	}
	be := reverse(buf)
	v := new(big.Int).SetBytes(be)
	if v.Cmp(frOrder) >= 0 {
		return fmt.Errorf("kilic: scalar encoding not reduced modulo field order")
	}
	s.v.Set(v)
	return nil
}

func reverse(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[len(in)-1-i] = b
	}
	return out
}
