package gnark

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"go.dedis.ch/tbls/v2/curve"
)

const scalarLen = fr.Bytes

type scalar struct {
	v fr.Element
}

func newScalar() *scalar { return &scalar{} }

func (s *scalar) Equal(o curve.Scalar) bool { return s.v.Equal(&o.(*scalar).v) }

func (s *scalar) Set(o curve.Scalar) curve.Scalar {
	s.v.Set(&o.(*scalar).v)
	return s
}

func (s *scalar) Clone() curve.Scalar {
	c := newScalar()
	c.v.Set(&s.v)
	return c
}

func (s *scalar) Zero() curve.Scalar {
	s.v.SetZero()
	return s
}

func (s *scalar) One() curve.Scalar {
	s.v.SetOne()
	return s
}

func (s *scalar) SetInt64(v int64) curve.Scalar {
	s.v.SetInt64(v)
	return s
}

func (s *scalar) Add(a, b curve.Scalar) curve.Scalar {
	s.v.Add(&a.(*scalar).v, &b.(*scalar).v)
	return s
}

func (s *scalar) Sub(a, b curve.Scalar) curve.Scalar {
	s.v.Sub(&a.(*scalar).v, &b.(*scalar).v)
	return s
}

func (s *scalar) Neg(a curve.Scalar) curve.Scalar {
	s.v.Neg(&a.(*scalar).v)
	return s
}

func (s *scalar) Mul(a, b curve.Scalar) curve.Scalar {
	s.v.Mul(&a.(*scalar).v, &b.(*scalar).v)
	return s
}

// Inv panics on a zero scalar, matching the contract in curve.Scalar.
func (s *scalar) Inv(a curve.Scalar) curve.Scalar {
	if a.(*scalar).v.IsZero() {
		panic("gnark: inverse of zero scalar")
	}
	s.v.Inverse(&a.(*scalar).v)
	return s
}

func (s *scalar) Pick(rnd io.Reader) curve.Scalar {
	if rnd == nil {
		if _, err := s.v.SetRandom(); err != nil {
			panic(fmt.Sprintf("gnark: sampling scalar: %v", err))
		}
		return s
	}
	// fr.Element has no rand.Reader-parameterized sampler; draw scalarLen
	// uniform bytes from rnd once and reduce them modulo the field order.
	buf := make([]byte, scalarLen)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		panic(fmt.Sprintf("gnark: sampling scalar: %v", err))
	}
	s.v.SetBytes(buf)
	return s
}

func (s *scalar) SetBytes(buf []byte) curve.Scalar {
	s.v.SetBytes(reverse(buf))
	return s
}

func (s *scalar) MarshalBinary() ([]byte, error) {
	be := s.v.Bytes()
	return reverse(be[:]), nil
}

func (s *scalar) UnmarshalBinary(buf []byte) error {
	if len(buf) != scalarLen {
		return fmt.Errorf("gnark: scalar encoding must be %d bytes, got %d", scalarLen, len(buf))
	}
	var e fr.Element
	if _, err := e.SetBytesCanonical(reverse(buf)); err != nil {
		return fmt.Errorf("gnark: scalar encoding not reduced modulo field order: %w", err)
	}
	s.v = e
	return nil
}

func reverse(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[len(in)-1-i] = b
	}
	return out
}
