// Package curve defines the group-algebra contracts shared by every
// pairing-friendly curve backend in this module: scalars in the prime
// field, points in an additive group, and the group itself as a factory
// for zero/identity values.
//
// Concrete backends (pairing/bls12381/kilic, pairing/bls12377/gnark) each
// implement Scalar, Point and Group over their own field/curve libraries.
// Everything above this package — share, sign/bls, sign/tbls, sign/blind,
// share/dkg/pedersen — is written only against these interfaces so the two
// curves share a single implementation of the higher protocol layers.
package curve

import "io"

// Scalar is an element of a curve's prime scalar field. The C381 backend
// (pairing/bls12381/kilic) computes Add, Mul and Inv with math/big, which
// is not constant-time with respect to the scalar values involved.
type Scalar interface {
	// Equal reports whether two scalars hold the same field element.
	Equal(Scalar) bool
	// Set copies the value of s into the receiver and returns it.
	Set(s Scalar) Scalar
	// Clone returns a fresh copy of the receiver.
	Clone() Scalar
	// Zero sets the receiver to the additive identity.
	Zero() Scalar
	// One sets the receiver to the multiplicative identity.
	One() Scalar
	// SetInt64 sets the receiver to the field element represented by v.
	SetInt64(v int64) Scalar
	// Add sets the receiver to a+b and returns it.
	Add(a, b Scalar) Scalar
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Scalar) Scalar
	// Neg sets the receiver to -a and returns it.
	Neg(a Scalar) Scalar
	// Mul sets the receiver to a*b and returns it.
	Mul(a, b Scalar) Scalar
	// Inv sets the receiver to a^-1 and returns it. Panics if a is zero;
	// callers that accept untrusted zero scalars must check first.
	Inv(a Scalar) Scalar
	// Pick sets the receiver to a uniform random element read from rand.
	Pick(rand io.Reader) Scalar
	// SetBytes interprets buf as a canonical little-endian encoding.
	SetBytes(buf []byte) Scalar
	// MarshalBinary returns the canonical fixed-length little-endian
	// encoding of the scalar.
	MarshalBinary() ([]byte, error)
	// UnmarshalBinary decodes a canonical encoding produced by
	// MarshalBinary, rejecting any value not reduced modulo the field
	// order.
	UnmarshalBinary([]byte) error
}

// Point is an element of one of the two pairing groups (G1 or G2).
type Point interface {
	// Equal reports whether two points represent the same group element.
	Equal(Point) bool
	// Null sets the receiver to the group identity and returns it.
	Null() Point
	// Base sets the receiver to the group's canonical generator.
	Base() Point
	// Set copies the value of p into the receiver and returns it.
	Set(p Point) Point
	// Clone returns a fresh copy of the receiver.
	Clone() Point
	// Add sets the receiver to a+b and returns it.
	Add(a, b Point) Point
	// Sub sets the receiver to a-b and returns it.
	Sub(a, b Point) Point
	// Neg sets the receiver to -a and returns it.
	Neg(a Point) Point
	// Mul sets the receiver to s*p and returns it. If p is nil, the
	// group generator is used.
	Mul(s Scalar, p Point) Point
	// MarshalBinary returns the canonical compressed encoding.
	MarshalBinary() ([]byte, error)
	// UnmarshalBinary decodes a canonical compressed encoding, rejecting
	// any input not on the curve or not in canonical form.
	UnmarshalBinary([]byte) error
}

// Group is a factory for the zero-valued Scalar/Point belonging to one of
// a Suite's three groups (G1, G2 or GT), and a hasher that maps arbitrary
// byte strings onto the group uniformly.
type Group interface {
	// String names the group, e.g. "bls12-381.G1".
	String() string
	// ScalarLen returns the byte length of a canonical scalar encoding.
	ScalarLen() int
	// Scalar returns a new scalar set to zero.
	Scalar() Scalar
	// PointLen returns the byte length of a canonical point encoding.
	PointLen() int
	// Point returns a new point set to the identity.
	Point() Point
	// HashToPoint deterministically maps (domain, message) onto a group
	// element. The same (domain, message) pair always yields the same
	// point, and the map is never undefined for any byte input.
	HashToPoint(domain, message []byte) Point
}
