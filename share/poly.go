// Package share implements Shamir secret sharing over a curve.Group's
// scalar field, Feldman public-share commitments, and Lagrange
// reconstruction, parameterized by whichever group (scalar field for
// private polynomials, a point group for their public commitments) the
// caller passes in. The algorithm is the teacher's
// share.PriPoly/share.PubPoly pair, generalized from the hardcoded
// two-curve DKG to work over any curve.Group.
package share

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"go.dedis.ch/tbls/v2/curve"
)

// ErrInvalidRecovery is returned by RecoverSecret/RecoverCommit when the
// input shares cannot be used to interpolate: fewer than t of them, or two
// of them sharing an index.
var ErrInvalidRecovery = errors.New("share: invalid recovery input")

// PriShare is a single party's evaluation of a PriPoly: the pair
// (index, f(index)). Index is the party id, starting at 1; index 0 is
// reserved for the shared secret itself.
type PriShare struct {
	I int
	V curve.Scalar
}

// PubShare is a single party's public commitment: the pair (index, F(index))
// for a PubPoly F.
type PubShare struct {
	I int
	V curve.Point
}

// PriPoly is a private polynomial over a scalar field, f(x) = Σ c_j x^j,
// stored as its t ordered coefficients. The shared secret is f(0) = c_0.
type PriPoly struct {
	g    curve.Group
	coef []curve.Scalar
}

// NewPriPoly samples a fresh degree t-1 polynomial with a uniform secret
// term, or with the caller-supplied c0 when it is non-nil (used by the DKG
// resharing mode to keep an existing group secret while changing t or the
// participant set).
func NewPriPoly(g curve.Group, t int, c0 curve.Scalar, rand io.Reader) *PriPoly {
	coef := make([]curve.Scalar, t)
	if c0 == nil {
		coef[0] = g.Scalar().Pick(rand)
	} else {
		coef[0] = c0.Clone()
	}
	for i := 1; i < t; i++ {
		coef[i] = g.Scalar().Pick(rand)
	}
	return &PriPoly{g: g, coef: coef}
}

// CoefficientsPoly builds a PriPoly directly from an ordered coefficient
// list, used when decoding a wire-format PrivatePoly.
func CoefficientsPoly(g curve.Group, coef []curve.Scalar) *PriPoly {
	return &PriPoly{g: g, coef: coef}
}

// Threshold returns the polynomial's degree plus one, i.e. the number of
// shares required to reconstruct it.
func (p *PriPoly) Threshold() int { return len(p.coef) }

// Secret returns the polynomial's constant term, f(0).
func (p *PriPoly) Secret() curve.Scalar { return p.coef[0] }

// Coefficients returns the polynomial's ordered coefficients. The caller
// must not mutate the returned scalars.
func (p *PriPoly) Coefficients() []curve.Scalar { return p.coef }

// Eval evaluates f at the scalar corresponding to party index i (i >= 1)
// using Horner's method from the highest coefficient down, and returns the
// resulting share.
func (p *PriPoly) Eval(i int) *PriShare {
	xi := p.g.Scalar().SetInt64(int64(i))
	v := p.g.Scalar().Zero()
	for j := len(p.coef) - 1; j >= 0; j-- {
		v.Mul(v, xi)
		v.Add(v, p.coef[j])
	}
	return &PriShare{I: i, V: v}
}

// Commit point-wise scalar-multiplies base (or the group's generator, if
// base is nil) by every coefficient, producing the Feldman public
// commitment PubPoly for this polynomial.
func (p *PriPoly) Commit(pointGroup curve.Group, base curve.Point) *PubPoly {
	commits := make([]curve.Point, len(p.coef))
	for i, c := range p.coef {
		commits[i] = pointGroup.Point().Mul(c, base)
	}
	return &PubPoly{g: pointGroup, base: base, commits: commits}
}

// Add sets the receiver to the coefficient-wise sum of p1 and p2. Panics if
// their degrees differ, mirroring the teacher's share.PriPoly.Add.
func (p *PriPoly) Add(p1, p2 *PriPoly) *PriPoly {
	if len(p1.coef) != len(p2.coef) {
		panic(fmt.Sprintf("share: cannot add polynomials of degree %d and %d", len(p1.coef)-1, len(p2.coef)-1))
	}
	coef := make([]curve.Scalar, len(p1.coef))
	for i := range coef {
		coef[i] = p1.g.Scalar().Add(p1.coef[i], p2.coef[i])
	}
	p.g = p1.g
	p.coef = coef
	return p
}

// RecoverSecret reconstructs f(0) from t (or more) distinct-indexed shares
// via Lagrange interpolation. Shares are sorted ascending by index before
// interpolation so that the same input multiset always drives the
// computation through the same intermediate state.
func RecoverSecret(g curve.Group, shares []*PriShare, t int) (curve.Scalar, error) {
	sorted, err := dedupSort(shares, t)
	if err != nil {
		return nil, err
	}
	sorted = sorted[:t]

	acc := g.Scalar().Zero()
	num := g.Scalar()
	den := g.Scalar()
	tmp := g.Scalar()
	for _, s := range sorted {
		xi := g.Scalar().SetInt64(int64(s.I))
		num.One()
		den.One()
		for _, other := range sorted {
			if other.I == s.I {
				continue
			}
			xj := g.Scalar().SetInt64(int64(other.I))
			num.Mul(num, xj)
			den.Mul(den, tmp.Sub(xj, xi))
		}
		lambda := g.Scalar().Mul(num, den.Inv(den))
		acc.Add(acc, tmp.Mul(s.V, lambda))
	}
	return acc, nil
}

// PubPoly is the Feldman public commitment to a PriPoly: the ordered
// sequence F[j] = base * coef[j]. F(0) is the group public key.
type PubPoly struct {
	g       curve.Group
	base    curve.Point
	commits []curve.Point
}

// NewPubPoly builds a PubPoly directly from commitments, used when decoding
// a received Bundle's public polynomial. base may be nil to mean the
// group's default generator.
func NewPubPoly(g curve.Group, base curve.Point, commits []curve.Point) *PubPoly {
	return &PubPoly{g: g, base: base, commits: commits}
}

// Threshold returns the number of commitments, i.e. the polynomial's
// degree plus one.
func (p *PubPoly) Threshold() int { return len(p.commits) }

// Commit returns F(0), the group public key committed to by this
// polynomial.
func (p *PubPoly) Commit() curve.Point { return p.commits[0] }

// Commits returns the polynomial's ordered point commitments. Callers must
// not mutate the returned points.
func (p *PubPoly) Commits() []curve.Point { return p.commits }

// Eval evaluates F at the scalar corresponding to party index i using
// Horner's method, returning the resulting public share.
func (p *PubPoly) Eval(i int) *PubShare {
	xi := p.g.Scalar().SetInt64(int64(i))
	v := p.g.Point().Null()
	for j := len(p.commits) - 1; j >= 0; j-- {
		v.Mul(xi, v)
		v.Add(v, p.commits[j])
	}
	return &PubShare{I: i, V: v}
}

// Add returns the point-wise sum of p and q as a new PubPoly. Returns an
// error if their degrees differ.
func (p *PubPoly) Add(q *PubPoly) (*PubPoly, error) {
	if len(p.commits) != len(q.commits) {
		return nil, fmt.Errorf("share: cannot add public polynomials of degree %d and %d", len(p.commits)-1, len(q.commits)-1)
	}
	commits := make([]curve.Point, len(p.commits))
	for i := range commits {
		commits[i] = p.g.Point().Add(p.commits[i], q.commits[i])
	}
	return &PubPoly{g: p.g, base: p.base, commits: commits}, nil
}

// RecoverCommit reconstructs F(0) from t (or more) distinct-indexed public
// shares via Lagrange interpolation in the point group, sorted ascending by
// index for the same determinism guarantee as RecoverSecret.
func RecoverCommit(g curve.Group, shares []*PubShare, t int) (curve.Point, error) {
	sorted, err := dedupSortPub(shares, t)
	if err != nil {
		return nil, err
	}
	sorted = sorted[:t]

	acc := g.Point().Null()
	for _, s := range sorted {
		xi := scalarField(g).SetInt64(int64(s.I))
		num := scalarField(g).One()
		den := scalarField(g).One()
		for _, other := range sorted {
			if other.I == s.I {
				continue
			}
			xj := scalarField(g).SetInt64(int64(other.I))
			num.Mul(num, xj)
			den.Mul(den, scalarField(g).Sub(xj, xi))
		}
		lambda := scalarField(g).Mul(num, scalarField(g).Inv(den))
		acc.Add(acc, g.Point().Mul(lambda, s.V))
	}
	return acc, nil
}

// scalarField returns a fresh scalar from a point group's paired scalar
// field. Point groups in this module are always constructed together with
// their scalar field (see pairing.Suite), so g.Scalar() here yields the
// same field RecoverSecret would use for the matching PriPoly.
func scalarField(g curve.Group) curve.Scalar { return g.Scalar() }

func dedupSort(shares []*PriShare, t int) ([]*PriShare, error) {
	if len(shares) < t {
		return nil, fmt.Errorf("%w: need %d shares, got %d", ErrInvalidRecovery, t, len(shares))
	}
	seen := make(map[int]bool, len(shares))
	out := make([]*PriShare, 0, len(shares))
	for _, s := range shares {
		if seen[s.I] {
			return nil, fmt.Errorf("%w: duplicate index %d", ErrInvalidRecovery, s.I)
		}
		seen[s.I] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].I < out[j].I })
	return out, nil
}

func dedupSortPub(shares []*PubShare, t int) ([]*PubShare, error) {
	if len(shares) < t {
		return nil, fmt.Errorf("%w: need %d shares, got %d", ErrInvalidRecovery, t, len(shares))
	}
	seen := make(map[int]bool, len(shares))
	out := make([]*PubShare, 0, len(shares))
	for _, s := range shares {
		if seen[s.I] {
			return nil, fmt.Errorf("%w: duplicate index %d", ErrInvalidRecovery, s.I)
		}
		seen[s.I] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].I < out[j].I })
	return out, nil
}
