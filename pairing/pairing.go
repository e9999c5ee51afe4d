// Package pairing defines the Suite contract that every curve backend in
// this module implements: the three groups of a Type-3 pairing and the
// pairing check used to verify BLS signatures without computing a GT
// element explicitly.
package pairing

import "go.dedis.ch/tbls/v2/curve"

// SignatureGroup and PublicKeyGroup record this module's canonical
// assignment of the two source groups: signatures live in G1, public keys
// in G2, for both C377 and C381. Spec's open question on pairing direction
// is resolved here and held consistent across sign/bls, sign/tbls and both
// backends' test vectors.
const (
	SignatureGroup = "G1"
	PublicKeyGroup = "G2"
)

// Suite exposes a pairing-friendly curve's two source groups, its target
// group, and a pairing check. Curve-specific packages (pairing/bls12381/
// kilic, pairing/bls12377/gnark) each provide one implementation.
type Suite interface {
	// Name identifies the curve, e.g. "C381" or "C377".
	Name() string
	// G1 returns the first pairing source group (the signature group).
	G1() curve.Group
	// G2 returns the second pairing source group (the public-key group).
	G2() curve.Group
	// GT returns the pairing target group.
	GT() curve.Group
	// Pair computes e(p1, p2) as a GT element.
	Pair(p1, p2 curve.Point) curve.Point
	// ValidatePairing reports whether e(a1,b1) == e(a2,b2), without
	// requiring the caller to materialize either GT element. a1,a2 must
	// be G1 points and b1,b2 must be G2 points.
	ValidatePairing(a1, b1, a2, b2 curve.Point) bool
}
