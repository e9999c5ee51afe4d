// Package threshold wires the lower layers (curve, share, sign/bls,
// sign/tbls, sign/blind) into the flat library entry points spec.md §6
// names: keygen, sign/verify, blind/unblind, a trusted centralized
// threshold keygen for tests and non-DKG deployments, and partial-sign/
// partial-verify/combine.
//
// Grounded on how the teacher's own sign/tbls package is itself a thin
// wiring layer over share and sign/bls; this package is the same kind of
// wiring one level up, the way a caller of kyber composes
// share.NewPriPoly + sign/tbls directly today without any single
// "threshold" entry point of its own.
package threshold

import (
	"fmt"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/key"
	"go.dedis.ch/tbls/v2/pairing"
	"go.dedis.ch/tbls/v2/share"
	"go.dedis.ch/tbls/v2/sign/bls"
	"go.dedis.ch/tbls/v2/sign/blind"
	"go.dedis.ch/tbls/v2/sign/tbls"
	"go.dedis.ch/tbls/v2/util/random"
)

// Keygen implements the keygen(seed) entry point: a deterministic private/
// public keypair derived from a seed of at least 32 bytes.
func Keygen(suite pairing.Suite, seed []byte) (*key.PrivateKey, *key.PublicKey, error) {
	return key.Keygen(suite.G2(), seed)
}

// Sign implements sign(sk, message).
func Sign(suite pairing.Suite, sk *key.PrivateKey, message []byte) (curve.Point, error) {
	return bls.Sign(suite, sk.Scalar(), message)
}

// Verify implements verify(pk, message, sig).
func Verify(suite pairing.Suite, pk *key.PublicKey, message []byte, sig curve.Point) error {
	return bls.Verify(suite, pk.Point, message, sig)
}

// Blind implements blind(message, seed).
func Blind(suite pairing.Suite, message, seed []byte) (curve.Point, *blind.Token, error) {
	return blind.Blind(suite, message, seed)
}

// Unblind implements unblind(sig_on_blinded, token).
func Unblind(suite pairing.Suite, blindedSig curve.Point, token *blind.Token) (curve.Point, error) {
	return blind.Unblind(suite, blindedSig, token)
}

// KeygenResult is the output of ThresholdKeygenTrusted: every party's
// private share, the group's public polynomial, and the group public key.
type KeygenResult struct {
	Shares       []*share.PriShare
	Poly         *share.PubPoly
	GroupPublic  curve.Point
}

// ThresholdKeygenTrusted implements threshold_keygen_trusted(n, t, seed):
// a centralized keygen that samples one private polynomial deterministically
// from seed and evaluates it at every party index, short-circuiting the
// interactive DKG. Intended for tests and for deployments that trust a
// single dealer.
func ThresholdKeygenTrusted(suite pairing.Suite, n, t int, seed []byte) (*KeygenResult, error) {
	if t < 1 || t > n {
		return nil, fmt.Errorf("threshold: threshold %d out of range for n=%d", t, n)
	}
	if len(seed) < 32 {
		return nil, fmt.Errorf("threshold: seed must be at least 32 bytes, got %d", len(seed))
	}
	group := suite.G2()
	stream := random.NewDeterministic(seed)
	priv := share.NewPriPoly(group, t, nil, stream)
	pub := priv.Commit(group, group.Point().Base())

	shares := make([]*share.PriShare, n)
	for i := 0; i < n; i++ {
		shares[i] = priv.Eval(i + 1)
	}
	return &KeygenResult{Shares: shares, Poly: pub, GroupPublic: pub.Commit()}, nil
}

// PartialSign implements partial_sign(share, message).
func PartialSign(suite pairing.Suite, share *share.PriShare, message []byte) (*tbls.PartialSignature, error) {
	return tbls.Sign(suite, share, message)
}

// PartialVerify implements partial_verify(F, message, partial_sig).
func PartialVerify(suite pairing.Suite, poly *share.PubPoly, message []byte, sig *tbls.PartialSignature) error {
	return tbls.Verify(suite, poly, message, sig)
}

// Combine implements combine(t, partials) -> Signature.
func Combine(suite pairing.Suite, t int, sigs []*tbls.PartialSignature) (curve.Point, error) {
	return tbls.Recover(suite, t, sigs)
}
