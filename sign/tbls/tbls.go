// Package tbls implements the threshold half of BLS: signing with a single
// party's key share, verifying a partial signature against the group's
// public polynomial, and combining t partial signatures into a full BLS
// signature via Lagrange interpolation in the exponent.
//
// Grounded almost directly on the real kyber sign/tbls package, preserved
// here in
// other_examples/15f2983a_drand-drand__vendor-go.dedis.ch-kyber-v3-sign-tbls-tbls.go.go.
package tbls

import (
	"errors"
	"fmt"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/pairing"
	"go.dedis.ch/tbls/v2/share"
	"go.dedis.ch/tbls/v2/sign/bls"
)

// ErrNotEnoughShares is returned by Recover when fewer than t partial
// signatures are supplied.
var ErrNotEnoughShares = errors.New("tbls: not enough partial signatures")

// ErrDuplicateShareIndex is returned by Recover when two partial signatures
// carry the same party index.
var ErrDuplicateShareIndex = errors.New("tbls: duplicate share index")

// PartialSignature is a single party's BLS signature share, computed over
// its private key share. Combine is linear in this value, so partial
// signatures on a blinded message combine and unblind exactly like partial
// signatures on a plain one (see sign/blind).
type PartialSignature struct {
	Index int
	Value curve.Point
}

// Sign computes a partial signature Si = xi · H(m) using a single party's
// private key share.
func Sign(suite pairing.Suite, share *share.PriShare, message []byte) (*PartialSignature, error) {
	return SignSession(suite, "", share, message)
}

// SignSession is Sign with a DKG session id folded into the signature's
// domain-separation tag (see share/dkg/pedersen.DistKeyShare.SessionID).
// Every partial signature combined into one Recover call must have been
// produced with the same sessionID, since Verify/VerifySession on the
// combined signature checks it too.
func SignSession(suite pairing.Suite, sessionID string, share *share.PriShare, message []byte) (*PartialSignature, error) {
	sig, err := bls.SignWithDomain(suite, sessionID, share.V, message)
	if err != nil {
		return nil, err
	}
	return &PartialSignature{Index: share.I, Value: sig}, nil
}

// Verify checks a partial signature against the group's public polynomial:
// F(i) is the verifying key for party i, and standard BLS verify applies.
func Verify(suite pairing.Suite, public *share.PubPoly, message []byte, sig *PartialSignature) error {
	return VerifySession(suite, "", public, message, sig)
}

// VerifySession is Verify with a DKG session id folded into the
// domain-separation tag.
func VerifySession(suite pairing.Suite, sessionID string, public *share.PubPoly, message []byte, sig *PartialSignature) error {
	verifyKey := public.Eval(sig.Index).V
	return bls.VerifyWithDomain(suite, sessionID, verifyKey, message, sig.Value)
}

// Recover combines exactly t partial signatures into a full BLS signature
// via Lagrange interpolation at 0. It does not verify its inputs — callers
// in adversarial settings should call Verify on each partial signature
// first; an unverified malicious share silently produces an invalid
// aggregate rather than an error.
func Recover(suite pairing.Suite, t int, sigs []*PartialSignature) (curve.Point, error) {
	if len(sigs) < t {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrNotEnoughShares, t, len(sigs))
	}
	pubShares := make([]*share.PubShare, 0, len(sigs))
	seen := make(map[int]bool, len(sigs))
	for _, s := range sigs {
		if seen[s.Index] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateShareIndex, s.Index)
		}
		seen[s.Index] = true
		pubShares = append(pubShares, &share.PubShare{I: s.Index, V: s.Value})
	}
	return share.RecoverCommit(suite.G1(), pubShares, t)
}
