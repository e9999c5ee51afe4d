// Package bls implements plain (non-threshold) BLS signatures: sign a
// message with a scalar private key, verify it against the matching public
// key. Signatures live in G1, public keys in G2 (pairing.SignatureGroup /
// pairing.PublicKeyGroup), for both curve backends this module ships.
//
// Grounded on the real kyber sign/bls package's Sign/Verify shape, as used
// by other_examples' vendored sign/tbls.Sign/Verify calls.
package bls

import (
	"errors"
	"fmt"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/pairing"
)

// dstPrefix anchors the domain-separation tag Domain builds. The two
// curve backends never interoperate, so tag collision across curves is
// not a concern in practice, but the suite name is still folded in
// defensively.
const dstPrefix = "TBLS-DKG-BLS-SIG-"

// ErrInvalidSignature is returned by Verify when the pairing check fails
// or the signature is the group identity.
var ErrInvalidSignature = errors.New("bls: invalid signature")

// Domain builds the domain-separation tag hashed alongside a message
// before it is mapped onto the signature group: the suite name, and,
// when sessionID is non-empty, the session id of the DKG round that
// produced the signing key. Two groups that ran distinct DKG sessions
// therefore never produce cross-verifiable signatures even if their
// group keys happened to collide.
func Domain(suite pairing.Suite, sessionID string) []byte {
	tag := dstPrefix + suite.Name()
	if sessionID != "" {
		tag += "-" + sessionID
	}
	return []byte(tag)
}

// hashMessage maps message onto the signature group (G1), domain-separated
// per curve and, when sessionID is non-empty, per DKG session.
func hashMessage(suite pairing.Suite, sessionID string, message []byte) curve.Point {
	return suite.G1().HashToPoint(Domain(suite, sessionID), message)
}

// Sign computes σ = sk · H(m), the hashed message point scaled by the
// private scalar.
func Sign(suite pairing.Suite, sk curve.Scalar, message []byte) (curve.Point, error) {
	return SignWithDomain(suite, "", sk, message)
}

// SignWithDomain is Sign with an explicit session id folded into the
// domain-separation tag, for signatures produced under a key a DKG round
// generated (see share/dkg/pedersen.DistKeyShare.SessionID).
func SignWithDomain(suite pairing.Suite, sessionID string, sk curve.Scalar, message []byte) (curve.Point, error) {
	h := hashMessage(suite, sessionID, message)
	return suite.G1().Point().Mul(sk, h), nil
}

// Verify checks that sig is a valid BLS signature on message under the
// public key pk, via e(sig, g2) == e(H(m), pk). Rejects the identity
// signature and any signature whose pairing check fails.
func Verify(suite pairing.Suite, pk curve.Point, message []byte, sig curve.Point) error {
	return VerifyWithDomain(suite, "", pk, message, sig)
}

// VerifyWithDomain is Verify with an explicit session id folded into the
// domain-separation tag; it must match the sessionID the signature was
// produced with or verification fails.
func VerifyWithDomain(suite pairing.Suite, sessionID string, pk curve.Point, message []byte, sig curve.Point) error {
	if sig.Equal(suite.G1().Point().Null()) {
		return fmt.Errorf("%w: identity point", ErrInvalidSignature)
	}
	h := hashMessage(suite, sessionID, message)
	g2Base := suite.G2().Point().Base()
	if !suite.ValidatePairing(sig, g2Base, h, pk) {
		return ErrInvalidSignature
	}
	return nil
}

// PublicKey derives g2 · sk, the public key corresponding to a secret
// scalar.
func PublicKey(suite pairing.Suite, sk curve.Scalar) curve.Point {
	return suite.G2().Point().Mul(sk, suite.G2().Point().Base())
}
