// Package ecies implements the minimal hybrid encryption scheme used only
// inside share/dkg/pedersen to transport Shamir shares to their recipient:
// an ephemeral DH key agreement over the curve's G2 group, HKDF-SHA256 key
// derivation, and ChaCha20-Poly1305 sealing.
//
// Grounded on the teacher's own calls to go.dedis.ch/kyber/v4/encrypt/
// ecies (ecies.Encrypt(suite, pubkey, plaintext, nil) /
// ecies.Decrypt(suite, privkey, ciphertext, nil)); this package keeps that
// call shape while swapping in this module's curve.Group/curve.Point
// contracts.
package ecies

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"go.dedis.ch/tbls/v2/curve"
)

// ErrDecryptFailed is returned by Decrypt on any AEAD authentication
// failure. In share/dkg/pedersen this is the trigger for a Complaint.
var ErrDecryptFailed = errors.New("ecies: decryption failed")

const kdfInfo = "tbls-dkg-ecies-v1"

// Ciphertext is the wire form of an ECIES-encrypted message: the sender's
// ephemeral public key and the sealed box (ciphertext with appended AEAD
// tag).
type Ciphertext struct {
	Ephemeral curve.Point
	Box       []byte
}

// Encrypt seals plaintext for recipientPub: samples an ephemeral scalar e,
// computes E = g·e and the DH secret z = recipientPub·e, derives a
// symmetric key via HKDF-SHA256(z), and seals with ChaCha20-Poly1305 under
// a fixed zero nonce.
//
// The zero nonce is safe here because every call samples a fresh ephemeral
// key, so the (key, nonce) pair this AEAD actually runs under is never
// reused — the same trade spec §4.3 documents and §9 calls out as a future
// hardening target.
func Encrypt(group curve.Group, recipientPub curve.Point, plaintext []byte, rand io.Reader) (*Ciphertext, error) {
	e := group.Scalar().Pick(rand)
	ephemeral := group.Point().Mul(e, nil)
	dh := group.Point().Mul(e, recipientPub)

	key, err := deriveKey(dh)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("ecies: building aead: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	box := aead.Seal(nil, nonce, plaintext, nil)
	return &Ciphertext{Ephemeral: ephemeral, Box: box}, nil
}

// Decrypt opens a Ciphertext produced by Encrypt using the recipient's
// private scalar: z = E·sk (the same DH secret by commutativity), then the
// identical KDF and AEAD open. Any authentication failure is reported as
// ErrDecryptFailed.
func Decrypt(recipientPriv curve.Scalar, ct *Ciphertext) ([]byte, error) {
	dh := ct.Ephemeral.Clone().Mul(recipientPriv, ct.Ephemeral)

	key, err := deriveKey(dh)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("ecies: building aead: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	plaintext, err := aead.Open(nil, nonce, ct.Box, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	return plaintext, nil
}

func deriveKey(dh curve.Point) ([]byte, error) {
	dhBytes, err := dh.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("ecies: encoding DH secret: %w", err)
	}
	kdf := hkdf.New(sha256.New, dhBytes, nil, []byte(kdfInfo))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("ecies: deriving key: %w", err)
	}
	return key, nil
}
