// Package key holds the module's keypair container: a private scalar
// wrapped so it is zeroized the moment the caller is done with it, and
// the public point derived from it.
//
// Grounded on drand's common/key/keys.go (key.Pair / key.Identity),
// trimmed of everything that package carries for network identity (TLS,
// scheme, address, protobuf wire conversion) since this module has no
// transport layer of its own — only the keypair shape and the
// self-sign/derive pattern survive.
package key

import (
	"fmt"
	"io"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/util/random"
)

// PrivateKey wraps a sensitive scalar. Zero, once called, overwrites the
// scalar's encoding in place so the secret does not linger in memory
// after the caller is done with it; a PrivateKey must not be used again
// after Zero.
type PrivateKey struct {
	scalar curve.Scalar
}

// Scalar returns the wrapped secret scalar.
func (k *PrivateKey) Scalar() curve.Scalar {
	return k.scalar
}

// Zero overwrites the wrapped scalar with the field's additive identity,
// the zeroize-on-drop behavior the data model requires of every secret
// container.
func (k *PrivateKey) Zero() {
	if k.scalar != nil {
		k.scalar.Zero()
	}
}

// PublicKey is a single compressed point in the public-key group.
type PublicKey struct {
	Point curve.Point
}

// NewKeyPair samples a uniform private scalar from rand and derives the
// matching public key as group.generator · private.
func NewKeyPair(group curve.Group, rand io.Reader) (*PrivateKey, *PublicKey) {
	sk := group.Scalar().Pick(rand)
	pk := group.Point().Mul(sk, nil)
	return &PrivateKey{scalar: sk}, &PublicKey{Point: pk}
}

// minSeedLen matches sign/blind's floor: seed must carry at least 32
// bytes of real entropy before it is trusted to derive a key
// deterministically.
const minSeedLen = 32

// Keygen implements the library entry point keygen(seed): it derives a
// deterministic keypair from seed via the same HKDF+ChaCha20 stream
// sign/blind uses, so repeated calls with the same seed yield the same
// keypair.
func Keygen(group curve.Group, seed []byte) (*PrivateKey, *PublicKey, error) {
	if len(seed) < minSeedLen {
		return nil, nil, fmt.Errorf("key: seed must be at least %d bytes, got %d", minSeedLen, len(seed))
	}
	stream := random.NewDeterministic(seed)
	sk, pk := NewKeyPair(group, stream)
	return sk, pk, nil
}
