// Package random provides the module's two RNG sources: a process-local
// default stream seeded from OS entropy on first use, and a deterministic
// stream derived from a caller-supplied seed for reproducible tests and
// for blind.Blind's seeded derivation.
//
// Grounded on the teacher's go.dedis.ch/kyber/v4/util/random package,
// whose random.New() is passed directly into share.NewPriPoly in
// share/dkg/pedersen2/dkg.go.
package random

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

func newSHA256() hash.Hash { return sha256.New() }

var (
	defaultOnce   sync.Once
	defaultStream io.Reader
)

// New returns the module's process-local default entropy source: OS
// randomness via crypto/rand, initialized lazily on first call and reused
// for the lifetime of the process. No teardown is required or possible.
func New() io.Reader {
	defaultOnce.Do(func() {
		defaultStream = rand.Reader
	})
	return defaultStream
}

// NewDeterministic derives a reproducible keystream from seed: an
// HKDF-SHA256 expansion over seed keys a ChaCha20 stream cipher running
// over an all-zero plaintext, producing as many pseudorandom bytes as
// callers read. The same seed always yields the same stream, which is the
// property blind.Blind and DKG test fixtures rely on.
func NewDeterministic(seed []byte) io.Reader {
	key := make([]byte, chacha20.KeySize)
	kdf := hkdf.New(newSHA256, seed, nil, []byte("tbls-deterministic-rng"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		panic(fmt.Sprintf("random: deriving deterministic key: %v", err))
	}
	nonce := make([]byte, chacha20.NonceSize)
	cipher, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic(fmt.Sprintf("random: initializing deterministic stream: %v", err))
	}
	return &keystreamReader{cipher: cipher}
}

type keystreamReader struct {
	cipher *chacha20.Cipher
}

func (k *keystreamReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	k.cipher.XORKeyStream(p, p)
	return len(p), nil
}
