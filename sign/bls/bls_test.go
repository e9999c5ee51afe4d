package bls_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/tbls/v2/pairing"
	"go.dedis.ch/tbls/v2/pairing/bls12377/gnark"
	"go.dedis.ch/tbls/v2/pairing/bls12381/kilic"
	"go.dedis.ch/tbls/v2/sign/bls"
)

func suites() map[string]pairing.Suite {
	return map[string]pairing.Suite{
		"C381": kilic.NewSuite(),
		"C377": gnark.NewSuite(),
	}
}

func TestSignVerify(t *testing.T) {
	message := []byte("hello world")
	for name, suite := range suites() {
		suite := suite
		t.Run(name, func(t *testing.T) {
			sk := suite.G2().Scalar().SetInt64(42)
			pk := bls.PublicKey(suite, sk)

			sig, err := bls.Sign(suite, sk, message)
			require.NoError(t, err)
			require.NoError(t, bls.Verify(suite, pk, message, sig))

			otherSk := suite.G2().Scalar().SetInt64(43)
			otherPk := bls.PublicKey(suite, otherSk)
			require.Error(t, bls.Verify(suite, otherPk, message, sig))

			otherSig, err := bls.Sign(suite, sk, []byte("a different message"))
			require.NoError(t, err)
			require.False(t, sig.Equal(otherSig))
			require.Error(t, bls.Verify(suite, pk, message, otherSig))
		})
	}
}

func TestVerifyRejectsIdentity(t *testing.T) {
	for name, suite := range suites() {
		suite := suite
		t.Run(name, func(t *testing.T) {
			sk := suite.G2().Scalar().SetInt64(7)
			pk := bls.PublicKey(suite, sk)
			identity := suite.G1().Point().Null()
			require.Error(t, bls.Verify(suite, pk, []byte("m"), identity))
		})
	}
}
