package tbls_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/tbls/v2/pairing"
	"go.dedis.ch/tbls/v2/pairing/bls12377/gnark"
	"go.dedis.ch/tbls/v2/pairing/bls12381/kilic"
	"go.dedis.ch/tbls/v2/share"
	"go.dedis.ch/tbls/v2/sign/bls"
	"go.dedis.ch/tbls/v2/sign/tbls"
	"go.dedis.ch/tbls/v2/util/random"
)

func suites() map[string]pairing.Suite {
	return map[string]pairing.Suite{
		"C381": kilic.NewSuite(),
		"C377": gnark.NewSuite(),
	}
}

// Scenario 3 from the testable-properties list: 3-of-4 threshold.
func Test3of4Threshold(t *testing.T) {
	const n, thr = 4, 3
	message := []byte("hello world")
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = 0x02
	}

	for name, suite := range suites() {
		suite := suite
		t.Run(name, func(t *testing.T) {
			group := suite.G2()
			stream := random.NewDeterministic(seed)
			priv := share.NewPriPoly(group, thr, nil, stream)
			pub := priv.Commit(group, group.Point().Base())

			shares := make([]*share.PriShare, n)
			for i := 0; i < n; i++ {
				shares[i] = priv.Eval(i + 1)
			}

			partials := make([]*tbls.PartialSignature, n)
			for i, s := range shares {
				ps, err := tbls.Sign(suite, s, message)
				require.NoError(t, err)
				require.NoError(t, tbls.Verify(suite, pub, message, ps))
				partials[i] = ps
			}

			sig, err := tbls.Recover(suite, thr, partials[:thr])
			require.NoError(t, err)
			require.NoError(t, bls.Verify(suite, pub.Commit(), message, sig))

			_, err = tbls.Recover(suite, thr, partials[:thr-1])
			require.ErrorIs(t, err, tbls.ErrNotEnoughShares)
		})
	}
}

func TestDuplicateShareIndex(t *testing.T) {
	for name, suite := range suites() {
		suite := suite
		t.Run(name, func(t *testing.T) {
			group := suite.G2()
			priv := share.NewPriPoly(group, 2, nil, random.New())
			s1 := priv.Eval(1)
			ps1, err := tbls.Sign(suite, s1, []byte("m"))
			require.NoError(t, err)
			ps2, err := tbls.Sign(suite, s1, []byte("m"))
			require.NoError(t, err)
			_, err = tbls.Recover(suite, 2, []*tbls.PartialSignature{ps1, ps2})
			require.ErrorIs(t, err, tbls.ErrDuplicateShareIndex)
		})
	}
}
