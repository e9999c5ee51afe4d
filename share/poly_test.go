package share_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/tbls/v2/pairing/bls12381/kilic"
	"go.dedis.ch/tbls/v2/share"
	"go.dedis.ch/tbls/v2/util/random"
)

func TestRecoverSecretIdempotence(t *testing.T) {
	suite := kilic.NewSuite()
	group := suite.G2()
	const t_ = 5

	priv := share.NewPriPoly(group, t_, nil, random.New())
	shares := make([]*share.PriShare, t_+2)
	for i := range shares {
		shares[i] = priv.Eval(i + 1)
	}

	got, err := share.RecoverSecret(group, shares[:t_], t_)
	require.NoError(t, err)
	require.True(t, got.Equal(priv.Secret()))

	// Any other t_ of the shares should recover the same secret.
	got2, err := share.RecoverSecret(group, shares[2:], t_)
	require.NoError(t, err)
	require.True(t, got2.Equal(priv.Secret()))
}

func TestRecoverCommitIdempotence(t *testing.T) {
	suite := kilic.NewSuite()
	group := suite.G2()
	const t_ = 4

	priv := share.NewPriPoly(group, t_, nil, random.New())
	pub := priv.Commit(group, group.Point().Base())

	shares := make([]*share.PubShare, t_+1)
	for i := range shares {
		shares[i] = pub.Eval(i + 1)
	}

	got, err := share.RecoverCommit(group, shares[:t_], t_)
	require.NoError(t, err)
	require.True(t, got.Equal(pub.Commit()))
}

func TestRecoverSecretTooFew(t *testing.T) {
	suite := kilic.NewSuite()
	group := suite.G2()
	priv := share.NewPriPoly(group, 3, nil, random.New())
	shares := []*share.PriShare{priv.Eval(1), priv.Eval(2)}
	_, err := share.RecoverSecret(group, shares, 3)
	require.ErrorIs(t, err, share.ErrInvalidRecovery)
}

func TestRecoverSecretDuplicateIndex(t *testing.T) {
	suite := kilic.NewSuite()
	group := suite.G2()
	priv := share.NewPriPoly(group, 2, nil, random.New())
	s1 := priv.Eval(1)
	shares := []*share.PriShare{s1, s1}
	_, err := share.RecoverSecret(group, shares, 2)
	require.ErrorIs(t, err, share.ErrInvalidRecovery)
}

func TestCommitMatchesEval(t *testing.T) {
	suite := kilic.NewSuite()
	group := suite.G2()
	priv := share.NewPriPoly(group, 3, nil, random.New())
	pub := priv.Commit(group, group.Point().Base())

	s := priv.Eval(2)
	got := group.Point().Mul(s.V, nil)
	require.True(t, got.Equal(pub.Eval(2).V))
}

func TestPriPolyAddPanicsOnDegreeMismatch(t *testing.T) {
	suite := kilic.NewSuite()
	group := suite.G2()
	p1 := share.NewPriPoly(group, 2, nil, random.New())
	p2 := share.NewPriPoly(group, 3, nil, random.New())
	require.Panics(t, func() {
		new(share.PriPoly).Add(p1, p2)
	})
}
