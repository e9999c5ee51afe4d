package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/pairing/bls12381/kilic"
	"go.dedis.ch/tbls/v2/util/codec"
	"go.dedis.ch/tbls/v2/util/random"
)

func TestScalarShareRoundTrip(t *testing.T) {
	group := kilic.NewSuite().G2()
	v := group.Scalar().Pick(random.New())

	buf, err := codec.EncodeScalarShare(7, v)
	require.NoError(t, err)

	index, got, err := codec.DecodeScalarShare(group.Scalar(), buf)
	require.NoError(t, err)
	require.Equal(t, 7, index)
	require.True(t, got.Equal(v))
}

func TestDecodeScalarShareRejectsShortBuffer(t *testing.T) {
	group := kilic.NewSuite().G2()
	_, _, err := codec.DecodeScalarShare(group.Scalar(), []byte{1, 2})
	require.Error(t, err)
}

func buildCommits(group curve.Group, degree int) []curve.Point {
	commits := make([]curve.Point, degree)
	for i := range commits {
		s := group.Scalar().Pick(random.New())
		commits[i] = group.Point().Mul(s, nil)
	}
	return commits
}

func TestPublicPolyRoundTrip(t *testing.T) {
	group := kilic.NewSuite().G2()
	commits := buildCommits(group, 4)

	buf, err := codec.EncodePublicPoly(commits)
	require.NoError(t, err)

	got, err := codec.DecodePublicPoly(group.Point(), group.PointLen(), buf)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i := range commits {
		require.True(t, commits[i].Equal(got[i]))
	}
}

func TestPublicPolyRoundTripEmpty(t *testing.T) {
	group := kilic.NewSuite().G2()

	buf, err := codec.EncodePublicPoly(nil)
	require.NoError(t, err)

	got, err := codec.DecodePublicPoly(group.Point(), group.PointLen(), buf)
	require.NoError(t, err)
	require.Len(t, got, 0)
}
