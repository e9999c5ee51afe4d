package pedersen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/tbls/v2/curve"
	"go.dedis.ch/tbls/v2/encrypt/ecies"
	"go.dedis.ch/tbls/v2/pairing"
	"go.dedis.ch/tbls/v2/pairing/bls12381/kilic"
	dkg "go.dedis.ch/tbls/v2/share/dkg/pedersen"
	"go.dedis.ch/tbls/v2/sign/bls"
	"go.dedis.ch/tbls/v2/sign/tbls"
	"go.dedis.ch/tbls/v2/util/random"
)

type testNode struct {
	long curve.Scalar
	node dkg.Node
	gen  *dkg.DistKeyGenerator
}

func makeNodes(suite pairing.Suite, n int) []*testNode {
	group := suite.G2()
	nodes := make([]*testNode, n)
	for i := 0; i < n; i++ {
		long := group.Scalar().Pick(random.New())
		pub := group.Point().Mul(long, nil)
		nodes[i] = &testNode{long: long, node: dkg.Node{Index: i + 1, Public: pub}}
	}
	return nodes
}

func nodeList(nodes []*testNode) []dkg.Node {
	list := make([]dkg.Node, len(nodes))
	for i, n := range nodes {
		list[i] = n.node
	}
	return list
}

func newGenerators(t *testing.T, suite pairing.Suite, nodes []*testNode, thr int) {
	list := nodeList(nodes)
	for _, nd := range nodes {
		gen, err := dkg.NewDistKeyGenerator(suite, nd.long, list, thr, "test-session")
		require.NoError(t, err)
		nd.gen = gen
	}
}

// Scenario 4: DKG happy path, n=5, t=3.
func TestDKGHappyPath(t *testing.T) {
	suite := kilic.NewSuite()
	const n, thr = 5, 3
	nodes := makeNodes(suite, n)
	newGenerators(t, suite, nodes, thr)

	bundles := make([]*dkg.Bundle, 0, n)
	for _, nd := range nodes {
		b, err := nd.gen.Deals(random.New())
		require.NoError(t, err)
		bundles = append(bundles, b)
	}

	var allResponses []*dkg.Response
	for _, nd := range nodes {
		resps, err := nd.gen.ProcessDeals(bundles)
		require.NoError(t, err)
		allResponses = append(allResponses, resps...)
	}

	for _, r := range allResponses {
		require.Equal(t, dkg.StatusApproval, r.Status)
	}

	for _, nd := range nodes {
		justs, err := nd.gen.ProcessResponses(allResponses)
		require.NoError(t, err)
		require.Empty(t, justs)
		nd.gen.ProcessJustifications(nil)
	}

	var groupPublic curve.Point
	shares := make([]*dkg.DistKeyShare, n)
	for i, nd := range nodes {
		require.Len(t, nd.gen.QUAL(), n)
		out, err := nd.gen.Finalize()
		require.NoError(t, err)
		if groupPublic == nil {
			groupPublic = out.Public()
		} else {
			require.True(t, groupPublic.Equal(out.Public()))
		}
		shares[i] = out
	}

	message := []byte("hello world")
	pub := shares[0].PubPoly(suite.G2())
	partials := make([]*tbls.PartialSignature, thr)
	for i := 0; i < thr; i++ {
		ps, err := tbls.Sign(suite, shares[i].Share, message)
		require.NoError(t, err)
		require.NoError(t, tbls.Verify(suite, pub, message, ps))
		partials[i] = ps
	}
	sig, err := tbls.Recover(suite, thr, partials)
	require.NoError(t, err)
	require.NoError(t, bls.Verify(suite, groupPublic, message, sig))
}

// Scenario 5: dealer 2 deals an inconsistent share to node 3, fails to
// justify it honestly, and is disqualified; QUAL ends up {1,3,4,5}.
func TestDKGBadDealerDisqualified(t *testing.T) {
	suite := kilic.NewSuite()
	const n, thr = 5, 3
	nodes := makeNodes(suite, n)
	newGenerators(t, suite, nodes, thr)

	bundles := make([]*dkg.Bundle, 0, n)
	for _, nd := range nodes {
		b, err := nd.gen.Deals(random.New())
		require.NoError(t, err)
		bundles = append(bundles, b)
	}

	// Dealer 2's ciphertext to node 3 is swapped for one encrypted under
	// the wrong recipient key, so node 3 cannot decrypt it: it registers
	// as an undecryptable share and triggers a complaint.
	dealer2 := bundles[1]
	require.Equal(t, 2, dealer2.Dealer)
	garbage, err := ecies.Encrypt(suite.G2(), nodes[0].node.Public, []byte("not a real share"), random.New())
	require.NoError(t, err)
	dealer2.Ciphertexts[3] = garbage

	var allResponses []*dkg.Response
	for _, nd := range nodes {
		resps, err := nd.gen.ProcessDeals(bundles)
		require.NoError(t, err)
		allResponses = append(allResponses, resps...)
	}

	var sawComplaint bool
	for _, r := range allResponses {
		if r.Dealer == 2 && r.Reporter == 3 {
			require.Equal(t, dkg.StatusComplaint, r.Status)
			sawComplaint = true
		}
	}
	require.True(t, sawComplaint)

	var allJusts []*dkg.Justification
	for _, nd := range nodes {
		justs, err := nd.gen.ProcessResponses(allResponses)
		require.NoError(t, err)
		allJusts = append(allJusts, justs...)
	}

	// Dealer 2 publishes a bogus justification instead of the true share,
	// standing in for a dealer that cannot produce one consistent with
	// its own commitment.
	for _, j := range allJusts {
		if j.Dealer == 2 {
			j.Value = suite.G2().Scalar().Add(j.Value, suite.G2().Scalar().SetInt64(1))
		}
	}

	for _, nd := range nodes {
		nd.gen.ProcessJustifications(allJusts)
	}

	for _, nd := range nodes {
		qual := nd.gen.QUAL()
		require.Equal(t, []int{1, 3, 4, 5}, qual)
	}
}

// Scenario 6: n=4, t=3, two dealers never publish -> Finalize fails with
// DkgFailedError{ReasonNotEnoughQualified}.
func TestDKGInsufficientQuorum(t *testing.T) {
	suite := kilic.NewSuite()
	const n, thr = 4, 3
	nodes := makeNodes(suite, n)
	newGenerators(t, suite, nodes, thr)

	// Nodes 1 and 2 crash before Phase 1: they never come online to deal.
	online := nodes[2:]

	bundles := make([]*dkg.Bundle, 0, len(online))
	for _, nd := range online {
		b, err := nd.gen.Deals(random.New())
		require.NoError(t, err)
		bundles = append(bundles, b)
	}

	for _, nd := range online {
		_, err := nd.gen.ProcessDeals(bundles)
		require.NoError(t, err)
		_, err = nd.gen.ProcessResponses(nil)
		require.NoError(t, err)
		nd.gen.ProcessJustifications(nil)
	}

	for _, nd := range online {
		qual := nd.gen.QUAL()
		require.Len(t, qual, 2)
		_, err := nd.gen.Finalize()
		require.Error(t, err)
		var failed *dkg.DkgFailedError
		require.ErrorAs(t, err, &failed)
		require.Equal(t, dkg.ReasonNotEnoughQualified, failed.Reason)
	}
}

// runFullRound drives every node in nodes through Deals/ProcessDeals/
// ProcessResponses/ProcessJustifications/Finalize, asserting every step
// succeeds with no complaints, and returns each node's DistKeyShare in
// the same order as nodes.
func runFullRound(t *testing.T, nodes []*testNode) []*dkg.DistKeyShare {
	t.Helper()

	bundles := make([]*dkg.Bundle, 0, len(nodes))
	for _, nd := range nodes {
		b, err := nd.gen.Deals(random.New())
		require.NoError(t, err)
		bundles = append(bundles, b)
	}

	var allResponses []*dkg.Response
	for _, nd := range nodes {
		resps, err := nd.gen.ProcessDeals(bundles)
		require.NoError(t, err)
		allResponses = append(allResponses, resps...)
	}
	for _, r := range allResponses {
		require.Equal(t, dkg.StatusApproval, r.Status)
	}

	for _, nd := range nodes {
		justs, err := nd.gen.ProcessResponses(allResponses)
		require.NoError(t, err)
		require.Empty(t, justs)
		nd.gen.ProcessJustifications(nil)
	}

	shares := make([]*dkg.DistKeyShare, len(nodes))
	for i, nd := range nodes {
		require.Len(t, nd.gen.QUAL(), len(nodes))
		out, err := nd.gen.Finalize()
		require.NoError(t, err)
		shares[i] = out
	}
	return shares
}

// Resharing: an old group of 3 (t=2) redistributes its secret to a new
// group of 4 that adds a node with no old share at all. Per spec, the new
// non-holder's contribution is the zero scalar, so it can deal and be
// qualified without ever having held a piece of the old secret, and
// every node supplies the old group's public polynomial so the new
// non-holder can still check dealers are honestly redistributing.
func TestDKGResharingNewNonHolder(t *testing.T) {
	suite := kilic.NewSuite()
	const oldN, oldT = 3, 2
	oldNodes := makeNodes(suite, oldN)
	newGenerators(t, suite, oldNodes, oldT)
	oldShares := runFullRound(t, oldNodes)
	oldPub := oldShares[0].PubPoly(suite.G2())

	group := suite.G2()
	joiner := &testNode{
		long: group.Scalar().Pick(random.New()),
	}
	joiner.node = dkg.Node{Index: 4, Public: group.Point().Mul(joiner.long, nil)}

	reshareNodes := append(append([]*testNode{}, oldNodes...), joiner)
	list := nodeList(reshareNodes)

	const newT = 2
	const sessionID = "reshare-session"
	for i, nd := range oldNodes {
		gen, err := dkg.NewResharingDistKeyGenerator(suite, nd.long, list, newT, oldShares[i].Share, oldPub, sessionID)
		require.NoError(t, err)
		nd.gen = gen
	}
	joinerGen, err := dkg.NewResharingDistKeyGenerator(suite, joiner.long, list, newT, nil, oldPub, sessionID)
	require.NoError(t, err)
	joiner.gen = joinerGen

	newShares := runFullRound(t, reshareNodes)

	for _, out := range newShares {
		require.Equal(t, sessionID, out.SessionID)
		require.True(t, newShares[0].Public().Equal(out.Public()))
	}

	message := []byte("resharing round output")
	pub := newShares[0].PubPoly(suite.G2())
	partials := make([]*tbls.PartialSignature, newT)
	for i := 0; i < newT; i++ {
		ps, err := tbls.SignSession(suite, sessionID, newShares[i].Share, message)
		require.NoError(t, err)
		require.NoError(t, tbls.VerifySession(suite, sessionID, pub, message, ps))
		partials[i] = ps
	}
	sig, err := tbls.Recover(suite, newT, partials)
	require.NoError(t, err)
	require.NoError(t, bls.VerifyWithDomain(suite, sessionID, newShares[0].Public(), message, sig))
}

// A resharing dealer who claims a nonzero constant term that does not
// match the old group's public polynomial is caught by every node that
// was supplied the old polynomial, even one with no old share of its own.
func TestDKGResharingRejectsForgedOldShare(t *testing.T) {
	suite := kilic.NewSuite()
	const oldN, oldT = 3, 2
	oldNodes := makeNodes(suite, oldN)
	newGenerators(t, suite, oldNodes, oldT)
	oldShares := runFullRound(t, oldNodes)
	oldPub := oldShares[0].PubPoly(suite.G2())

	list := nodeList(oldNodes)
	const newT, sessionID = 2, "reshare-session"
	for i, nd := range oldNodes {
		gen, err := dkg.NewResharingDistKeyGenerator(suite, nd.long, list, newT, oldShares[i].Share, oldPub, sessionID)
		require.NoError(t, err)
		nd.gen = gen
	}

	bundles := make([]*dkg.Bundle, 0, len(oldNodes))
	for _, nd := range oldNodes {
		b, err := nd.gen.Deals(random.New())
		require.NoError(t, err)
		bundles = append(bundles, b)
	}

	// Dealer 1 substitutes a forged, unrelated constant-term commitment
	// instead of its real old share.
	group := suite.G2()
	bundles[0].Commits[0] = group.Point().Mul(group.Scalar().Pick(random.New()), nil)

	var allResponses []*dkg.Response
	for _, nd := range oldNodes {
		resps, err := nd.gen.ProcessDeals(bundles)
		require.NoError(t, err)
		allResponses = append(allResponses, resps...)
	}

	var sawComplaint bool
	for _, r := range allResponses {
		if r.Dealer == 1 {
			require.Equal(t, dkg.StatusComplaint, r.Status)
			sawComplaint = true
		}
	}
	require.True(t, sawComplaint)
}
