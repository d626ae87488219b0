package governance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agoranet/agora/lib/common"
)

func TestProposalState(t *testing.T) {
	now := time.Now()
	p := NewProposal(1, "alice", "doc", now.Add(time.Hour))

	require.Equal(t, "open", p.State(now))
	require.Equal(t, "expired", p.State(now.Add(2*time.Hour)))

	p.Resolution = ResolutionAccepted
	require.Equal(t, "accepted", p.State(now))

	p.Resolution = ResolutionDeclined
	require.Equal(t, "declined", p.State(now))
}

func TestProposalHasVoted(t *testing.T) {
	p := NewProposal(1, "alice", "doc", time.Now())

	require.False(t, p.HasVoted("bob"))

	p.Votes["bob"] = VoteRecord{Amount: common.Amount(10), Direction: VoteFor}
	require.True(t, p.HasVoted("bob"))

	// a vote clamped to zero reads as not cast
	p.Votes["bob"] = VoteRecord{Amount: common.Amount(0), Direction: VoteFor}
	require.False(t, p.HasVoted("bob"))
}

func TestProposalSerialize(t *testing.T) {
	now := time.Now()
	p := NewProposal(3, "alice", "doc-fingerprint", now.Add(time.Hour))
	p.Votes["bob"] = VoteRecord{Amount: common.Amount(10), Direction: VoteAgainst}
	p.VotesAgainst = common.Amount(10)

	encoded, err := p.Serialize()
	require.NoError(t, err)

	var decoded Proposal
	require.NoError(t, decoded.Deserialize(encoded))
	require.Equal(t, p.ID, decoded.ID)
	require.Equal(t, p.Document, decoded.Document)
	require.Equal(t, p.Votes["bob"], decoded.Votes["bob"])
	require.True(t, p.ExpiresAt.Equal(decoded.ExpiresAt))
}
