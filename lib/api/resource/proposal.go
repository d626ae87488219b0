package resource

import (
	"strconv"
	"strings"
	"time"

	"github.com/nvellon/hal"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/governance"
)

type Proposal struct {
	p   *governance.Proposal
	now time.Time
}

func NewProposal(p *governance.Proposal, now time.Time) *Proposal {
	return &Proposal{
		p:   p,
		now: now,
	}
}

func (p Proposal) GetMap() hal.Entry {
	return hal.Entry{
		"id":            p.p.ID,
		"proposer":      p.p.Proposer,
		"document":      p.p.Document,
		"expires_at":    common.FormatISO8601(p.p.ExpiresAt),
		"votes_for":     p.p.VotesFor.String(),
		"votes_against": p.p.VotesAgainst.String(),
		"vote_count":    len(p.p.Votes),
		"state":         p.p.State(p.now),
	}
}

func (p Proposal) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("votes", hal.NewLink(strings.Replace(URLProposalVotes, "{id}", strconv.FormatUint(p.p.ID, 10), -1)))
	r.AddLink("proposer", hal.NewLink(strings.Replace(URLAccountByID, "{id}", p.p.Proposer, -1)))
	return r
}

func (p Proposal) LinkSelf() string {
	return strings.Replace(URLProposalByID, "{id}", strconv.FormatUint(p.p.ID, 10), -1)
}

func (p Proposal) MarshalJSON() ([]byte, error) {
	r := p.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
