package resource

import (
	"time"

	"github.com/nvellon/hal"

	"github.com/agoranet/agora/lib/governance"
)

// Slots renders the proposal slot table: the raw slot assignments plus the
// proposals still live at rendering time, embedded as records.
type Slots struct {
	ids  []uint64
	live []*governance.Proposal
	now  time.Time
}

func NewSlots(ids []uint64, live []*governance.Proposal, now time.Time) *Slots {
	return &Slots{
		ids:  ids,
		live: live,
		now:  now,
	}
}

func (s Slots) GetMap() hal.Entry {
	return hal.Entry{
		"slots": s.ids,
	}
}

func (s Slots) Resource() *hal.Resource {
	r := hal.NewResource(s, s.LinkSelf())

	var rCollection hal.ResourceCollection
	for _, p := range s.live {
		rCollection = append(rCollection, NewProposal(p, s.now).Resource())
	}
	r.EmbedCollection("records", rCollection)

	return r
}

func (s Slots) LinkSelf() string {
	return URLProposals
}
