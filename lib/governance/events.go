package governance

import (
	"github.com/agoranet/agora/lib/common/observer"
)

// Resolution events observable by external subscribers. Each proposal fires
// at most one of accepted / declined / discarded, never more than one.
const (
	EventProposalAccepted  = "proposal-accepted"
	EventProposalDeclined  = "proposal-declined"
	EventProposalDiscarded = "proposal-discarded"

	// EventProposalAll fires for every resolution, with the specific event
	// name as the first argument; the API event stream listens here.
	EventProposalAll = "proposal-all"
)

// TriggerProposalEvent forwards a resolution to the observer hub. Engine
// mutations only describe what happened; this adapter is the sole place the
// governance core touches the event sink.
func TriggerProposalEvent(event string, p *Proposal) {
	observer.ProposalObserver.Trigger(event, p)
	observer.ProposalObserver.Trigger(EventProposalAll, event, p)
}
