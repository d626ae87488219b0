package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/agoranet/agora/lib/api/httputils"
	"github.com/agoranet/agora/lib/api/resource"
	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/common/observer"
	"github.com/agoranet/agora/lib/governance"
)

// EventProposalActive marks the snapshot entries a stream subscriber receives
// before live resolution events start flowing.
const EventProposalActive = "proposal-active"

type proposalEventPayload struct {
	Event    string      `json:"event"`
	Proposal interface{} `json:"proposal"`
}

func renderProposalEvent(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}

	event, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("render: unexpected event type")
	}
	if event == "pre" {
		event = EventProposalActive
	}

	p, ok := args[1].(*governance.Proposal)
	if !ok {
		return nil, fmt.Errorf("render: unexpected payload type")
	}

	payload := proposalEventPayload{
		Event:    event,
		Proposal: resource.NewProposal(p, time.Now()).GetMap(),
	}
	return common.JSONMarshalWithoutEscapeHTML(payload)
}

// GetProposalStreamHandler streams proposal resolutions as line-delimited
// JSON chunks. Subscribers first receive the proposals live at subscription
// time, then one message per accepted, declined or discarded proposal.
func (api *NetworkHandlerAPI) GetProposalStreamHandler(w http.ResponseWriter, r *http.Request) {
	now := api.nowFunc()

	es := NewEventStream(w, r, renderProposalEvent, DefaultContentType)

	ids, err := api.engine.ActiveSlots()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	for _, id := range ids {
		if id == 0 {
			continue
		}
		p, err := api.engine.GetProposal(id)
		if err != nil {
			continue
		}
		if p.IsExpired(now) {
			continue
		}
		es.Render(p)
	}

	es.Run(observer.ProposalObserver, governance.EventProposalAll)
}
