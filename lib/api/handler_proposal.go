package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/agoranet/agora/lib/api/httputils"
	"github.com/agoranet/agora/lib/api/resource"
	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/governance"
)

func (api *NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		httputils.WriteJSONError(w, errors.NotFound)
		return
	}

	p, err := api.engine.GetProposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewProposal(p, api.nowFunc()))
}

// GetProposalsHandler renders the slot table with the proposals still live
// embedded; slot entries holding an expired or sentinel proposal show up in
// the raw ids only.
func (api *NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
	now := api.nowFunc()

	ids, err := api.engine.ActiveSlots()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var live []*governance.Proposal
	for _, id := range ids {
		if id == 0 {
			continue
		}
		p, err := api.engine.GetProposal(id)
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		if p.IsExpired(now) {
			continue
		}
		live = append(live, p)
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewSlots(ids, live, now))
}

type ProposalRequest struct {
	Proposer string `json:"proposer"`
	Document string `json:"document"`
}

// PostProposalHandler submits a proposal. The document body is stored as a
// fingerprint, the way the chain stores referenda documents, so the payload
// size never leaks into the slot records.
func (api *NetworkHandlerAPI) PostProposalHandler(w http.ResponseWriter, r *http.Request) {
	var req ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteJSON(w, http.StatusBadRequest, httputils.NewDetailedStatusProblem(http.StatusBadRequest, err.Error()))
		return
	}
	if req.Proposer == "" || req.Document == "" {
		httputils.WriteJSON(w, http.StatusBadRequest, httputils.NewDetailedStatusProblem(http.StatusBadRequest, "proposer and document are required"))
		return
	}

	document := common.MakeFingerprint([]byte(req.Document))
	p, err := api.engine.CreateProposal(req.Proposer, document, api.nowFunc())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusCreated, resource.NewProposal(p, api.nowFunc()))
}

type VoteRequest struct {
	Voter     string        `json:"voter"`
	Direction string        `json:"direction"`
	Amount    common.Amount `json:"amount"`
}

func (api *NetworkHandlerAPI) PostVoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		httputils.WriteJSONError(w, errors.NotFound)
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteJSON(w, http.StatusBadRequest, httputils.NewDetailedStatusProblem(http.StatusBadRequest, err.Error()))
		return
	}

	var direction governance.Direction
	switch strings.ToUpper(req.Direction) {
	case string(governance.VoteFor):
		direction = governance.VoteFor
	case string(governance.VoteAgainst):
		direction = governance.VoteAgainst
	default:
		httputils.WriteJSONError(w, errors.InvalidDirection)
		return
	}

	if err := api.engine.Vote(req.Voter, id, direction, req.Amount, api.nowFunc()); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	p, err := api.engine.GetProposal(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewProposal(p, api.nowFunc()))
}
