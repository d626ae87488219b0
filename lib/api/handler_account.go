package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agoranet/agora/lib/api/httputils"
	"github.com/agoranet/agora/lib/api/resource"
	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/ledger"
)

func (api *NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["address"]

	a, err := ledger.GetAccount(api.storage, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewAccount(a))
}

func (api *NetworkHandlerAPI) GetAccountsHandler(w http.ResponseWriter, r *http.Request) {
	var rs []resource.Resource

	iterFunc, closeFunc := ledger.GetAccountAddressesByCreated(api.storage, false)
	defer closeFunc()
	for {
		address, hasNext := iterFunc()
		if !hasNext {
			break
		}
		a, err := ledger.GetAccount(api.storage, address)
		if err != nil {
			httputils.WriteJSONError(w, err)
			return
		}
		rs = append(rs, resource.NewAccount(a))
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewResourceList(rs, resource.URLAccounts))
}

type TransferRequest struct {
	Source string        `json:"source"`
	Target string        `json:"target"`
	Amount common.Amount `json:"amount"`
}

func (api *NetworkHandlerAPI) PostTransferHandler(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteJSON(w, http.StatusBadRequest, httputils.NewDetailedStatusProblem(http.StatusBadRequest, err.Error()))
		return
	}
	if req.Source == "" || req.Target == "" {
		httputils.WriteJSON(w, http.StatusBadRequest, httputils.NewDetailedStatusProblem(http.StatusBadRequest, "source and target are required"))
		return
	}

	if err := api.ledger.Transfer(req.Source, req.Target, req.Amount, api.nowFunc()); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	a, err := ledger.GetAccount(api.storage, req.Source)
	if err != nil {
		httputils.WriteJSONError(w, errors.StorageCoreError)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewAccount(a))
}
