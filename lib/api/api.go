package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"

	"github.com/agoranet/agora/lib/api/resource"
	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/governance"
	"github.com/agoranet/agora/lib/ledger"
	"github.com/agoranet/agora/lib/storage"
)

var log logging.Logger = logging.New("module", "api")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// API Endpoint patterns
const (
	GetAccountsHandlerPattern       = "/accounts"
	GetAccountHandlerPattern        = "/accounts/{address}"
	GetProposalsHandlerPattern      = "/proposals"
	GetProposalHandlerPattern       = "/proposals/{id}"
	PostProposalHandlerPattern      = "/proposals"
	PostVoteHandlerPattern          = "/proposals/{id}/votes"
	PostTransferHandlerPattern      = "/transfers"
	GetProposalStreamHandlerPattern = "/stream/proposals"
)

// NetworkHandlerAPI is the public HTTP surface: read handlers go straight to
// storage, mutating handlers run through the ledger and the voting engine.
type NetworkHandlerAPI struct {
	ledger  *ledger.Ledger
	engine  *governance.VotingEngine
	storage *storage.LevelDBBackend
	nowFunc func() time.Time
}

func NewNetworkHandlerAPI(lg *ledger.Ledger, engine *governance.VotingEngine, st *storage.LevelDBBackend) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		ledger:  lg,
		engine:  engine,
		storage: st,
		nowFunc: time.Now,
	}
}

// Handler builds the versioned router with the rate limit and recover
// middlewares applied.
func (api *NetworkHandlerAPI) Handler(config common.Config) http.Handler {
	router := mux.NewRouter()
	router.Use(RecoverMiddleware(log))
	router.Use(RateLimitMiddleware(log, config.RateLimitRuleAPI))

	s := router.PathPrefix(resource.APIPrefix + resource.APIVersionV1).Subrouter()

	s.HandleFunc(GetAccountsHandlerPattern, api.GetAccountsHandler).Methods("GET")
	s.HandleFunc(GetAccountHandlerPattern, api.GetAccountHandler).Methods("GET")
	s.HandleFunc(GetProposalStreamHandlerPattern, api.GetProposalStreamHandler).Methods("GET")
	s.HandleFunc(GetProposalsHandlerPattern, api.GetProposalsHandler).Methods("GET")
	s.HandleFunc(GetProposalHandlerPattern, api.GetProposalHandler).Methods("GET")
	s.HandleFunc(PostProposalHandlerPattern, api.PostProposalHandler).Methods("POST")
	s.HandleFunc(PostVoteHandlerPattern, api.PostVoteHandler).Methods("POST")
	s.HandleFunc(PostTransferHandlerPattern, api.PostTransferHandler).Methods("POST")

	return router
}
