package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLAccounts       = APIPrefix + APIVersionV1 + "/accounts"
	URLAccountByID    = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLProposals      = APIPrefix + APIVersionV1 + "/proposals"
	URLProposalByID   = APIPrefix + APIVersionV1 + "/proposals/{id}"
	URLProposalVotes  = APIPrefix + APIVersionV1 + "/proposals/{id}/votes"
	URLTransfers      = APIPrefix + APIVersionV1 + "/transfers"
	URLProposalStream = APIPrefix + APIVersionV1 + "/stream/proposals"
)
