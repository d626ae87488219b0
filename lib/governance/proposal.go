package governance

import (
	"fmt"
	"time"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/storage"
)

// Proposal is the persisted record of a governance proposal. Records are
// append-only: a proposal is never deleted, it only leaves the active slot
// array once expired or resolved.
//
// models
//  * 'id'
// 	- 'gp-id-<zero-padded id>': `Proposal`

const ProposalPrefixID string = "gp-id-"

type Direction string

const (
	VoteFor     Direction = "FOR"
	VoteAgainst Direction = "AGAINST"
)

type Resolution string

const (
	ResolutionAccepted Resolution = "ACCEPTED"
	ResolutionDeclined Resolution = "DECLINED"
)

// VoteRecord is a holder's single vote on one proposal. Amount is bounded by
// the holder's balance at vote time and only ever clamped down afterwards;
// Direction never changes once set.
type VoteRecord struct {
	Amount    common.Amount `json:"amount"`
	Direction Direction     `json:"direction"`
}

type Proposal struct {
	ID           uint64                `json:"id"`
	Proposer     string                `json:"proposer"`
	Document     string                `json:"document"`
	ExpiresAt    time.Time             `json:"expires_at"`
	VotesFor     common.Amount         `json:"votes_for"`
	VotesAgainst common.Amount         `json:"votes_against"`
	Votes        map[string]VoteRecord `json:"votes"`
	Resolution   Resolution            `json:"resolution,omitempty"`
}

func NewProposal(id uint64, proposer, document string, expiresAt time.Time) *Proposal {
	return &Proposal{
		ID:        id,
		Proposer:  proposer,
		Document:  document,
		ExpiresAt: expiresAt,
		Votes:     map[string]VoteRecord{},
	}
}

func (p *Proposal) String() string {
	return string(common.MustJSONMarshal(p))
}

// IsExpired reports whether the proposal can no longer accept votes; a
// resolved proposal has its ExpiresAt forced to the resolution time, so it
// reads as expired too.
func (p *Proposal) IsExpired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}

func (p *Proposal) IsResolved() bool {
	return p.Resolution != ""
}

// HasVoted reports whether the holder has a live vote on this proposal. A
// vote clamped to exactly zero no longer counts as cast, so such a holder
// may vote again.
func (p *Proposal) HasVoted(holder string) bool {
	return p.Votes[holder].Amount > 0
}

// State describes the proposal for external consumers.
func (p *Proposal) State(now time.Time) string {
	switch {
	case p.Resolution == ResolutionAccepted:
		return "accepted"
	case p.Resolution == ResolutionDeclined:
		return "declined"
	case p.IsExpired(now):
		return "expired"
	default:
		return "open"
	}
}

func (p *Proposal) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(p)
	return
}

func (p *Proposal) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, p)
}

func (p *Proposal) Save(st *storage.LevelDBBackend) (err error) {
	key := GetProposalKey(p.ID)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, p)
	} else {
		err = st.New(key, p)
	}

	return
}

func GetProposalKey(id uint64) string {
	return fmt.Sprintf("%s%020d", ProposalPrefixID, id)
}

func ExistsProposal(st *storage.LevelDBBackend, id uint64) (bool, error) {
	return st.Has(GetProposalKey(id))
}

func GetProposal(st *storage.LevelDBBackend, id uint64) (p *Proposal, err error) {
	p = &Proposal{}
	if err = st.Get(GetProposalKey(id), p); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.NotFound
		}
		return nil, err
	}

	return
}
