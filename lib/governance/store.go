package governance

import (
	"time"

	"github.com/agoranet/agora/lib/storage"
)

const ProposalSequenceKey string = "gp-sequence"

// ProposalStore is the append-only history of every proposal ever created,
// keyed by a monotonically increasing id. Id 0 is a dummy seeded already
// expired, so it never reads as a genuinely active proposal.
type ProposalStore struct {
	st *storage.LevelDBBackend
}

func NewProposalStore(st *storage.LevelDBBackend) (*ProposalStore, error) {
	s := &ProposalStore{st: st}

	exists, err := st.Has(ProposalSequenceKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := st.New(ProposalSequenceKey, uint64(0)); err != nil {
			return nil, err
		}
		dummy := NewProposal(0, "", "", time.Now())
		if err := dummy.Save(st); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *ProposalStore) LastID() (id uint64, err error) {
	err = s.st.Get(ProposalSequenceKey, &id)
	return
}

// Create appends a new proposal with the next sequence id and
// `expiresAt = now + ttl`. The sequence and the record are written in one
// storage transaction, so ids stay gapless.
func (s *ProposalStore) Create(proposer, document string, now time.Time, ttl time.Duration) (*Proposal, error) {
	lastID, err := s.LastID()
	if err != nil {
		return nil, err
	}

	p := NewProposal(lastID+1, proposer, document, now.Add(ttl))

	ts, err := s.st.OpenTransaction()
	if err != nil {
		return nil, err
	}
	if err := ts.Set(ProposalSequenceKey, p.ID); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := p.Save(ts); err != nil {
		ts.Discard()
		return nil, err
	}
	if err := ts.Commit(); err != nil {
		ts.Discard()
		return nil, err
	}

	return p, nil
}

func (s *ProposalStore) Get(id uint64) (*Proposal, error) {
	return GetProposal(s.st, id)
}

func (s *ProposalStore) Save(p *Proposal) error {
	return p.Save(s.st)
}
