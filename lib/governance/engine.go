package governance

import (
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/storage"
)

var log logging.Logger = logging.New("module", "governance")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// BalanceProvider is the capability the engine consumes from the balance
// ledger; the engine only ever reads balances, it never mutates them.
type BalanceProvider interface {
	BalanceOf(address string) (common.Amount, error)
	TotalSupply() (common.Amount, error)
}

// VotingEngine is the top-level governance API: create proposals into
// bounded slots, tally balance-weighted votes and clamp recorded weight down
// whenever a voter's balance shrinks. Every mutating entry point runs inside
// one critical section; all failure paths leave state untouched.
type VotingEngine struct {
	mtx *sync.Mutex

	balances BalanceProvider
	store    *ProposalStore
	slots    *SlotAllocator
	ttl      time.Duration

	emitFunc func(event string, p *Proposal)
}

// NewVotingEngine builds the engine on st, seeding the proposal store and
// the slot array on first use. `mtx` is the critical section shared with the
// balance ledger; pass nil to let the engine own its lock.
func NewVotingEngine(st *storage.LevelDBBackend, balances BalanceProvider, config common.Config, mtx *sync.Mutex) (*VotingEngine, error) {
	store, err := NewProposalStore(st)
	if err != nil {
		return nil, err
	}
	slots, err := NewSlotAllocator(st, config.ProposalsCapacity)
	if err != nil {
		return nil, err
	}

	if mtx == nil {
		mtx = &sync.Mutex{}
	}

	return &VotingEngine{
		mtx:      mtx,
		balances: balances,
		store:    store,
		slots:    slots,
		ttl:      config.ProposalTTL,
		emitFunc: TriggerProposalEvent,
	}, nil
}

// SetEmitFunc replaces the event boundary adapter; mostly useful in tests.
func (e *VotingEngine) SetEmitFunc(fn func(event string, p *Proposal)) {
	e.emitFunc = fn
}

func (e *VotingEngine) requireHolder(address string) error {
	balance, err := e.balances.BalanceOf(address)
	if err != nil {
		return err
	}
	if balance == 0 {
		return errors.Unauthorized
	}

	return nil
}

// CreateProposal opens a new proposal with `expiresAt = now + TTL`, evicting
// the first expired or resolved slot. An unresolved evicted proposal is
// reported as discarded; the seed sentinel never is.
func (e *VotingEngine) CreateProposal(proposer, document string, now time.Time) (*Proposal, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.requireHolder(proposer); err != nil {
		return nil, err
	}

	index, evicted, err := e.slots.FindFreeSlot(e.store, now)
	if err != nil {
		return nil, err
	}

	p, err := e.store.Create(proposer, document, now, e.ttl)
	if err != nil {
		return nil, err
	}
	if err := e.slots.Set(index, p.ID); err != nil {
		return nil, err
	}

	if evicted != 0 {
		old, err := e.store.Get(evicted)
		if err != nil {
			return nil, err
		}
		if !old.IsResolved() {
			e.emitFunc(EventProposalDiscarded, old)
			log.Info("proposal discarded", "proposal", evicted, "slot", index)
		}
	}

	log.Info("proposal created", "proposal", p.ID, "proposer", proposer, "slot", index)

	return p, nil
}

// Vote records `amount` of the voter's weight on the proposal and resolves
// it once either tally strictly exceeds half of the live total supply.
func (e *VotingEngine) Vote(voter string, id uint64, direction Direction, amount common.Amount, now time.Time) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.requireHolder(voter); err != nil {
		return err
	}
	if amount == 0 {
		return errors.InvalidAmount
	}

	balance, err := e.balances.BalanceOf(voter)
	if err != nil {
		return err
	}
	if amount > balance {
		return errors.InsufficientBalance
	}

	index, err := e.slots.Contains(id)
	if err != nil {
		return err
	}
	if index < 0 {
		return errors.NotFound
	}

	p, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if p.IsExpired(now) {
		return errors.ProposalExpired
	}
	if p.HasVoted(voter) {
		return errors.AlreadyVoted
	}

	p.Votes[voter] = VoteRecord{Amount: amount, Direction: direction}

	var tally common.Amount
	switch direction {
	case VoteFor:
		if p.VotesFor, err = p.VotesFor.Add(amount); err != nil {
			return err
		}
		tally = p.VotesFor
	case VoteAgainst:
		if p.VotesAgainst, err = p.VotesAgainst.Add(amount); err != nil {
			return err
		}
		tally = p.VotesAgainst
	default:
		return errors.InvalidDirection
	}

	supply, err := e.balances.TotalSupply()
	if err != nil {
		return err
	}

	// strict majority: a tie at exactly half does not resolve
	var event string
	if tally > supply/2 {
		p.ExpiresAt = now
		if direction == VoteFor {
			p.Resolution = ResolutionAccepted
			event = EventProposalAccepted
		} else {
			p.Resolution = ResolutionDeclined
			event = EventProposalDeclined
		}
	}

	if err := e.store.Save(p); err != nil {
		return err
	}

	log.Info("vote cast", "proposal", id, "voter", voter, "direction", direction, "amount", amount)

	if event != "" {
		e.emitFunc(event, p)
		log.Info("proposal resolved", "proposal", id, "resolution", p.Resolution)
	}

	return nil
}

func (e *VotingEngine) VoteFor(voter string, id uint64, amount common.Amount, now time.Time) error {
	return e.Vote(voter, id, VoteFor, amount, now)
}

func (e *VotingEngine) VoteAgainst(voter string, id uint64, amount common.Amount, now time.Time) error {
	return e.Vote(voter, id, VoteAgainst, amount, now)
}

// BalanceChanged clamps the holder's recorded votes on every live proposal
// down to the new balance, shrinking the matching tally by the difference.
// Weight never clamps up; regaining balance does not restore a vote.
//
// The balance ledger invokes this from its transfer hook while holding the
// shared lock, so it must not lock again.
func (e *VotingEngine) BalanceChanged(holder string, newBalance common.Amount, now time.Time) error {
	slots, err := e.slots.Slots()
	if err != nil {
		return err
	}

	for _, id := range slots {
		if id == 0 {
			continue
		}

		p, err := e.store.Get(id)
		if err != nil {
			return err
		}
		if p.IsExpired(now) {
			continue
		}

		record, ok := p.Votes[holder]
		if !ok || record.Amount <= newBalance {
			continue
		}

		clamped := record.Amount - newBalance
		switch record.Direction {
		case VoteFor:
			if p.VotesFor, err = p.VotesFor.Sub(clamped); err != nil {
				return err
			}
		case VoteAgainst:
			if p.VotesAgainst, err = p.VotesAgainst.Sub(clamped); err != nil {
				return err
			}
		}

		record.Amount = newBalance
		p.Votes[holder] = record

		if err := e.store.Save(p); err != nil {
			return err
		}

		log.Debug("vote weight clamped", "proposal", id, "holder", holder, "amount", newBalance, "clamped", clamped)
	}

	return nil
}

func (e *VotingEngine) GetProposal(id uint64) (*Proposal, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.store.Get(id)
}

func (e *VotingEngine) ActiveSlots() ([]uint64, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.slots.Slots()
}
