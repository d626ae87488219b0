package ledger

import (
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/storage"
)

const SupplyKey string = "la-supply"

var log logging.Logger = logging.New("module", "ledger")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

// TransferHandler is invoked after a transfer decreased `holder`'s balance,
// while the ledger still holds its lock; the balance mutation and whatever
// the handler does are observed as one atomic step.
type TransferHandler func(holder string, newBalance common.Amount, now time.Time) error

// Ledger holds the fungible balances and the total supply. It never touches
// governance state itself; the voting engine reacts through TransferHandler.
type Ledger struct {
	mtx *sync.Mutex
	st  *storage.LevelDBBackend

	onBalanceDecreased TransferHandler
}

// NewLedger creates a Ledger on st. `mtx` is the critical section shared
// with the voting engine; pass nil to run the ledger standalone.
func NewLedger(st *storage.LevelDBBackend, mtx *sync.Mutex) *Ledger {
	if mtx == nil {
		mtx = &sync.Mutex{}
	}

	return &Ledger{
		mtx: mtx,
		st:  st,
	}
}

func (l *Ledger) SetTransferHandler(handler TransferHandler) {
	l.onBalanceDecreased = handler
}

// IssueSupply seeds the ledger with its full supply in a single account.
// It may run only once per database.
func (l *Ledger) IssueSupply(address string, supply common.Amount) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	exists, err := l.st.Has(SupplyKey)
	if err != nil {
		return err
	}
	if exists {
		return errors.SupplyAlreadyIssued
	}

	account := NewAccount(address, supply)
	if err := account.Save(l.st); err != nil {
		return err
	}
	if err := l.st.New(SupplyKey, supply); err != nil {
		return err
	}

	log.Info("supply issued", "address", address, "supply", supply)

	return nil
}

func (l *Ledger) TotalSupply() (common.Amount, error) {
	var supply common.Amount
	if err := l.st.Get(SupplyKey, &supply); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return common.Amount(0), errors.SupplyNotIssued
		}
		return common.Amount(0), err
	}

	return supply, nil
}

// BalanceOf returns the holder's current balance; unknown addresses simply
// hold zero.
func (l *Ledger) BalanceOf(address string) (common.Amount, error) {
	account, err := GetAccount(l.st, address)
	if err != nil {
		if err == errors.AccountNotFound {
			return common.Amount(0), nil
		}
		return common.Amount(0), err
	}

	return account.Balance, nil
}

// Transfer moves `amount` from source to target, creating the target account
// if needed, then notifies the transfer handler of the source's new balance.
// A transfer never fails because of recorded votes; only tallies shrink.
func (l *Ledger) Transfer(source, target string, amount common.Amount, now time.Time) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if amount == 0 {
		return errors.InvalidAmount
	}
	if source == target {
		return errors.InvalidAmount
	}

	sourceAccount, err := GetAccount(l.st, source)
	if err != nil {
		return err
	}
	if err := sourceAccount.Withdraw(amount); err != nil {
		return err
	}

	targetAccount, err := GetAccount(l.st, target)
	if err != nil {
		if err != errors.AccountNotFound {
			return err
		}
		targetAccount = NewAccount(target, common.Amount(0))
	}
	if err := targetAccount.Deposit(amount); err != nil {
		return err
	}

	if err := sourceAccount.Save(l.st); err != nil {
		return err
	}
	if err := targetAccount.Save(l.st); err != nil {
		return err
	}

	log.Debug(
		"transferred",
		"source", source,
		"target", target,
		"amount", amount,
		"balance", sourceAccount.Balance,
	)

	if l.onBalanceDecreased != nil {
		return l.onBalanceDecreased(source, sourceAccount.Balance, now)
	}

	return nil
}
