package ledger

import (
	"fmt"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/common/observer"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/storage"
)

// Account is the balance model of a holder. the storage should support,
//  * find by `Address`:
// 	- key: `Address`: value: `Account`
//  * get list by created order:
//
// models
//  * 'address'
// 	- 'la-address-<Account.Address>': `Account`
//  * 'created'
// 	- 'la-created-<sequential uuid1>': `Account.Address`

const AccountPrefixAddress string = "la-address-"
const AccountPrefixCreated string = "la-created-"

type Account struct {
	Address string        `json:"address"`
	Balance common.Amount `json:"balance"`
}

func NewAccount(address string, balance common.Amount) *Account {
	return &Account{
		Address: address,
		Balance: balance,
	}
}

func (a *Account) String() string {
	return string(common.MustJSONMarshal(a))
}

func (a *Account) Save(st *storage.LevelDBBackend) (err error) {
	key := GetAccountKey(a.Address)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, a)
	} else {
		if err = st.New(key, a); err != nil {
			return
		}
		createdKey := GetAccountCreatedKey(common.GetUniqueIDFromUUID())
		err = st.New(createdKey, a.Address)
	}
	if err == nil {
		event := "saved"
		event += " " + fmt.Sprintf("address-%s", a.Address)
		observer.AccountObserver.Trigger(event, a)
	}

	return
}

func (a *Account) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(a)
	return
}

func (a *Account) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, a)
}

func (a *Account) Deposit(amount common.Amount) error {
	balance, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}
	a.Balance = balance

	return nil
}

func (a *Account) Withdraw(amount common.Amount) error {
	balance, err := a.Balance.Sub(amount)
	if err != nil {
		return err
	}
	a.Balance = balance

	return nil
}

func GetAccountKey(address string) string {
	return fmt.Sprintf("%s%s", AccountPrefixAddress, address)
}

func GetAccountCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", AccountPrefixCreated, created)
}

func ExistsAccount(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetAccountKey(address))
}

func GetAccount(st *storage.LevelDBBackend, address string) (a *Account, err error) {
	a = &Account{}
	if err = st.Get(GetAccountKey(address), a); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.AccountNotFound
		}
		return nil, err
	}

	return
}

// GetAccountAddressesByCreated returns an iterator over account addresses in
// the order the accounts were created.
func GetAccountAddressesByCreated(st *storage.LevelDBBackend, reverse bool) (func() (string, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(AccountPrefixCreated, reverse)

	return func() (string, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", false
			}

			var address string
			common.MustUnmarshalJSON(item.Value, &address)
			return address, true
		},
		closeFunc
}
