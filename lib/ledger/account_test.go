package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/storage"
)

func TestSaveNewAccount(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	a := NewAccount("alice", common.Amount(100))
	require.NoError(t, a.Save(st))

	exists, err := ExistsAccount(st, a.Address)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestSaveExistingAccount(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	a := NewAccount("alice", common.Amount(100))
	require.NoError(t, a.Save(st))

	require.NoError(t, a.Deposit(common.Amount(50)))
	require.NoError(t, a.Save(st))

	fetched, err := GetAccount(st, a.Address)
	require.NoError(t, err)
	require.Equal(t, common.Amount(150), fetched.Balance)
}

func TestGetUnknownAccount(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	_, err := GetAccount(st, "nobody")
	require.Equal(t, errors.AccountNotFound, err)
}

func TestAccountWithdrawUnderflow(t *testing.T) {
	a := NewAccount("alice", common.Amount(10))
	require.Equal(t, errors.AccountBalanceUnderZero, a.Withdraw(common.Amount(11)))
	require.Equal(t, common.Amount(10), a.Balance)

	require.NoError(t, a.Withdraw(common.Amount(10)))
	require.Equal(t, common.Amount(0), a.Balance)
}

func TestAccountAddressesByCreatedOrder(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	var createdOrder []string
	for i := 0; i < 10; i++ {
		a := NewAccount(fmt.Sprintf("holder-%d", i), common.Amount(1))
		require.NoError(t, a.Save(st))
		createdOrder = append(createdOrder, a.Address)
	}

	var saved []string
	iterFunc, closeFunc := GetAccountAddressesByCreated(st, false)
	for {
		address, hasNext := iterFunc()
		if !hasNext {
			break
		}
		saved = append(saved, address)
	}
	closeFunc()

	require.Equal(t, createdOrder, saved)
}
