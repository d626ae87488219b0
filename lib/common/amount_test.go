package common

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agoranet/agora/lib/errors"
)

var (
	maximumBalance    = uint64(MaximumBalance)
	maximumBalanceStr = strconv.FormatUint(maximumBalance, 10)
)

func TestAmount_Invariant(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("exceeds max allowable amount value.")
		}
	}()

	amount := Amount(maximumBalance + 1)
	amount.Invariant()
}

func TestAmount_AddOverflow(t *testing.T) {
	_, err := MaximumBalance.Add(Amount(1))
	require.Equal(t, errors.MaximumBalanceReached, err)

	v, err := Amount(100).Add(Amount(50))
	require.NoError(t, err)
	require.Equal(t, Amount(150), v)
}

func TestAmount_SubUnderflow(t *testing.T) {
	_, err := Amount(10).Sub(Amount(11))
	require.Equal(t, errors.AccountBalanceUnderZero, err)

	v, err := Amount(10).Sub(Amount(10))
	require.NoError(t, err)
	require.Equal(t, Amount(0), v)
}

func TestAmount_Uint64OutOfRange(t *testing.T) {
	amount, err := AmountFromString(maximumBalanceStr)
	require.NoError(t, err)
	require.Equal(t, maximumBalanceStr, amount.String())

	_, err = AmountFromString(strconv.FormatUint(maximumBalance+1, 10))
	require.Error(t, err)
}

func TestAmount_JSON(t *testing.T) {
	b, err := json.Marshal(Amount(25000000))
	require.NoError(t, err)
	require.Equal(t, `"25000000"`, string(b))

	var a Amount
	require.NoError(t, json.Unmarshal(b, &a))
	require.Equal(t, Amount(25000000), a)
}
