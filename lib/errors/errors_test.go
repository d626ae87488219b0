package errors

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorSerialize(t *testing.T) {
	b, err := AlreadyVoted.Serialize()
	require.NoError(t, err)

	var decoded Error
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, AlreadyVoted.Code, decoded.Code)
	require.Equal(t, AlreadyVoted.Message, decoded.Message)
}

func TestErrorIsError(t *testing.T) {
	var err error = ProposalExpired
	require.Contains(t, err.Error(), ProposalExpired.Message)
}

func TestErrorCodesAreUnique(t *testing.T) {
	all := []*Error{
		Unauthorized, NoCapacity, InvalidAmount, InsufficientBalance,
		NotFound, ProposalExpired, AlreadyVoted, InvalidDirection,
		AccountNotFound, AccountAlreadyExists, AccountBalanceUnderZero,
		MaximumBalanceReached, SupplyAlreadyIssued, SupplyNotIssued,
		StorageCoreError, StorageRecordDoesNotExist, StorageRecordAlreadyExists,
	}

	seen := map[uint]bool{}
	for _, e := range all {
		require.False(t, seen[e.Code], "duplicated error code: %d", e.Code)
		seen[e.Code] = true
	}
}
