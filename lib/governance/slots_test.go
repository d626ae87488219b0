package governance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/storage"
)

func makeStoreAndSlots(t *testing.T) (*storage.LevelDBBackend, *ProposalStore, *SlotAllocator) {
	st, _ := storage.NewTestMemoryLevelDBBackend()

	store, err := NewProposalStore(st)
	require.NoError(t, err)
	slots, err := NewSlotAllocator(st, common.ProposalsCapacity)
	require.NoError(t, err)

	return st, store, slots
}

func TestSlotAllocatorSeedsEmpty(t *testing.T) {
	st, _, slots := makeStoreAndSlots(t)
	defer st.Close()

	fetched, err := slots.Slots()
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 0, 0}, fetched)
}

func TestSlotAllocatorFindFreeSlotSentinel(t *testing.T) {
	st, store, slots := makeStoreAndSlots(t)
	defer st.Close()

	// all slots point at the expired dummy, so the first one is free
	index, evicted, err := slots.FindFreeSlot(store, time.Now())
	require.NoError(t, err)
	require.Equal(t, 0, index)
	require.Equal(t, uint64(0), evicted)
}

func TestSlotAllocatorNoCapacity(t *testing.T) {
	st, store, slots := makeStoreAndSlots(t)
	defer st.Close()

	now := time.Now()
	for i := 0; i < common.ProposalsCapacity; i++ {
		p, err := store.Create("proposer", "doc", now, common.ProposalTTL)
		require.NoError(t, err)
		require.NoError(t, slots.Set(i, p.ID))
	}

	_, _, err := slots.FindFreeSlot(store, now)
	require.Equal(t, errors.NoCapacity, err)
}

func TestSlotAllocatorEvictsFirstExpired(t *testing.T) {
	st, store, slots := makeStoreAndSlots(t)
	defer st.Close()

	now := time.Now()
	var ids []uint64
	for i := 0; i < common.ProposalsCapacity; i++ {
		p, err := store.Create("proposer", "doc", now, common.ProposalTTL)
		require.NoError(t, err)
		require.NoError(t, slots.Set(i, p.ID))
		ids = append(ids, p.ID)
	}

	// expire the proposal in the middle slot
	p, err := store.Get(ids[1])
	require.NoError(t, err)
	p.ExpiresAt = now
	require.NoError(t, store.Save(p))

	index, evicted, err := slots.FindFreeSlot(store, now)
	require.NoError(t, err)
	require.Equal(t, 1, index)
	require.Equal(t, ids[1], evicted)
}

func TestSlotAllocatorSetOutOfRange(t *testing.T) {
	st, _, slots := makeStoreAndSlots(t)
	defer st.Close()

	require.Equal(t, errors.NotFound, slots.Set(common.ProposalsCapacity, 1))
	require.Equal(t, errors.NotFound, slots.Set(-1, 1))
}

func TestSlotAllocatorContains(t *testing.T) {
	st, store, slots := makeStoreAndSlots(t)
	defer st.Close()

	p, err := store.Create("proposer", "doc", time.Now(), common.ProposalTTL)
	require.NoError(t, err)
	require.NoError(t, slots.Set(2, p.ID))

	index, err := slots.Contains(p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, index)

	index, err = slots.Contains(99)
	require.NoError(t, err)
	require.Equal(t, -1, index)

	// the sentinel id never matches a slot
	index, err = slots.Contains(0)
	require.NoError(t, err)
	require.Equal(t, -1, index)
}
