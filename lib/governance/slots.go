package governance

import (
	"time"

	"github.com/agoranet/agora/lib/errors"
	"github.com/agoranet/agora/lib/storage"
)

const ActiveSlotsKey string = "gs-active-slots"

// SlotAllocator bounds the number of concurrently votable proposals to a
// fixed capacity. Each slot holds a proposal id; 0 points at the dummy
// proposal and reads as free. Eviction is lazy: a stale slot is only
// discovered when a new proposal asks for room.
type SlotAllocator struct {
	st       *storage.LevelDBBackend
	capacity int
}

func NewSlotAllocator(st *storage.LevelDBBackend, capacity int) (*SlotAllocator, error) {
	a := &SlotAllocator{st: st, capacity: capacity}

	exists, err := st.Has(ActiveSlotsKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := st.New(ActiveSlotsKey, make([]uint64, capacity)); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (a *SlotAllocator) Capacity() int {
	return a.capacity
}

func (a *SlotAllocator) Slots() (slots []uint64, err error) {
	err = a.st.Get(ActiveSlotsKey, &slots)
	return
}

func (a *SlotAllocator) Set(index int, id uint64) error {
	slots, err := a.Slots()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(slots) {
		return errors.NotFound
	}

	slots[index] = id
	return a.st.Set(ActiveSlotsKey, slots)
}

// Contains reports the slot index holding `id`, or -1.
func (a *SlotAllocator) Contains(id uint64) (int, error) {
	if id == 0 {
		return -1, nil
	}

	slots, err := a.Slots()
	if err != nil {
		return -1, err
	}
	for i, slot := range slots {
		if slot == id {
			return i, nil
		}
	}

	return -1, nil
}

// FindFreeSlot scans the slots in index order and returns the first one whose
// proposal has `expiresAt <= now`, along with the proposal id being evicted
// (0 when the slot held the sentinel). Fails with NoCapacity when every slot
// still holds a live proposal.
func (a *SlotAllocator) FindFreeSlot(store *ProposalStore, now time.Time) (index int, evicted uint64, err error) {
	slots, err := a.Slots()
	if err != nil {
		return -1, 0, err
	}

	for i, id := range slots {
		p, err := store.Get(id)
		if err != nil {
			return -1, 0, err
		}
		if p.IsExpired(now) {
			return i, id, nil
		}
	}

	return -1, 0, errors.NoCapacity
}
