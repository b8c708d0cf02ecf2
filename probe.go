package fixmap

import (
	"bytes"
	"fmt"
)

// keyView returns the bytes hashed and compared for the key record key.
func (m *Map) keyView(key []byte) ([]byte, error) {
	if m.resolver == nil {
		return key[:m.keySize], nil
	}
	view := m.resolver.ResolveKey(key[:m.keySize])
	if len(view) == 0 {
		return nil, fmt.Errorf("%w: resolver returned an empty key view", ErrInvariant)
	}
	return view, nil
}

// matches reports whether the record stored in s has the key view want.
func (m *Map) matches(s *slot, want []byte) (bool, error) {
	have, err := m.keyView(s.rec)
	if err != nil {
		return false, err
	}
	if len(have) != len(want) {
		if m.strictKeyLen {
			return false, fmt.Errorf("%w: stored key view is %d bytes, search key view is %d bytes",
				ErrInvariant, len(have), len(want))
		}
		return false, nil
	}
	return bytes.Equal(have, want), nil
}

func (m *Map) bucket(view []byte, capacity uint32) uint32 {
	return m.hash(view) % capacity
}

// findKey walks the probe sequence for key and returns the index of the
// occupied slot holding it. Tombstones are stepped over; an empty slot or a
// full cycle back to the start ends the search with ErrNotFound.
func (m *Map) findKey(key []byte) (uint32, error) {
	view, err := m.keyView(key)
	if err != nil {
		return 0, err
	}
	capacity := uint32(len(m.slots))
	start := m.bucket(view, capacity)
	i := start
	for {
		s := &m.slots[i]
		if s.state == slotEmpty {
			break
		}
		if s.occupied() {
			ok, err := m.matches(s, view)
			if err != nil {
				return 0, err
			}
			if ok {
				return i, nil
			}
		}
		i = (i + 1) % capacity
		if i == start {
			break
		}
	}
	return 0, ErrNotFound
}

// findHole walks the probe sequence of slots for key. If a live record with
// the same key is found its index is returned with exists set. Otherwise the
// first tombstone seen, or failing that the empty slot that ended the walk,
// is returned as the place to insert. The walk does not stop at a tombstone
// so that a duplicate further down the chain is still detected.
func (m *Map) findHole(slots []slot, key []byte) (idx uint32, exists bool, err error) {
	view, err := m.keyView(key)
	if err != nil {
		return 0, false, err
	}
	capacity := uint32(len(slots))
	start := m.bucket(view, capacity)
	hole, haveHole := uint32(0), false
	i := start
	for {
		s := &slots[i]
		switch s.state {
		case slotEmpty:
			if haveHole {
				return hole, false, nil
			}
			return i, false, nil
		case slotTombstone:
			if !haveHole {
				hole, haveHole = i, true
			}
		case slotOccupied:
			ok, err := m.matches(s, view)
			if err != nil {
				return 0, false, err
			}
			if ok {
				return i, true, nil
			}
		}
		i = (i + 1) % capacity
		if i == start {
			break
		}
	}
	if haveHole {
		return hole, false, nil
	}
	return 0, false, fmt.Errorf("%w: no free slot among %d", ErrInvariant, capacity)
}
