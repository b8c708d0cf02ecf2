package fixmap

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

func (m *Map) overloaded(count, capacity uint32) bool {
	return uint64(count)*100/uint64(capacity) > uint64(m.loadFactor)
}

// growTarget returns the capacity needed to hold count records without
// exceeding the load factor. Each growth step moves to the smallest prime
// above twice the current capacity.
func (m *Map) growTarget(count uint32) uint32 {
	capacity := uint32(len(m.slots))
	for m.overloaded(count, capacity) && capacity <= math.MaxUint32/2 {
		capacity = nextPrime(capacity * 2)
	}
	return capacity
}

// resize rebuilds the slot array with the given capacity. Live records are
// moved, not copied; tombstones are dropped. The map is left untouched if
// placing a record fails.
func (m *Map) resize(capacity uint32) error {
	old := uint32(len(m.slots))
	if capacity <= m.count {
		return fmt.Errorf("%w: capacity %d cannot hold %d records", ErrInvariant, capacity, m.count)
	}
	slots := make([]slot, capacity)
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied() {
			continue
		}
		idx, exists, err := m.findHole(slots, s.rec)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: duplicate key at slot %d during resize", ErrInvariant, i)
		}
		slots[idx].fill(s.rec)
	}

	m.slots = slots
	m.tombstones = 0
	m.resizes++
	m.log.Debug("resized",
		zap.Uint32("from", old),
		zap.Uint32("to", capacity),
		zap.Uint32("count", m.count))
	return nil
}
