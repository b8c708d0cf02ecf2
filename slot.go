package fixmap

import "unsafe"

type slotState uint8

const (
	slotEmpty slotState = iota
	slotTombstone
	slotOccupied
)

// slot is one cell of the storage array. rec is set only while the slot is
// occupied; a tombstone keeps probe chains intact after a removal.
type slot struct {
	state slotState
	rec   []byte
}

var slotBytes = int64(unsafe.Sizeof(slot{}))

func (s *slot) occupied() bool { return s.state == slotOccupied }

func (s *slot) fill(rec []byte) {
	s.state = slotOccupied
	s.rec = rec
}

func (s *slot) bury() {
	s.state = slotTombstone
	s.rec = nil
}
