package fixmap

import "fmt"

// Visitor is called by ForEach for every live entry. key and val alias the
// map's own records and are only valid during the call; data is whatever was
// passed to ForEach.
type Visitor func(key, val []byte, data any)

// ForEach calls fn for every entry in storage order, which is unrelated to
// insertion order. fn must not modify the map.
func (m *Map) ForEach(fn Visitor, data any) {
	for i := range m.slots {
		s := &m.slots[i]
		if s.occupied() {
			fn(s.rec[:m.keySize:m.keySize], s.rec[m.keySize:], data)
		}
	}
}

// Export copies every key into keys and every value into vals, densely
// packed in storage order. keys must hold Len()*KeySize bytes and vals
// Len()*ValueSize bytes.
func (m *Map) Export(keys, vals []byte) error {
	ks, vs := int(m.keySize), int(m.valSize)
	n := int(m.count)
	if len(keys) < n*ks || len(vals) < n*vs {
		return fmt.Errorf("%w: %d entries need %d key bytes and %d value bytes, got %d and %d",
			ErrBufferTooSmall, n, n*ks, n*vs, len(keys), len(vals))
	}

	written := 0
	for i := range m.slots {
		s := &m.slots[i]
		if !s.occupied() {
			continue
		}
		if written == n {
			return fmt.Errorf("%w: more live slots than the %d counted", ErrInvariant, n)
		}
		copy(keys[written*ks:], s.rec[:ks])
		copy(vals[written*vs:], s.rec[ks:])
		written++
	}
	if written != n {
		return fmt.Errorf("%w: exported %d entries, count is %d", ErrInvariant, written, n)
	}
	return nil
}

// Entries returns freshly allocated key and value arrays as filled by Export.
func (m *Map) Entries() (keys, vals []byte, err error) {
	keys = make([]byte, m.Len()*m.KeySize())
	vals = make([]byte, m.Len()*m.ValueSize())
	if err := m.Export(keys, vals); err != nil {
		return nil, nil, err
	}
	return keys, vals, nil
}
