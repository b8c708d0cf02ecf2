package fixmap

import (
	"fmt"

	"go.uber.org/zap"
)

// Map is an open-addressing hash map of fixed-size key and value records.
//
// Keys and values are copied in on Put and copied out on Get; the map never
// keeps a caller's slice. A Map is not safe for concurrent use; wrap it with
// package locked or another mutual exclusion layer for that.
type Map struct {
	keySize uint32
	valSize uint32

	count uint32
	slots []slot

	resolver     KeyResolver
	hash         HashFunc
	loadFactor   uint32
	memLimit     int64
	strictKeyLen bool
	log          *zap.Logger

	resizes    int
	tombstones int
	closed     bool
}

// Stats is a snapshot of a map's occupancy.
type Stats struct {
	Len        int
	Cap        int
	Tombstones int
	Resizes    int
	// Bytes is the footprint counted against Config.MemoryLimit.
	Bytes int64
}

// New creates an empty map for the records described by cfg.
func New(cfg Config) (*Map, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Map{
		keySize:      cfg.KeySize,
		valSize:      cfg.ValueSize,
		resolver:     cfg.Resolver,
		hash:         cfg.hashFunc(),
		loadFactor:   cfg.LoadFactor,
		memLimit:     cfg.MemoryLimit,
		strictKeyLen: cfg.StrictKeyLength,
		log:          cfg.Logger,
	}

	capacity := cfg.initialCapacity()
	if err := m.reserve(capacity, 0); err != nil {
		return nil, err
	}
	m.slots = make([]slot, capacity)

	m.log.Debug("map created",
		zap.Uint32("keySize", m.keySize),
		zap.Uint32("valueSize", m.valSize),
		zap.Uint32("capacity", capacity),
		zap.Bool("resolver", m.resolver != nil))
	return m, nil
}

// Close releases every record and the slot array. Data the caller reaches
// through stored values or resolved keys is not touched.
func (m *Map) Close() error {
	if m.closed {
		return ErrClosed
	}
	m.log.Debug("map closed", zap.Uint32("count", m.count), zap.Int("capacity", len(m.slots)))
	for i := range m.slots {
		m.slots[i] = slot{}
	}
	m.slots = nil
	m.count = 0
	m.tombstones = 0
	m.closed = true
	return nil
}

func (m *Map) recordSize() int64 {
	return int64(m.keySize) + int64(m.valSize)
}

func (m *Map) footprint(capacity, count uint32) int64 {
	return int64(capacity)*slotBytes + int64(count)*m.recordSize()
}

// reserve fails with ErrNoMemory if a map of the given capacity holding count
// records would exceed the memory limit.
func (m *Map) reserve(capacity, count uint32) error {
	if m.memLimit == 0 {
		return nil
	}
	if need := m.footprint(capacity, count); need > m.memLimit {
		return fmt.Errorf("%w: need %d bytes, limit is %d", ErrNoMemory, need, m.memLimit)
	}
	return nil
}

func (m *Map) checkKey(key []byte) error {
	if m.closed {
		return ErrClosed
	}
	if uint32(len(key)) != m.keySize {
		return fmt.Errorf("%w: key is %d bytes, want %d", ErrInvalidSize, len(key), m.keySize)
	}
	return nil
}

// Put stores val under key, overwriting the value of an existing entry. The
// key bytes of an existing entry are left as they were.
func (m *Map) Put(key, val []byte) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	if uint32(len(val)) != m.valSize {
		return fmt.Errorf("%w: value is %d bytes, want %d", ErrInvalidSize, len(val), m.valSize)
	}

	idx, exists, err := m.findHole(m.slots, key)
	if err != nil {
		return err
	}
	if exists {
		copy(m.slots[idx].rec[m.keySize:], val)
		m.log.Debug("put: updated in place", zap.Uint32("index", idx))
		return nil
	}

	capacity := m.growTarget(m.count + 1)
	if err := m.reserve(capacity, m.count+1); err != nil {
		return err
	}
	if capacity != uint32(len(m.slots)) {
		if err := m.resize(capacity); err != nil {
			return fmt.Errorf("resize failed: %w", err)
		}
		if idx, _, err = m.findHole(m.slots, key); err != nil {
			return err
		}
	}

	rec := make([]byte, m.recordSize())
	copy(rec, key)
	copy(rec[m.keySize:], val)

	s := &m.slots[idx]
	if s.state == slotTombstone {
		m.tombstones--
	}
	s.fill(rec)
	m.count++
	m.log.Debug("put: inserted", zap.Uint32("index", idx), zap.Uint32("count", m.count))
	return nil
}

// Get returns a copy of the value stored under key.
func (m *Map) Get(key []byte) ([]byte, error) {
	out := make([]byte, m.valSize)
	if err := m.GetInto(key, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInto copies the value stored under key into out, which must hold at
// least ValueSize bytes.
func (m *Map) GetInto(key, out []byte) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	if uint32(len(out)) < m.valSize {
		return fmt.Errorf("%w: output is %d bytes, want %d", ErrBufferTooSmall, len(out), m.valSize)
	}
	idx, err := m.findKey(key)
	if err != nil {
		return err
	}
	copy(out, m.slots[idx].rec[m.keySize:])
	return nil
}

// Contains reports whether key is present.
func (m *Map) Contains(key []byte) bool {
	if m.checkKey(key) != nil {
		return false
	}
	_, err := m.findKey(key)
	return err == nil
}

// Remove deletes the entry stored under key.
func (m *Map) Remove(key []byte) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	idx, err := m.findKey(key)
	if err != nil {
		return err
	}
	m.slots[idx].bury()
	m.count--
	m.tombstones++
	m.log.Debug("remove", zap.Uint32("index", idx), zap.Uint32("count", m.count))
	return nil
}

// Len returns the number of live entries.
func (m *Map) Len() int {
	return int(m.count)
}

// Cap returns the number of slots, always a prime.
func (m *Map) Cap() int {
	return len(m.slots)
}

// KeySize returns the configured key record size.
func (m *Map) KeySize() int {
	return int(m.keySize)
}

// ValueSize returns the configured value record size.
func (m *Map) ValueSize() int {
	return int(m.valSize)
}

func (m *Map) Stats() Stats {
	return Stats{
		Len:        int(m.count),
		Cap:        len(m.slots),
		Tombstones: m.tombstones,
		Resizes:    m.resizes,
		Bytes:      m.footprint(uint32(len(m.slots)), m.count),
	}
}
