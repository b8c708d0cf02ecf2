// Package locked serializes access to a fixmap.Map so it can be shared
// between goroutines.
package locked

import (
	"sync"

	"github.com/theflywheel/fixmap"
)

// Map guards a fixmap.Map with a read/write mutex. Lookups share the read
// lock; Put, Remove and Close take the write lock.
type Map struct {
	mu sync.RWMutex
	m  *fixmap.Map
}

// New creates a fixmap.Map from cfg and wraps it.
func New(cfg fixmap.Config) (*Map, error) {
	m, err := fixmap.New(cfg)
	if err != nil {
		return nil, err
	}
	return Wrap(m), nil
}

// Wrap takes ownership of m. The caller must not use m directly afterwards.
func Wrap(m *fixmap.Map) *Map {
	return &Map{m: m}
}

func (l *Map) Put(key, val []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Put(key, val)
}

func (l *Map) Get(key []byte) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.Get(key)
}

func (l *Map) GetInto(key, out []byte) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.GetInto(key, out)
}

func (l *Map) Contains(key []byte) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.Contains(key)
}

func (l *Map) Remove(key []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Remove(key)
}

func (l *Map) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.Len()
}

// ForEach holds the read lock for the whole traversal, so fn must not call
// back into l for writing.
func (l *Map) ForEach(fn fixmap.Visitor, data any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.m.ForEach(fn, data)
}

// Entries exports a consistent snapshot of all keys and values.
func (l *Map) Entries() (keys, vals []byte, err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.Entries()
}

// Update reads the value under key, passes it to fn and stores the result,
// all under one write lock. found is false when key was absent, in which case
// cur is nil.
func (l *Map) Update(key []byte, fn func(cur []byte, found bool) []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, err := l.m.Get(key)
	found := err == nil
	if err != nil && fixmap.StatusOf(err) != fixmap.StatusNotFound {
		return err
	}
	return l.m.Put(key, fn(cur, found))
}

func (l *Map) Stats() fixmap.Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.m.Stats()
}

func (l *Map) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Close()
}
