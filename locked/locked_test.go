package locked_test

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theflywheel/fixmap"
	"github.com/theflywheel/fixmap/locked"
)

func TestConcurrentWriters(t *testing.T) {
	m, err := locked.New(fixmap.Config{KeySize: 8, ValueSize: 8})
	require.NoError(t, err)
	defer m.Close()

	const workers, perWorker = 8, 500
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			key := make([]byte, 8)
			for i := 0; i < perWorker; i++ {
				binary.BigEndian.PutUint64(key, uint64(w*perWorker+i))
				if err := m.Put(key, key); err != nil {
					t.Errorf("put: %v", err)
					return
				}
				if !m.Contains(key) {
					t.Errorf("key %d missing after put", w*perWorker+i)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, m.Len())
	keys, vals, err := m.Entries()
	require.NoError(t, err)
	assert.Equal(t, keys, vals)
}

func TestUpdateIsAtomic(t *testing.T) {
	m, err := locked.New(fixmap.Config{KeySize: 1, ValueSize: 8})
	require.NoError(t, err)

	incr := func(cur []byte, found bool) []byte {
		n := uint64(0)
		if found {
			n = binary.BigEndian.Uint64(cur)
		}
		out := make([]byte, 8)
		binary.BigEndian.PutUint64(out, n+1)
		return out
	}

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				assert.NoError(t, m.Update([]byte("x"), incr))
			}
		}()
	}
	wg.Wait()

	v, err := m.Get([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), binary.BigEndian.Uint64(v))

	assert.ErrorIs(t, m.Update([]byte("xx"), incr), fixmap.ErrInvalidSize)
}

func TestWrapDelegates(t *testing.T) {
	inner, err := fixmap.New(fixmap.Config{KeySize: 1, ValueSize: 1})
	require.NoError(t, err)
	m := locked.Wrap(inner)

	require.NoError(t, m.Put([]byte("a"), []byte{1}))
	out := make([]byte, 1)
	require.NoError(t, m.GetInto([]byte("a"), out))
	assert.Equal(t, []byte{1}, out)

	visited := 0
	m.ForEach(func(_, _ []byte, _ any) { visited++ }, nil)
	assert.Equal(t, 1, visited)
	assert.Equal(t, 1, m.Stats().Len)

	require.NoError(t, m.Remove([]byte("a")))
	assert.ErrorIs(t, m.Remove([]byte("a")), fixmap.ErrNotFound)
	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Close(), fixmap.ErrClosed)
}
