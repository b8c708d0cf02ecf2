/*
Package fixmap provides an in-memory hash map of fixed-size byte records.

Every entry is a key record of Config.KeySize bytes followed by a value record
of Config.ValueSize bytes. Records are copied in and out by value, so any Go
value with a fixed binary layout can be stored by encoding it first.

Basic usage:

	import "github.com/theflywheel/fixmap"

	m, err := fixmap.New(fixmap.Config{KeySize: 8, ValueSize: 8})
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	key := make([]byte, 8)
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(key, 12345)
	binary.BigEndian.PutUint64(value, 67890)
	err = m.Put(key, value)

	result, err := m.Get(key)
	if err == nil {
		fmt.Println("Value:", binary.BigEndian.Uint64(result))
	}

Features:

  - Fixed-size keys and values configured at run time
  - Open addressing with linear probing and tombstone deletion
  - Prime capacities, starting at 13 and growing past twice the current size
    whenever an insert would push the load above 33%
  - ELF hash by default, xxhash on request
  - Optional KeyResolver so a key record can stand for bytes stored elsewhere
  - Optional memory limit reported as ErrNoMemory

Implementation Details:

The storage array holds one slot per bucket. A slot is empty, a tombstone, or
owns one record. Lookups walk from the hash bucket until they find the key, an
empty slot, or come back to the start. Inserts walk the same chain past
tombstones so that an existing key is always updated in place, then reuse the
first tombstone they passed.

Without a resolver the key record itself is compared, so a key record holding
a handle or offset matches only the identical handle. With a resolver the map
compares whatever bytes the resolver returns for the stored and the searched
key records.

The map owns its records but nothing they refer to. When values are handles to
caller data, release that data yourself, for example with ForEach before
Close.

A Map is not safe for concurrent use. See package
github.com/theflywheel/fixmap/locked.
*/
package fixmap
