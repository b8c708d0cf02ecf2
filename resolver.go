package fixmap

// KeyResolver maps a key record to the bytes the map hashes and compares.
//
// The map calls ResolveKey both on keys passed to Put, Get, Contains and
// Remove and on stored key records met while probing, so two key records
// that resolve to the same bytes are the same logical key. Use it when the
// fixed-size key record is a reference (a handle, an offset, an interned id)
// to the bytes that actually identify the entry. Whatever the reference
// points at stays owned by the caller and must outlive the map entry.
//
// The returned slice is only read for the duration of the call and must not
// be empty.
type KeyResolver interface {
	ResolveKey(key []byte) []byte
}

// ResolverFunc adapts an ordinary function to a KeyResolver.
type ResolverFunc func(key []byte) []byte

func (f ResolverFunc) ResolveKey(key []byte) []byte {
	return f(key)
}
