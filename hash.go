package fixmap

import "github.com/cespare/xxhash/v2"

// HashFunc maps a key view to a 32-bit hash. The bucket is the hash modulo
// the current capacity, so a HashFunc must be deterministic.
type HashFunc func(key []byte) uint32

// ELFHash is the PJW/ELF rolling hash and the default HashFunc.
func ELFHash(key []byte) uint32 {
	var h uint32
	for _, b := range key {
		h = h<<4 + uint32(b)
		x := h & 0xF0000000
		if x != 0 {
			h ^= x >> 24
		}
		h &^= x
	}
	return h
}

// XXHash folds the 64-bit xxhash of key into 32 bits.
func XXHash(key []byte) uint32 {
	h := xxhash.Sum64(key)
	return uint32(h) ^ uint32(h>>32)
}

const (
	HashELF    = "elf"
	HashXXHash = "xxhash"
)

func hashByName(name string) (HashFunc, bool) {
	switch name {
	case "", HashELF:
		return ELFHash, true
	case HashXXHash:
		return XXHash, true
	}
	return nil, false
}
