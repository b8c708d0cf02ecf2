package fixmap

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultInitialCapacity is the slot count a new map starts with.
	DefaultInitialCapacity uint32 = 13

	// DefaultLoadFactor is the fill percentage above which an insert grows
	// the map first.
	DefaultLoadFactor uint32 = 33

	minCapacity uint32 = 2
)

// Config describes the records a Map stores and how it grows. The toml tags
// let callers keep map settings in a config file; the function-valued fields
// can only be set from code.
type Config struct {
	KeySize   uint32 `toml:"key_size"`
	ValueSize uint32 `toml:"value_size"`

	// InitialCapacity is rounded up to a prime. Zero means
	// DefaultInitialCapacity.
	InitialCapacity uint32 `toml:"initial_capacity"`

	// LoadFactor is a percentage in [1, 99]. Zero means DefaultLoadFactor.
	LoadFactor uint32 `toml:"load_factor"`

	// Hash names a built-in hash function: "elf" (default) or "xxhash".
	// Ignored when HashFunc is set.
	Hash string `toml:"hash"`

	// MemoryLimit caps the bytes held by the slot array plus live records.
	// Zero means unlimited. Operations that would exceed it fail with
	// ErrNoMemory.
	MemoryLimit int64 `toml:"memory_limit"`

	// StrictKeyLength makes a length mismatch between a search key view and a
	// stored key view an ErrInvariant instead of a plain miss. Set it when the
	// resolver always returns views of one length.
	StrictKeyLength bool `toml:"strict_key_length"`

	Resolver KeyResolver `toml:"-"`
	HashFunc HashFunc    `toml:"-"`
	Logger   *zap.Logger `toml:"-"`
}

func (c Config) withDefaults() Config {
	if c.InitialCapacity == 0 {
		c.InitialCapacity = DefaultInitialCapacity
	}
	if c.LoadFactor == 0 {
		c.LoadFactor = DefaultLoadFactor
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

func (c Config) validate() error {
	if c.KeySize == 0 || c.ValueSize == 0 {
		return fmt.Errorf("%w: key size %d and value size %d must be positive",
			ErrInvalidConfig, c.KeySize, c.ValueSize)
	}
	if c.LoadFactor > 99 {
		return fmt.Errorf("%w: load factor %d%% out of range", ErrInvalidConfig, c.LoadFactor)
	}
	if c.MemoryLimit < 0 {
		return fmt.Errorf("%w: negative memory limit", ErrInvalidConfig)
	}
	if c.HashFunc == nil {
		if _, ok := hashByName(c.Hash); !ok {
			return fmt.Errorf("%w: unknown hash %q", ErrInvalidConfig, c.Hash)
		}
	}
	return nil
}

func (c Config) hashFunc() HashFunc {
	if c.HashFunc != nil {
		return c.HashFunc
	}
	h, _ := hashByName(c.Hash)
	return h
}

// initialCapacity returns the smallest prime not below the configured
// capacity, never less than minCapacity.
func (c Config) initialCapacity() uint32 {
	n := c.InitialCapacity
	if n < minCapacity {
		n = minCapacity
	}
	if isPrime(n) {
		return n
	}
	return nextPrime(n)
}
