package fixmap

import (
	"errors"
	"fmt"
)

var (
	// ErrFailure is the generic failure. The more specific caller errors
	// below wrap it.
	ErrFailure = errors.New("fixmap: failure")

	// ErrNotFound is returned when a key is absent.
	ErrNotFound = errors.New("fixmap: not found")

	// ErrNoMemory is returned when an allocation would exceed the configured
	// memory limit. The map is left unchanged.
	ErrNoMemory = errors.New("fixmap: out of memory")

	// ErrInvariant reports a broken internal contract, usually a KeyResolver
	// returning views that cannot be compared.
	ErrInvariant = errors.New("fixmap: invariant violation")

	ErrInvalidConfig  = fmt.Errorf("%w: invalid config", ErrFailure)
	ErrInvalidSize    = fmt.Errorf("%w: invalid key/value size", ErrFailure)
	ErrBufferTooSmall = fmt.Errorf("%w: buffer too small", ErrFailure)
	ErrClosed         = fmt.Errorf("%w: map is closed", ErrFailure)
)

// Status is the discrete outcome of a map operation.
type Status int

const (
	StatusOK Status = iota
	StatusFailure
	StatusNoMemory
	StatusNotFound
	StatusExists
)

var statusText = [...]string{
	StatusOK:       "Success",
	StatusFailure:  "Failure",
	StatusNoMemory: "Out of memory",
	StatusNotFound: "Not found",
	StatusExists:   "Already Exists",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusText) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusText[s]
}

// StatusOf maps an error returned by this package to its Status. Invariant
// violations and unknown errors report StatusFailure.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNotFound):
		return StatusNotFound
	case errors.Is(err, ErrNoMemory):
		return StatusNoMemory
	default:
		return StatusFailure
	}
}
