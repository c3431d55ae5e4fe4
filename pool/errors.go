package pool

import "errors"

var (
	// ErrNilFactory is returned by New when no factory is provided.
	ErrNilFactory = errors.New("pool: factory must not be nil")
	// ErrInvalidCapacity is returned by New when capacity is not positive.
	ErrInvalidCapacity = errors.New("pool: capacity must be positive")
	// ErrValidationFailed is returned by Acquire when freshly made objects keep failing validation.
	ErrValidationFailed = errors.New("pool: object failed validation")
	// ErrReleased is returned when a lease or pooled container is closed twice, and is the panic
	// value when a released lease is used.
	ErrReleased = errors.New("pool: object already released")
)
