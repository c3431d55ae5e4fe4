package pool

import (
	"fmt"
	"sync/atomic"
)

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527 for details; go vet's copylocks
// check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Lease is an owning handle on an acquired object. Closing it returns the object to its pool
// exactly once; after that Value panics and Close reports ErrReleased. A Lease must not be copied.
type Lease[T any] struct {
	_ noCopy

	pool     *Bounded[T]
	value    T
	released atomic.Bool
}

// Borrow acquires an object and wraps it in a Lease.
func (p *Bounded[T]) Borrow() (*Lease[T], error) {
	obj, err := p.Acquire()
	if err != nil {
		return nil, err
	}
	return &Lease[T]{pool: p, value: obj}, nil
}

// Value returns the leased object. It panics with ErrReleased once the lease is closed.
func (l *Lease[T]) Value() T {
	if l.released.Load() {
		panic(fmt.Errorf("lease on pool %s: %w", l.pool.name, ErrReleased))
	}
	return l.value
}

// Close releases the object back to its pool. Only the first call has an effect.
func (l *Lease[T]) Close() error {
	if !l.released.CompareAndSwap(false, true) {
		return ErrReleased
	}
	obj := l.value
	var zero T
	l.value = zero
	l.pool.Release(obj)
	return nil
}

// Use acquires an object from p, runs fn with it and releases it on every exit path, including
// a panic inside fn. The object must not escape fn.
func Use[T any](p *Bounded[T], fn func(obj T) error) error {
	obj, err := p.Acquire()
	if err != nil {
		return err
	}
	defer p.Release(obj)
	return fn(obj)
}
