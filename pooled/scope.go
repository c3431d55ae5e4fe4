package pooled

import (
	"sync/atomic"

	"github.com/hemal-shah/poolkit/internal"
	"github.com/hemal-shah/poolkit/pool"
)

// scope ties a container to the pool that made it.
type scope struct {
	release func() // bound once by the factory
	out     atomic.Bool
}

func (s *scope) bind(release func()) {
	s.release = release
}

func (s *scope) checkout() {
	s.out.Store(true)
}

func (s *scope) checkin() {
	s.out.Store(false)
}

// Close clears the container and returns it to its pool. The container must not be used
// afterwards. Close returns pool.ErrReleased instead of releasing again when the container is
// already back in its pool, whether it got there through Close, pool.Bounded.Release or a
// pool.Lease.
//
// The guard is per container, not per holder: once another caller has acquired the same
// container, a stale reference closing it releases it from under its new owner.
func (s *scope) Close() error {
	if !s.out.CompareAndSwap(true, false) {
		return pool.ErrReleased
	}
	s.release()
	return nil
}

type scoped interface {
	internal.Clearable
	bind(release func())
	checkout()
	checkin()
}

// scopedFactory builds containers bound to *p. p is read when a container is released, so it
// may be assigned after the factory is handed to pool.New. passivate empties a container on
// its way back to the pool.
func scopedFactory[S scoped](p **pool.Bounded[S], build func() S, passivate func(S)) pool.Funcs[S] {
	return pool.Funcs[S]{
		MakeFn: func() (S, error) {
			s := build()
			s.bind(func() { (*p).Release(s) })
			return s, nil
		},
		PassivateFn: func(s S) {
			s.checkin()
			passivate(s)
		},
		ActivateFn: func(s S) {
			s.checkout()
		},
	}
}
