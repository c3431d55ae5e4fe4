package stress

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/hemal-shah/poolkit/pool"
	"github.com/hemal-shah/poolkit/pooled"
)

type container interface {
	Len() int
	Close() error
}

// workload runs single acquire/fill/verify/close cycles against one pool.
type workload struct {
	stats func() pool.Stats
	// cycle reports whether it observed state written by another worker.
	cycle func(id, n int) (corrupt bool, err error)
}

// cycleOf builds a cycle that acquires a container, checks it starts empty, fills it with n
// entries tagged with the worker id and checks every entry still carries that tag before closing.
func cycleOf[S container](acquire func() (S, error), fill func(s S, id, n int), owned func(s S, id int) bool) func(id, n int) (bool, error) {
	return func(id, n int) (bool, error) {
		s, err := acquire()
		if err != nil {
			return false, err
		}
		corrupt := s.Len() != 0
		fill(s, id, n)
		// let other workers run while this one still owns s
		runtime.Gosched()
		if s.Len() != n || !owned(s, id) {
			corrupt = true
		}
		return corrupt, s.Close()
	}
}

func newWorkload(r *pooled.Registry, shape string, maxFill int) (workload, error) {
	switch shape {
	case pooled.ShapeSequence:
		p, err := pooled.SequencePool[int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(s *pooled.Sequence[int], id, n int) {
				for i := 0; i < n; i++ {
					s.Append(id)
				}
			},
			func(s *pooled.Sequence[int], id int) bool {
				for _, v := range s.All() {
					if v != id {
						return false
					}
				}
				return true
			})}, nil

	case pooled.ShapeLinkedSequence:
		p, err := pooled.LinkedSequencePool[int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(s *pooled.LinkedSequence[int], id, n int) {
				for i := 0; i < n; i++ {
					s.PushBack(id)
				}
			},
			func(s *pooled.LinkedSequence[int], id int) bool {
				for v := range s.All() {
					if v != id {
						return false
					}
				}
				return true
			})}, nil

	case pooled.ShapeHashMap:
		p, err := pooled.HashMapPool[int, int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(m *pooled.HashMap[int, int], id, n int) {
				for i := 0; i < n; i++ {
					m.Put(i, id)
				}
			},
			func(m *pooled.HashMap[int, int], id int) bool {
				for _, v := range m.All() {
					if v != id {
						return false
					}
				}
				return true
			})}, nil

	case pooled.ShapeLinkedMap:
		p, err := pooled.LinkedMapPool[int, int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(m *pooled.LinkedMap[int, int], id, n int) {
				for i := 0; i < n; i++ {
					m.Put(i, id)
				}
			},
			func(m *pooled.LinkedMap[int, int], id int) bool {
				next := 0
				for k, v := range m.All() {
					if k != next || v != id {
						return false
					}
					next++
				}
				return true
			})}, nil

	case pooled.ShapeIdentityMap:
		p, err := pooled.IdentityMapPool[int, int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(m *pooled.IdentityMap[int, int], id, n int) {
				for i := 0; i < n; i++ {
					m.Put(new(int), id)
				}
			},
			func(m *pooled.IdentityMap[int, int], id int) bool {
				for _, v := range m.All() {
					if v != id {
						return false
					}
				}
				return true
			})}, nil

	case pooled.ShapeSet:
		p, err := pooled.SetPool[int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(s *pooled.Set[int], id, n int) {
				for i := 0; i < n; i++ {
					s.Add(id*maxFill + i)
				}
			},
			func(s *pooled.Set[int], id int) bool {
				for v := range s.All() {
					if v/maxFill != id {
						return false
					}
				}
				return true
			})}, nil

	case pooled.ShapeSortedSet:
		p, err := pooled.SortedSetPool[int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(s *pooled.SortedSet[int], id, n int) {
				for i := n - 1; i >= 0; i-- {
					s.Add(id*maxFill + i)
				}
			},
			func(s *pooled.SortedSet[int], id int) bool {
				want := id * maxFill
				for v := range s.All() {
					if v != want {
						return false
					}
					want++
				}
				return true
			})}, nil

	case pooled.ShapeQueue:
		p, err := pooled.QueuePool[int](r)
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Acquire,
			func(q *pooled.Queue[int], id, n int) {
				for i := 0; i < n; i++ {
					q.Add(id)
				}
			},
			func(q *pooled.Queue[int], id int) bool {
				for i := 0; i < q.Len(); i++ {
					if q.Get(i) != id {
						return false
					}
				}
				return true
			})}, nil

	case pooled.ShapeBuffer:
		p, err := r.BufferPool(func() *bytes.Buffer { return new(bytes.Buffer) })
		if err != nil {
			return workload{}, err
		}
		return workload{stats: p.Stats, cycle: cycleOf(p.Get,
			func(b *pooled.Buffer, id, n int) {
				for i := 0; i < n; i++ {
					b.WriteByte(byte(id))
				}
			},
			func(b *pooled.Buffer, id int) bool {
				for _, c := range b.Bytes() {
					if c != byte(id) {
						return false
					}
				}
				return true
			})}, nil
	}

	return workload{}, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
}
