// Package queue holds the bounded lock-free queue backing every pool's idle set.
package queue

import "sync/atomic"

const cacheLinePad = 64

type cell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// MPMC is a bounded multi-producer/multi-consumer queue based on Dmitry Vyukov's
// sequence-numbered ring. The ring is sized to a power of two, while limit caps
// the number of items logically held so callers get an exact capacity.
type MPMC[T any] struct {
	head  atomic.Uint64
	_     [cacheLinePad]byte
	tail  atomic.Uint64
	_     [cacheLinePad]byte
	size  atomic.Int64
	_     [cacheLinePad]byte
	limit int64
	mask  uint64
	cells []cell[T]
}

// New creates a queue holding at most capacity items. Capacity below 1 is raised to 1.
func New[T any](capacity int) *MPMC[T] {
	if capacity < 1 {
		capacity = 1
	}
	ring := 2
	for ring < capacity {
		ring <<= 1
	}

	q := &MPMC[T]{
		limit: int64(capacity),
		mask:  uint64(ring - 1),
		cells: make([]cell[T], ring),
	}
	for i := range q.cells {
		q.cells[i].sequence.Store(uint64(i))
	}
	return q
}

// Offer adds val without blocking; returns false if the queue is at capacity.
func (q *MPMC[T]) Offer(val T) bool {
	// size is reserved before touching the ring so it always over-counts the
	// cells in use, which keeps the ring from ever reporting full below limit.
	if q.size.Add(1) > q.limit {
		q.size.Add(-1)
		return false
	}

	for {
		tail := q.tail.Load()
		c := &q.cells[tail&q.mask]
		dif := int64(c.sequence.Load()) - int64(tail)

		switch {
		case dif == 0:
			if q.tail.CompareAndSwap(tail, tail+1) {
				c.data = val
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			q.size.Add(-1)
			return false
		}
	}
}

// Poll removes and returns an item without blocking; ok is false if empty.
func (q *MPMC[T]) Poll() (item T, ok bool) {
	for {
		head := q.head.Load()
		c := &q.cells[head&q.mask]
		dif := int64(c.sequence.Load()) - int64(head+1)

		switch {
		case dif == 0:
			if q.head.CompareAndSwap(head, head+1) {
				item = c.data
				var zero T
				c.data = zero
				c.sequence.Store(head + q.mask + 1)
				q.size.Add(-1)
				return item, true
			}
		case dif < 0:
			return item, false
		}
	}
}

// Len returns the number of items held, including in-flight offers.
func (q *MPMC[T]) Len() int {
	n := q.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Cap returns the logical capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.limit)
}
