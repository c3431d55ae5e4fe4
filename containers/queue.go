package containers

import "github.com/eapache/queue"

// Queue is a FIFO queue on a growable ring buffer. Unlike the other containers it does not
// retain its storage across Clear: the ring halves each time it drops to a quarter full, down to
// its minimum size. The Queue value itself is still reused.
type Queue[T any] struct {
	q *queue.Queue
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{q: queue.New()}
}

// Add enqueues v at the tail.
func (q *Queue[T]) Add(v T) {
	q.q.Add(v)
}

// Peek returns the head without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.q.Length() == 0 {
		var zero T
		return zero, false
	}
	// a nil interface value stored in the queue does not satisfy the assertion
	v, _ := q.q.Peek().(T)
	return v, true
}

// Get returns the i-th element from the head. It panics if i is out of range.
func (q *Queue[T]) Get(i int) T {
	v, _ := q.q.Get(i).(T)
	return v
}

// Remove dequeues the head.
func (q *Queue[T]) Remove() (T, bool) {
	v, ok := q.Peek()
	if ok {
		q.q.Remove()
	}
	return v, ok
}

func (q *Queue[T]) Len() int {
	return q.q.Length()
}

// Clear drains the queue. The ring shrinks as it empties but never below its minimum size.
func (q *Queue[T]) Clear() {
	for q.q.Length() > 0 {
		q.q.Remove()
	}
}
