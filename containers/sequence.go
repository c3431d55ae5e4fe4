package containers

import "iter"

// Sequence is a growable, slice backed list.
type Sequence[T any] struct {
	items []T
}

// NewSequence returns an empty sequence with room for capacity elements.
func NewSequence[T any](capacity int) *Sequence[T] {
	return &Sequence[T]{items: make([]T, 0, max(capacity, 0))}
}

// Append adds vs at the end.
func (s *Sequence[T]) Append(vs ...T) {
	s.items = append(s.items, vs...)
}

// Get returns the element at i. It panics if i is out of range.
func (s *Sequence[T]) Get(i int) T {
	return s.items[i]
}

// Set replaces the element at i. It panics if i is out of range.
func (s *Sequence[T]) Set(i int, v T) {
	s.items[i] = v
}

// Insert places v at i, shifting later elements right. i may equal Len.
func (s *Sequence[T]) Insert(i int, v T) {
	var zero T
	s.items = append(s.items, zero)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = v
}

// RemoveAt deletes and returns the element at i, shifting later elements left.
func (s *Sequence[T]) RemoveAt(i int) T {
	v := s.items[i]
	copy(s.items[i:], s.items[i+1:])
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return v
}

// Pop removes and returns the last element.
func (s *Sequence[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return v, true
}

// Values returns the elements as a slice sharing the sequence's storage. It is only valid
// until the next mutation.
func (s *Sequence[T]) Values() []T {
	return s.items
}

// All iterates over index, element pairs in order.
func (s *Sequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (s *Sequence[T]) Len() int {
	return len(s.items)
}

// Cap returns the retained capacity.
func (s *Sequence[T]) Cap() int {
	return cap(s.items)
}

// Clear removes every element but keeps the backing array.
func (s *Sequence[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
