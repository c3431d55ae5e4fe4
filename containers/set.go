package containers

import "iter"

// Set is an unordered collection of distinct values.
type Set[T comparable] struct {
	m map[T]struct{}
}

// NewSet returns an empty set sized for capacity values.
func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{m: make(map[T]struct{}, max(capacity, 0))}
}

// Add inserts v and reports whether it was absent.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	if _, ok := s.m[v]; !ok {
		return false
	}
	delete(s.m, v)
	return true
}

// Contains reports whether v is present.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.m[v]
	return ok
}

// All iterates over the values in unspecified order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s.m {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *Set[T]) Len() int {
	return len(s.m)
}

func (s *Set[T]) Clear() {
	clear(s.m)
}
