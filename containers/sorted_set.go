package containers

import (
	"cmp"
	"iter"

	"github.com/google/btree"
)

const sortedSetDegree = 16

// SortedSet keeps distinct values in ascending order on a B-tree. Nodes released by Clear go to
// the tree's free list and are reused by later inserts.
type SortedSet[T cmp.Ordered] struct {
	tree *btree.BTreeG[T]
}

// NewSortedSet returns an empty set.
func NewSortedSet[T cmp.Ordered]() *SortedSet[T] {
	return &SortedSet[T]{
		tree: btree.NewWithFreeListG[T](sortedSetDegree, cmp.Less[T], btree.NewFreeListG[T](btree.DefaultFreeListSize)),
	}
}

// Add inserts v and reports whether it was absent.
func (s *SortedSet[T]) Add(v T) bool {
	_, found := s.tree.ReplaceOrInsert(v)
	return !found
}

// Remove deletes v and reports whether it was present.
func (s *SortedSet[T]) Remove(v T) bool {
	_, found := s.tree.Delete(v)
	return found
}

// Contains reports whether v is present.
func (s *SortedSet[T]) Contains(v T) bool {
	return s.tree.Has(v)
}

// Min returns the smallest value.
func (s *SortedSet[T]) Min() (T, bool) {
	return s.tree.Min()
}

// Max returns the largest value.
func (s *SortedSet[T]) Max() (T, bool) {
	return s.tree.Max()
}

// PopMin removes and returns the smallest value.
func (s *SortedSet[T]) PopMin() (T, bool) {
	return s.tree.DeleteMin()
}

// All iterates in ascending order.
func (s *SortedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.tree.Ascend(func(v T) bool {
			return yield(v)
		})
	}
}

// Range iterates over values in [from, to) in ascending order.
func (s *SortedSet[T]) Range(from, to T) iter.Seq[T] {
	return func(yield func(T) bool) {
		s.tree.AscendRange(from, to, func(v T) bool {
			return yield(v)
		})
	}
}

func (s *SortedSet[T]) Len() int {
	return s.tree.Len()
}

func (s *SortedSet[T]) Clear() {
	s.tree.Clear(true)
}
