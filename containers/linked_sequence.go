package containers

import "iter"

// LinkedSequence is a doubly linked list. Nodes are reused across Clear, so Elements obtained
// before a Clear must not be used after it.
type LinkedSequence[T any] struct {
	l list[T]
}

// NewLinkedSequence returns an empty list.
func NewLinkedSequence[T any]() *LinkedSequence[T] {
	s := &LinkedSequence[T]{}
	s.l.lazyInit()
	return s
}

// PushBack appends v and returns its element.
func (s *LinkedSequence[T]) PushBack(v T) *Element[T] {
	s.l.lazyInit()
	return s.l.insertAfter(v, s.l.root.prev)
}

// PushFront prepends v and returns its element.
func (s *LinkedSequence[T]) PushFront(v T) *Element[T] {
	return s.l.insertAfter(v, &s.l.root)
}

// InsertAfter inserts v right after mark, which must belong to s.
func (s *LinkedSequence[T]) InsertAfter(v T, mark *Element[T]) *Element[T] {
	if mark.list != &s.l {
		return nil
	}
	return s.l.insertAfter(v, mark)
}

// Front returns the first element or nil.
func (s *LinkedSequence[T]) Front() *Element[T] {
	return s.l.front()
}

// Back returns the last element or nil.
func (s *LinkedSequence[T]) Back() *Element[T] {
	return s.l.back()
}

// PopFront removes and returns the first value.
func (s *LinkedSequence[T]) PopFront() (T, bool) {
	return s.pop(s.l.front())
}

// PopBack removes and returns the last value.
func (s *LinkedSequence[T]) PopBack() (T, bool) {
	return s.pop(s.l.back())
}

func (s *LinkedSequence[T]) pop(e *Element[T]) (T, bool) {
	if e == nil {
		var zero T
		return zero, false
	}
	s.l.unlink(e)
	return e.Value, true
}

// Remove unlinks e if it belongs to s and returns its value. e stays valid for the caller and is
// never reused by s.
func (s *LinkedSequence[T]) Remove(e *Element[T]) T {
	if e.list == &s.l {
		s.l.unlink(e)
	}
	return e.Value
}

// All iterates over values front to back.
func (s *LinkedSequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := s.l.front(); e != nil; e = e.Next() {
			if !yield(e.Value) {
				return
			}
		}
	}
}

func (s *LinkedSequence[T]) Len() int {
	return s.l.len
}

// Clear removes every element, keeping up to 256 nodes for reuse.
func (s *LinkedSequence[T]) Clear() {
	s.l.clear()
}
