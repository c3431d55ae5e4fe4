package containers

// maxFreeNodes bounds the nodes a list keeps for reuse after Clear.
const maxFreeNodes = 256

// Element is a node of a LinkedSequence.
type Element[T any] struct {
	next, prev *Element[T]
	list       *list[T]

	Value T
}

// Next returns the following element or nil.
func (e *Element[T]) Next() *Element[T] {
	if p := e.next; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// Prev returns the preceding element or nil.
func (e *Element[T]) Prev() *Element[T] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// list is a circular doubly linked list with a sentinel root. Cleared nodes are kept on a
// singly linked free list threaded through next.
type list[T any] struct {
	root  Element[T]
	len   int
	free  *Element[T]
	nfree int
}

func (l *list[T]) lazyInit() {
	if l.root.next == nil {
		l.root.next = &l.root
		l.root.prev = &l.root
	}
}

func (l *list[T]) front() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

func (l *list[T]) back() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

func (l *list[T]) node(v T) *Element[T] {
	e := l.free
	if e == nil {
		return &Element[T]{Value: v}
	}
	l.free = e.next
	l.nfree--
	e.next = nil
	e.Value = v
	return e
}

func (l *list[T]) insertAfter(v T, at *Element[T]) *Element[T] {
	l.lazyInit()
	e := l.node(v)
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = l
	l.len++
	return e
}

func (l *list[T]) unlink(e *Element[T]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil
	e.prev = nil
	e.list = nil
	l.len--
}

// recycle parks an unlinked node for reuse. The caller guarantees no one else references e.
func (l *list[T]) recycle(e *Element[T]) {
	var zero T
	e.Value = zero
	if l.nfree >= maxFreeNodes {
		return
	}
	e.next = l.free
	l.free = e
	l.nfree++
}

func (l *list[T]) clear() {
	for e := l.front(); e != nil; {
		next := e.Next()
		l.unlink(e)
		l.recycle(e)
		e = next
	}
}
