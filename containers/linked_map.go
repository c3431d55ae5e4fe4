package containers

import "iter"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LinkedMap is a hash map that remembers insertion order. Updating an existing key keeps its
// original position.
type LinkedMap[K comparable, V any] struct {
	index map[K]*Element[entry[K, V]]
	order list[entry[K, V]]
}

// NewLinkedMap returns an empty map sized for capacity entries.
func NewLinkedMap[K comparable, V any](capacity int) *LinkedMap[K, V] {
	m := &LinkedMap[K, V]{index: make(map[K]*Element[entry[K, V]], max(capacity, 0))}
	m.order.lazyInit()
	return m
}

// Put stores v under k and returns the previous value, if any.
func (m *LinkedMap[K, V]) Put(k K, v V) (prev V, replaced bool) {
	if e, ok := m.index[k]; ok {
		prev = e.Value.value
		e.Value.value = v
		return prev, true
	}
	m.order.lazyInit()
	m.index[k] = m.order.insertAfter(entry[K, V]{key: k, value: v}, m.order.root.prev)
	return prev, false
}

// Get returns the value stored under k.
func (m *LinkedMap[K, V]) Get(k K) (V, bool) {
	if e, ok := m.index[k]; ok {
		return e.Value.value, true
	}
	var zero V
	return zero, false
}

// Has reports whether k is present.
func (m *LinkedMap[K, V]) Has(k K) bool {
	_, ok := m.index[k]
	return ok
}

// Delete removes k and returns its value.
func (m *LinkedMap[K, V]) Delete(k K) (V, bool) {
	e, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := e.Value.value
	delete(m.index, k)
	m.order.unlink(e)
	m.order.recycle(e)
	return v, true
}

// Oldest returns the earliest inserted entry still present.
func (m *LinkedMap[K, V]) Oldest() (K, V, bool) {
	return m.at(m.order.front())
}

// Newest returns the latest inserted entry.
func (m *LinkedMap[K, V]) Newest() (K, V, bool) {
	return m.at(m.order.back())
}

func (m *LinkedMap[K, V]) at(e *Element[entry[K, V]]) (K, V, bool) {
	if e == nil {
		var k K
		var v V
		return k, v, false
	}
	return e.Value.key, e.Value.value, true
}

// All iterates over the entries in insertion order.
func (m *LinkedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for e := m.order.front(); e != nil; e = e.Next() {
			if !yield(e.Value.key, e.Value.value) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (m *LinkedMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.order.len)
	for e := m.order.front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.key)
	}
	return keys
}

func (m *LinkedMap[K, V]) Len() int {
	return len(m.index)
}

// Clear removes every entry, keeping the map buckets and up to 256 list nodes.
func (m *LinkedMap[K, V]) Clear() {
	clear(m.index)
	m.order.clear()
}
