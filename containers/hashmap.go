package containers

import "iter"

// HashMap is a hash based mapping from K to V.
type HashMap[K comparable, V any] struct {
	m map[K]V
}

// NewHashMap returns an empty map sized for capacity entries.
func NewHashMap[K comparable, V any](capacity int) *HashMap[K, V] {
	return &HashMap[K, V]{m: make(map[K]V, max(capacity, 0))}
}

// Put stores v under k and returns the previous value, if any.
func (h *HashMap[K, V]) Put(k K, v V) (prev V, replaced bool) {
	prev, replaced = h.m[k]
	h.m[k] = v
	return prev, replaced
}

// Get returns the value stored under k.
func (h *HashMap[K, V]) Get(k K) (V, bool) {
	v, ok := h.m[k]
	return v, ok
}

// Has reports whether k is present.
func (h *HashMap[K, V]) Has(k K) bool {
	_, ok := h.m[k]
	return ok
}

// Delete removes k and returns its value.
func (h *HashMap[K, V]) Delete(k K) (V, bool) {
	v, ok := h.m[k]
	if ok {
		delete(h.m, k)
	}
	return v, ok
}

// All iterates over the entries in unspecified order.
func (h *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range h.m {
			if !yield(k, v) {
				return
			}
		}
	}
}

func (h *HashMap[K, V]) Len() int {
	return len(h.m)
}

// Clear removes every entry; the map keeps its buckets.
func (h *HashMap[K, V]) Clear() {
	clear(h.m)
}
