package containers

import "iter"

// IdentityMap maps objects by pointer identity: two distinct *K holding equal values are
// different keys.
type IdentityMap[K any, V any] struct {
	m map[*K]V
}

// NewIdentityMap returns an empty map sized for capacity entries.
func NewIdentityMap[K any, V any](capacity int) *IdentityMap[K, V] {
	return &IdentityMap[K, V]{m: make(map[*K]V, max(capacity, 0))}
}

// Put stores v under k and returns the previous value, if any.
func (h *IdentityMap[K, V]) Put(k *K, v V) (prev V, replaced bool) {
	prev, replaced = h.m[k]
	h.m[k] = v
	return prev, replaced
}

// Get returns the value stored under k.
func (h *IdentityMap[K, V]) Get(k *K) (V, bool) {
	v, ok := h.m[k]
	return v, ok
}

// Has reports whether k is present.
func (h *IdentityMap[K, V]) Has(k *K) bool {
	_, ok := h.m[k]
	return ok
}

// Delete removes k and returns its value.
func (h *IdentityMap[K, V]) Delete(k *K) (V, bool) {
	v, ok := h.m[k]
	if ok {
		delete(h.m, k)
	}
	return v, ok
}

// All iterates over the entries in unspecified order.
func (h *IdentityMap[K, V]) All() iter.Seq2[*K, V] {
	return func(yield func(*K, V) bool) {
		for k, v := range h.m {
			if !yield(k, v) {
				return
			}
		}
	}
}

func (h *IdentityMap[K, V]) Len() int {
	return len(h.m)
}

// Clear drops every entry, releasing the key objects to the garbage collector.
func (h *IdentityMap[K, V]) Clear() {
	clear(h.m)
}
