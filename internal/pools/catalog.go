package pools

import (
	"reflect"
	"sync"
)

// Catalog holds at most one value per Go type, built on first request and kept for the
// catalog's lifetime. Lookups after the first are lock-free.
type Catalog struct {
	mu     sync.Mutex
	byType sync.Map // reflect.Type -> value
	order  []any    // protected by mu
}

// Load returns the catalog's S, calling build when there is none yet. build runs at most once
// per type unless it fails, in which case nothing is stored and the next Load retries.
func Load[S any](c *Catalog, build func() (S, error)) (S, error) {
	key := reflect.TypeFor[S]()
	if v, ok := c.byType.Load(key); ok {
		return v.(S), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.byType.Load(key); ok {
		return v.(S), nil
	}

	s, err := build()
	if err != nil {
		return s, err
	}
	c.byType.Store(key, s)
	c.order = append(c.order, s)
	return s, nil
}

// Values returns every stored value in creation order.
func (c *Catalog) Values() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of stored values.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
