package pooled

import (
	"cmp"

	"github.com/hemal-shah/poolkit/containers"
	"github.com/hemal-shah/poolkit/pool"
)

// Set is a pooled containers.Set.
type Set[T comparable] struct {
	*containers.Set[T]
	scope
}

// SetPool returns r's pool of sets of T.
func SetPool[T comparable](r *Registry) (*pool.Bounded[*Set[T]], error) {
	return lookup(r, ShapeSet, typeName[T](), func() *Set[T] {
		return &Set[T]{Set: containers.NewSet[T](0)}
	})
}

// AcquireSet takes an empty set from r.
func AcquireSet[T comparable](r *Registry) (*Set[T], error) {
	p, err := SetPool[T](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetSet takes an empty set from the default registry.
func GetSet[T comparable]() (*Set[T], error) {
	return AcquireSet[T](Default())
}

// SortedSet is a pooled containers.SortedSet.
type SortedSet[T cmp.Ordered] struct {
	*containers.SortedSet[T]
	scope
}

// SortedSetPool returns r's pool of sorted sets of T.
func SortedSetPool[T cmp.Ordered](r *Registry) (*pool.Bounded[*SortedSet[T]], error) {
	return lookup(r, ShapeSortedSet, typeName[T](), func() *SortedSet[T] {
		return &SortedSet[T]{SortedSet: containers.NewSortedSet[T]()}
	})
}

// AcquireSortedSet takes an empty sorted set from r.
func AcquireSortedSet[T cmp.Ordered](r *Registry) (*SortedSet[T], error) {
	p, err := SortedSetPool[T](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetSortedSet takes an empty sorted set from the default registry.
func GetSortedSet[T cmp.Ordered]() (*SortedSet[T], error) {
	return AcquireSortedSet[T](Default())
}
