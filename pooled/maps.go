package pooled

import (
	"github.com/hemal-shah/poolkit/containers"
	"github.com/hemal-shah/poolkit/pool"
)

// HashMap is a pooled containers.HashMap.
type HashMap[K comparable, V any] struct {
	*containers.HashMap[K, V]
	scope
}

// HashMapPool returns r's pool of hash maps from K to V.
func HashMapPool[K comparable, V any](r *Registry) (*pool.Bounded[*HashMap[K, V]], error) {
	return lookup(r, ShapeHashMap, pairName[K, V](), func() *HashMap[K, V] {
		return &HashMap[K, V]{HashMap: containers.NewHashMap[K, V](0)}
	})
}

// AcquireHashMap takes an empty hash map from r.
func AcquireHashMap[K comparable, V any](r *Registry) (*HashMap[K, V], error) {
	p, err := HashMapPool[K, V](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetHashMap takes an empty hash map from the default registry.
func GetHashMap[K comparable, V any]() (*HashMap[K, V], error) {
	return AcquireHashMap[K, V](Default())
}

// LinkedMap is a pooled containers.LinkedMap.
type LinkedMap[K comparable, V any] struct {
	*containers.LinkedMap[K, V]
	scope
}

// LinkedMapPool returns r's pool of insertion ordered maps from K to V.
func LinkedMapPool[K comparable, V any](r *Registry) (*pool.Bounded[*LinkedMap[K, V]], error) {
	return lookup(r, ShapeLinkedMap, pairName[K, V](), func() *LinkedMap[K, V] {
		return &LinkedMap[K, V]{LinkedMap: containers.NewLinkedMap[K, V](0)}
	})
}

// AcquireLinkedMap takes an empty insertion ordered map from r.
func AcquireLinkedMap[K comparable, V any](r *Registry) (*LinkedMap[K, V], error) {
	p, err := LinkedMapPool[K, V](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetLinkedMap takes an empty insertion ordered map from the default registry.
func GetLinkedMap[K comparable, V any]() (*LinkedMap[K, V], error) {
	return AcquireLinkedMap[K, V](Default())
}

// IdentityMap is a pooled containers.IdentityMap.
type IdentityMap[K any, V any] struct {
	*containers.IdentityMap[K, V]
	scope
}

// IdentityMapPool returns r's pool of identity maps from *K to V.
func IdentityMapPool[K any, V any](r *Registry) (*pool.Bounded[*IdentityMap[K, V]], error) {
	return lookup(r, ShapeIdentityMap, pairName[*K, V](), func() *IdentityMap[K, V] {
		return &IdentityMap[K, V]{IdentityMap: containers.NewIdentityMap[K, V](0)}
	})
}

// AcquireIdentityMap takes an empty identity map from r.
func AcquireIdentityMap[K any, V any](r *Registry) (*IdentityMap[K, V], error) {
	p, err := IdentityMapPool[K, V](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetIdentityMap takes an empty identity map from the default registry.
func GetIdentityMap[K any, V any]() (*IdentityMap[K, V], error) {
	return AcquireIdentityMap[K, V](Default())
}
