package pooled

import (
	"github.com/hemal-shah/poolkit/containers"
	"github.com/hemal-shah/poolkit/pool"
)

// Sequence is a pooled containers.Sequence.
type Sequence[T any] struct {
	*containers.Sequence[T]
	scope
}

// SequencePool returns r's pool of sequences of T.
func SequencePool[T any](r *Registry) (*pool.Bounded[*Sequence[T]], error) {
	return lookup(r, ShapeSequence, typeName[T](), func() *Sequence[T] {
		return &Sequence[T]{Sequence: containers.NewSequence[T](0)}
	})
}

// AcquireSequence takes an empty sequence from r.
func AcquireSequence[T any](r *Registry) (*Sequence[T], error) {
	p, err := SequencePool[T](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetSequence takes an empty sequence from the default registry.
func GetSequence[T any]() (*Sequence[T], error) {
	return AcquireSequence[T](Default())
}

// LinkedSequence is a pooled containers.LinkedSequence.
type LinkedSequence[T any] struct {
	*containers.LinkedSequence[T]
	scope
}

// LinkedSequencePool returns r's pool of linked sequences of T.
func LinkedSequencePool[T any](r *Registry) (*pool.Bounded[*LinkedSequence[T]], error) {
	return lookup(r, ShapeLinkedSequence, typeName[T](), func() *LinkedSequence[T] {
		return &LinkedSequence[T]{LinkedSequence: containers.NewLinkedSequence[T]()}
	})
}

// AcquireLinkedSequence takes an empty linked sequence from r.
func AcquireLinkedSequence[T any](r *Registry) (*LinkedSequence[T], error) {
	p, err := LinkedSequencePool[T](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetLinkedSequence takes an empty linked sequence from the default registry.
func GetLinkedSequence[T any]() (*LinkedSequence[T], error) {
	return AcquireLinkedSequence[T](Default())
}

// Queue is a pooled containers.Queue.
type Queue[T any] struct {
	*containers.Queue[T]
	scope
}

// QueuePool returns r's pool of queues of T.
func QueuePool[T any](r *Registry) (*pool.Bounded[*Queue[T]], error) {
	return lookup(r, ShapeQueue, typeName[T](), func() *Queue[T] {
		return &Queue[T]{Queue: containers.NewQueue[T]()}
	})
}

// AcquireQueue takes an empty queue from r.
func AcquireQueue[T any](r *Registry) (*Queue[T], error) {
	p, err := QueuePool[T](r)
	if err != nil {
		return nil, err
	}
	return p.Acquire()
}

// GetQueue takes an empty queue from the default registry.
func GetQueue[T any]() (*Queue[T], error) {
	return AcquireQueue[T](Default())
}
