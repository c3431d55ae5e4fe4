// Package pool implements a bounded, lock-free object pool. Idle objects live in a fixed
// capacity multi-producer/multi-consumer queue; Acquire pops one or builds a new one through the
// Factory, and Release passivates the object and pushes it back, silently dropping it when the
// queue is already full. Neither operation ever blocks.
package pool

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hemal-shah/poolkit/internal/queue"
)

// Bounded is a capacity-limited pool of T. It is safe for concurrent use without external locking.
//
// The pool does not track checked-out objects: Acquire hands ownership to the caller and Release
// takes it back. Releasing an object twice, or using it after Release, is a caller bug the pool
// cannot see. Borrow and the pooled containers add a per-checkout guard on top.
type Bounded[T any] struct {
	name      string
	factory   Factory[T]
	activator Activator[T] // nil when the factory has no Activate step
	idle      *queue.MPMC[T]

	maxValidationAttempts int

	stats counters

	logger    *zap.Logger
	logFields []zap.Field
}

// New builds a pool holding at most capacity idle objects made by factory.
func New[T any](factory Factory[T], capacity int, opts ...Option) (*Bounded[T], error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	s := settings{
		name:                  reflect.TypeFor[T]().String(),
		maxValidationAttempts: DefaultMaxValidationAttempts,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	p := &Bounded[T]{
		name:                  s.name,
		factory:               factory,
		idle:                  queue.New[T](capacity),
		maxValidationAttempts: s.maxValidationAttempts,
		logger:                s.logger,
		logFields: []zap.Field{
			zap.String("pool_id", uuid.NewString()),
			zap.String("pool", s.name),
		},
	}
	if a, ok := factory.(Activator[T]); ok {
		p.activator = a
	}

	for i := 0; i < min(s.prefill, capacity); i++ {
		obj, err := p.make()
		if err != nil {
			return nil, fmt.Errorf("pool %s: prefill: %w", p.name, err)
		}
		p.idle.Offer(obj)
	}

	p.logger.Debug(fmt.Sprintf("Initialized pool with capacity %d", capacity),
		append(p.logFields, zap.Int("prefilled", p.idle.Len()))...)
	return p, nil
}

// Acquire returns an idle object if one is available, otherwise a new one from the factory.
// Idle objects failing validation are destroyed and skipped. Factory errors are returned wrapped
// and are matchable with errors.Is.
func (p *Bounded[T]) Acquire() (T, error) {
	// bounded by capacity so concurrent releases cannot keep an Acquire spinning
	for i := 0; i < p.idle.Cap(); i++ {
		obj, ok := p.idle.Poll()
		if !ok {
			break
		}
		if p.factory.Validate(obj) {
			p.stats.reused.Add(1)
			return p.activate(obj), nil
		}
		p.destroy(obj)
	}

	for attempt := 0; attempt < p.maxValidationAttempts; attempt++ {
		obj, err := p.make()
		if err != nil {
			var zero T
			return zero, fmt.Errorf("pool %s: make: %w", p.name, err)
		}
		if p.factory.Validate(obj) {
			return p.activate(obj), nil
		}
		p.destroy(obj)
	}

	var zero T
	return zero, fmt.Errorf("pool %s: %d fresh objects rejected: %w", p.name, p.maxValidationAttempts, ErrValidationFailed)
}

// Release passivates obj and returns it to the idle queue. When the queue is full obj is dropped
// and left to the garbage collector; the caller is never told. obj must not be used afterwards.
func (p *Bounded[T]) Release(obj T) {
	p.factory.Passivate(obj)
	if p.idle.Offer(obj) {
		p.stats.released.Add(1)
		return
	}

	p.stats.dropped.Add(1)
	if ce := p.logger.Check(zap.DebugLevel, "Idle queue full, dropping released object"); ce != nil {
		ce.Write(p.logFields...)
	}
}

// Len returns the number of idle objects.
func (p *Bounded[T]) Len() int {
	return p.idle.Len()
}

// Cap returns the maximum number of idle objects.
func (p *Bounded[T]) Cap() int {
	return p.idle.Cap()
}

// Name returns the pool's label.
func (p *Bounded[T]) Name() string {
	return p.name
}

// Stats returns the pool's counters.
func (p *Bounded[T]) Stats() Stats {
	s := p.stats.snapshot()
	s.Name = p.name
	s.Capacity = p.idle.Cap()
	s.Idle = p.idle.Len()
	return s
}

var _ Inspector = (*Bounded[any])(nil)

func (p *Bounded[T]) make() (T, error) {
	obj, err := p.factory.Make()
	if err != nil {
		p.stats.makeErrors.Add(1)
		p.logger.Warn("Factory failed to make object", append(p.logFields, zap.Error(err))...)
		return obj, err
	}
	p.stats.created.Add(1)
	return obj, nil
}

func (p *Bounded[T]) activate(obj T) T {
	if p.activator != nil {
		p.activator.Activate(obj)
	}
	return obj
}

func (p *Bounded[T]) destroy(obj T) {
	p.stats.destroyed.Add(1)
	p.logger.Debug("Destroying object that failed validation", p.logFields...)
	p.factory.Destroy(obj)
}
