package pooled

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/hemal-shah/poolkit/pool"
)

// Buffer is a pooled *bytes.Buffer. Close resets it and returns it to its BufferPool.
type Buffer struct {
	*bytes.Buffer
	scope
}

// Clear resets the buffer, keeping its underlying storage.
func (b *Buffer) Clear() {
	b.Reset()
}

type bufferSettings struct {
	name             string
	logger           *zap.Logger
	maxRetainedBytes int
}

// BufferOption configures a BufferPool.
type BufferOption func(s *bufferSettings)

// WithMaxRetainedBytes stops the pool from handing out buffers whose capacity grew beyond n bytes.
// Such buffers are destroyed on the next Acquire that finds them idle.
func WithMaxRetainedBytes(n int) BufferOption {
	return func(s *bufferSettings) {
		s.maxRetainedBytes = n
	}
}

// WithBufferName labels the pool in logs and statistics.
func WithBufferName(name string) BufferOption {
	return func(s *bufferSettings) {
		s.name = name
	}
}

// WithBufferLogger sets the pool's logger.
func WithBufferLogger(logger *zap.Logger) BufferOption {
	return func(s *bufferSettings) {
		s.logger = logger
	}
}

// BufferPool is a bounded pool of byte buffers built by a caller supplied function. Unlike the
// collection pools it is not shared per type: every call site decides how its buffers start out.
type BufferPool struct {
	p *pool.Bounded[*Buffer]
}

// NewBufferPool returns a pool keeping at most capacity idle buffers made by supplier.
func NewBufferPool(supplier func() *bytes.Buffer, capacity int, opts ...BufferOption) (*BufferPool, error) {
	if supplier == nil {
		return nil, pool.ErrNilFactory
	}

	s := bufferSettings{name: ShapeBuffer}
	for _, opt := range opts {
		opt(&s)
	}

	var p *pool.Bounded[*Buffer]
	f := scopedFactory(&p, func() *Buffer {
		return &Buffer{Buffer: supplier()}
	}, (*Buffer).Clear)
	if limit := s.maxRetainedBytes; limit > 0 {
		f.ValidateFn = func(b *Buffer) bool {
			return b.Cap() <= limit
		}
	}

	poolOpts := []pool.Option{pool.WithName(s.name)}
	if s.logger != nil {
		poolOpts = append(poolOpts, pool.WithLogger(s.logger))
	}
	p, err := pool.New[*Buffer](f, capacity, poolOpts...)
	if err != nil {
		return nil, err
	}
	return &BufferPool{p: p}, nil
}

// Get returns an empty buffer.
func (b *BufferPool) Get() (*Buffer, error) {
	return b.p.Acquire()
}

// Len returns the number of idle buffers.
func (b *BufferPool) Len() int {
	return b.p.Len()
}

// Stats returns the pool's counters.
func (b *BufferPool) Stats() pool.Stats {
	return b.p.Stats()
}

// BufferPool builds a buffer pool sized by the registry's configuration and includes it in
// Snapshot. Unnamed pools are numbered in creation order: buffer#1, buffer#2 and so on.
func (r *Registry) BufferPool(supplier func() *bytes.Buffer, opts ...BufferOption) (*BufferPool, error) {
	name := fmt.Sprintf("%s#%d", ShapeBuffer, r.buffers.Add(1))
	opts = append([]BufferOption{WithBufferName(name), WithBufferLogger(r.logger)}, opts...)
	b, err := NewBufferPool(supplier, r.cfg.BufferCapacity(), opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Attach(b); err != nil {
		return nil, err
	}
	return b, nil
}
