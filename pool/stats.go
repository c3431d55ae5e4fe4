package pool

import "sync/atomic"

// Stats is a point-in-time view of a pool's counters.
type Stats struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Idle     int    `json:"idle"`

	// Created counts objects built by the factory.
	Created uint64 `json:"created"`
	// Reused counts acquires served from the idle queue.
	Reused uint64 `json:"reused"`
	// Released counts objects accepted back into the idle queue.
	Released uint64 `json:"released"`
	// Dropped counts releases discarded because the idle queue was full.
	Dropped uint64 `json:"dropped"`
	// Destroyed counts objects discarded after failing validation.
	Destroyed uint64 `json:"destroyed"`
	// MakeErrors counts failed factory calls.
	MakeErrors uint64 `json:"make_errors"`
}

type counters struct {
	created    atomic.Uint64
	reused     atomic.Uint64
	released   atomic.Uint64
	dropped    atomic.Uint64
	destroyed  atomic.Uint64
	makeErrors atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Created:    c.created.Load(),
		Reused:     c.reused.Load(),
		Released:   c.released.Load(),
		Dropped:    c.dropped.Load(),
		Destroyed:  c.destroyed.Load(),
		MakeErrors: c.makeErrors.Load(),
	}
}

// Inspector is implemented by anything that can report pool statistics. Every Bounded pool is one.
type Inspector interface {
	Stats() Stats
}
