// Package telemetry exports pool statistics to OpenTelemetry and Prometheus. Both exporters read
// a Source on every collection; nothing is pushed from the pools' hot paths.
package telemetry

import "github.com/hemal-shah/poolkit/pool"

// Source reports the statistics of a set of pools. *pooled.Registry is one.
type Source interface {
	Snapshot() []pool.Stats
}

// counter describes one monotonically increasing pool statistic.
type counter struct {
	name  string
	help  string
	value func(pool.Stats) uint64
}

var counters = []counter{
	{"created", "Objects built by the pool's factory.", func(s pool.Stats) uint64 { return s.Created }},
	{"reused", "Acquires served from the idle queue.", func(s pool.Stats) uint64 { return s.Reused }},
	{"released", "Objects accepted back into the idle queue.", func(s pool.Stats) uint64 { return s.Released }},
	{"dropped", "Releases discarded because the idle queue was full.", func(s pool.Stats) uint64 { return s.Dropped }},
	{"destroyed", "Objects discarded after failing validation.", func(s pool.Stats) uint64 { return s.Destroyed }},
	{"make_errors", "Failed factory calls.", func(s pool.Stats) uint64 { return s.MakeErrors }},
}
