package pool

import "go.uber.org/zap"

// DefaultMaxValidationAttempts bounds how many freshly made objects a single Acquire may
// discard for failing validation before giving up.
const DefaultMaxValidationAttempts = 3

type settings struct {
	name                  string
	logger                *zap.Logger
	maxValidationAttempts int
	prefill               int
}

// Option configures a Bounded pool.
type Option func(s *settings)

// WithName labels the pool in logs and statistics.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithLogger sets the logger. Pools log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMaxValidationAttempts overrides DefaultMaxValidationAttempts. Values below 1 are ignored.
func WithMaxValidationAttempts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxValidationAttempts = n
		}
	}
}

// WithPrefill makes up to n idle objects while constructing the pool. n is capped at the
// pool capacity.
func WithPrefill(n int) Option {
	return func(s *settings) {
		s.prefill = n
	}
}
