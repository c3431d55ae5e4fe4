// Package stress drives many goroutines through acquire/use/close cycles on one pooled shape and
// counts every time a worker sees state it did not write.
package stress

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/andrew-d/csmrand"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hemal-shah/poolkit/internal/utils"
	"github.com/hemal-shah/poolkit/pool"
	"github.com/hemal-shah/poolkit/pooled"
)

const (
	defaultMaxFill = 8

	// maxBufferWorkers keeps byte-sized worker tags distinct in the buffer workload.
	maxBufferWorkers = 255
)

// ErrUnknownShape is returned for a shape the runner has no workload for.
var ErrUnknownShape = errors.New("unknown shape")

// Shapes lists every shape Run accepts.
var Shapes = append(append([]string{}, pooled.Shapes...), pooled.ShapeBuffer)

// Config describes one run.
type Config struct {
	Workers int
	Cycles  int
	Shape   string
	// MaxFill bounds how many entries a worker writes per cycle. Each cycle picks a random
	// count in [1, MaxFill].
	MaxFill int
}

func (c Config) validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if c.Cycles <= 0 {
		return fmt.Errorf("cycles must be > 0, got %d", c.Cycles)
	}
	if c.MaxFill < 0 {
		return fmt.Errorf("max fill must be >= 0, got %d", c.MaxFill)
	}
	if c.Shape == pooled.ShapeBuffer && c.Workers > maxBufferWorkers {
		return fmt.Errorf("buffer workload supports at most %d workers, got %d", maxBufferWorkers, c.Workers)
	}
	return nil
}

// Report summarises a run.
type Report struct {
	RunID       string        `json:"run_id"`
	Shape       string        `json:"shape"`
	Workers     int           `json:"workers"`
	Cycles      int           `json:"cycles"`
	Operations  uint64        `json:"operations"`
	Corruptions uint64        `json:"corruptions"`
	Duration    time.Duration `json:"duration_ns"`
	Pool        pool.Stats    `json:"pool"`
}

// OK reports whether every cycle completed without observing foreign state.
func (r Report) OK() bool {
	return r.Corruptions == 0 && r.Operations == uint64(r.Workers*r.Cycles)
}

// Runner runs stress workloads against the pools of one registry.
type Runner struct {
	registry *pooled.Registry
	logger   *zap.Logger
}

// Option configures a Runner.
type Option func(r *Runner)

// WithLogger sets the runner's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner returns a runner over registry.
func NewRunner(registry *pooled.Registry, opts ...Option) *Runner {
	r := &Runner{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Run starts cfg.Workers goroutines, each performing cfg.Cycles cycles, and waits for them. It
// stops early when ctx is cancelled or a pool operation fails; corruption is counted, not fatal.
func (r *Runner) Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.validate(); err != nil {
		return Report{}, err
	}
	maxFill := cfg.MaxFill
	if maxFill == 0 {
		maxFill = defaultMaxFill
	}

	w, err := newWorkload(r.registry, cfg.Shape, maxFill)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		RunID:   uuid.NewString(),
		Shape:   cfg.Shape,
		Workers: cfg.Workers,
		Cycles:  cfg.Cycles,
	}
	fields := []zap.Field{
		zap.String("run_id", report.RunID),
		zap.String("shape", cfg.Shape),
		zap.Int("workers", cfg.Workers),
		zap.Int("cycles", cfg.Cycles),
	}
	r.logger.Info("Starting stress run", fields...)

	var operations, corruptions atomic.Uint64
	group, cancel := utils.NewGroup(ctx)
	defer cancel(nil)

	start := time.Now()
	group.GoN(cfg.Workers, func(ctx context.Context, worker int) error {
		id := worker + 1
		for i := 0; i < cfg.Cycles; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			corrupt, err := w.cycle(id, csmrand.Intn(maxFill)+1)
			if err != nil {
				return fmt.Errorf("worker %d cycle %d: %w", id, i, err)
			}
			operations.Add(1)
			if corrupt {
				corruptions.Add(1)
			}
		}
		return nil
	})
	err = group.Wait()

	report.Duration = time.Since(start)
	report.Operations = operations.Load()
	report.Corruptions = corruptions.Load()
	report.Pool = w.stats()

	if report.Corruptions > 0 {
		r.logger.Error("Stress run observed foreign state", append(fields, zap.Uint64("corruptions", report.Corruptions))...)
	}
	if err != nil {
		r.logger.Warn("Stress run stopped early", append(fields, zap.Error(err))...)
		return report, err
	}
	r.logger.Info("Finished stress run", append(fields,
		zap.Uint64("operations", report.Operations),
		zap.Duration("duration", report.Duration),
		zap.Int("idle", report.Pool.Idle),
	)...)
	return report, nil
}
