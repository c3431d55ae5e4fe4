package pooled

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hemal-shah/poolkit/config"
	"github.com/hemal-shah/poolkit/internal"
	"github.com/hemal-shah/poolkit/internal/pools"
	"github.com/hemal-shah/poolkit/pool"
)

// Shape names, also used as keys of config.Pools overrides.
const (
	ShapeSequence       = "sequence"
	ShapeLinkedSequence = "linked_sequence"
	ShapeHashMap        = "hash_map"
	ShapeLinkedMap      = "linked_map"
	ShapeIdentityMap    = "identity_map"
	ShapeSet            = "set"
	ShapeSortedSet      = "sorted_set"
	ShapeQueue          = "queue"
	ShapeBuffer         = "buffer"
)

// Shapes lists every collection shape a Registry pools.
var Shapes = []string{
	ShapeSequence,
	ShapeLinkedSequence,
	ShapeHashMap,
	ShapeLinkedMap,
	ShapeIdentityMap,
	ShapeSet,
	ShapeSortedSet,
	ShapeQueue,
}

var (
	// ErrDefaultInitialized is returned by InitDefault once the default registry exists.
	ErrDefaultInitialized = errors.New("pooled: default registry already initialized")
	// ErrDuplicatePool is returned by Attach when the registry already reports a pool by that name.
	ErrDuplicatePool = errors.New("pooled: duplicate pool name")
)

// Registry owns one bounded pool per container shape and element type. Pools are created on
// first use and live as long as the registry. A Registry is safe for concurrent use.
type Registry struct {
	cfg     config.Pools
	catalog pools.Catalog

	mu       sync.Mutex
	attached []pool.Inspector // protected by mu
	buffers  atomic.Int64

	logger    *zap.Logger
	logFields []zap.Field
}

// RegistryOption configures a Registry.
type RegistryOption func(r *Registry)

// WithLogger sets the logger used by the registry and every pool it creates.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry validates cfg and returns an empty registry.
func NewRegistry(cfg config.Pools, opts ...RegistryOption) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pooled: invalid config: %w", err)
	}

	r := &Registry{
		cfg: cfg,
		logFields: []zap.Field{
			zap.String("registry_id", uuid.NewString()),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	r.logger.Debug("Initialized pool registry", append(r.logFields, zap.Int("base_size", cfg.BaseSize))...)
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// InitDefault builds the process-wide registry from cfg. It must run before the first call to
// Default; afterwards it returns ErrDefaultInitialized.
func InitDefault(cfg config.Pools, opts ...RegistryOption) error {
	initialized := false
	defaultOnce.Do(func() {
		initialized = true
		defaultRegistry, defaultErr = NewRegistry(cfg, opts...)
	})
	if !initialized {
		return ErrDefaultInitialized
	}
	return defaultErr
}

// Default returns the process-wide registry, building it from config.Default when InitDefault
// was never called. It is never torn down.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = NewRegistry(config.Default())
	})
	if defaultRegistry == nil {
		panic(fmt.Errorf("pooled: default registry unavailable: %w", defaultErr))
	}
	return defaultRegistry
}

// Config returns the configuration the registry sizes its pools with.
func (r *Registry) Config() config.Pools {
	return r.cfg
}

// Attach adds an externally built pool to the registry's Snapshot. Pool names label exported
// metrics, so a name already reported by the registry is rejected with ErrDuplicatePool.
func (r *Registry) Attach(i pool.Inspector) error {
	name := i.Stats().Name
	for _, s := range r.Snapshot() {
		if s.Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicatePool, name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attached {
		if a.Stats().Name == name {
			return fmt.Errorf("%w: %q", ErrDuplicatePool, name)
		}
	}
	r.attached = append(r.attached, i)
	return nil
}

// Snapshot returns the statistics of every pool created by or attached to the registry.
func (r *Registry) Snapshot() []pool.Stats {
	values := r.catalog.Values()

	r.mu.Lock()
	attached := make([]pool.Inspector, len(r.attached))
	copy(attached, r.attached)
	r.mu.Unlock()

	out := make([]pool.Stats, 0, len(values)+len(attached))
	for _, v := range values {
		if i, ok := v.(pool.Inspector); ok {
			out = append(out, i.Stats())
		}
	}
	for _, i := range attached {
		out = append(out, i.Stats())
	}
	return out
}

// lookup returns the registry's pool of S, creating it on first use.
func lookup[S scoped](r *Registry, shape string, elem string, build func() S) (*pool.Bounded[S], error) {
	return pools.Load(&r.catalog, func() (*pool.Bounded[S], error) {
		name := fmt.Sprintf("%s[%s]", shape, elem)
		capacity := r.cfg.Capacity(shape)

		var p *pool.Bounded[S]
		p, err := pool.New[S](scopedFactory(&p, build, internal.Passivate[S]), capacity, pool.WithName(name), pool.WithLogger(r.logger))
		if err != nil {
			return nil, fmt.Errorf("pooled: create %s pool: %w", name, err)
		}

		r.logger.Debug("Created pool", append(r.logFields,
			zap.String("shape", shape),
			zap.String("pool", name),
			zap.Int("capacity", capacity),
		)...)
		return p, nil
	})
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func pairName[K, V any]() string {
	return typeName[K]() + "," + typeName[V]()
}
