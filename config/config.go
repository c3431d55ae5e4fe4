// Package config resolves pool capacities from defaults and optional YAML overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// CollectionMultiplier scales the base size for collection shaped pools.
	CollectionMultiplier = 10
	// BufferMultiplier scales the base size for buffer pools.
	BufferMultiplier = 1

	minBaseSize = 4

	bufferShape = "buffer"
)

// KnownShapes lists the shape names accepted as override keys.
var KnownShapes = []string{
	"sequence",
	"linked_sequence",
	"hash_map",
	"linked_map",
	"identity_map",
	"set",
	"sorted_set",
	"queue",
	bufferShape,
}

// DefaultBaseSize is the library-wide base pool size: GOMAXPROCS, but never below 4.
func DefaultBaseSize() int {
	return max(runtime.GOMAXPROCS(0), minBaseSize)
}

// Pools configures pool capacities. A shape's capacity is its override when present, otherwise
// BaseSize times the multiplier of its kind.
type Pools struct {
	BaseSize             int            `yaml:"baseSize"`
	CollectionMultiplier int            `yaml:"collectionMultiplier"`
	BufferMultiplier     int            `yaml:"bufferMultiplier"`
	Overrides            map[string]int `yaml:"overrides"`
}

// Default returns the built-in configuration.
func Default() Pools {
	return Pools{
		BaseSize:             DefaultBaseSize(),
		CollectionMultiplier: CollectionMultiplier,
		BufferMultiplier:     BufferMultiplier,
		Overrides:            map[string]int{},
	}
}

// Capacity returns the capacity for a collection shape.
func (c Pools) Capacity(shape string) int {
	if n, ok := c.Overrides[shape]; ok {
		return n
	}
	return c.BaseSize * c.CollectionMultiplier
}

// BufferCapacity returns the default capacity for buffer pools.
func (c Pools) BufferCapacity() int {
	if n, ok := c.Overrides[bufferShape]; ok {
		return n
	}
	return c.BaseSize * c.BufferMultiplier
}

// Validate reports the first invalid setting.
func (c Pools) Validate() error {
	if c.BaseSize <= 0 {
		return fmt.Errorf("baseSize must be > 0, got %d", c.BaseSize)
	}
	if c.CollectionMultiplier <= 0 {
		return fmt.Errorf("collectionMultiplier must be > 0, got %d", c.CollectionMultiplier)
	}
	if c.BufferMultiplier <= 0 {
		return fmt.Errorf("bufferMultiplier must be > 0, got %d", c.BufferMultiplier)
	}
	for _, shape := range c.Shapes() {
		if !slices.Contains(KnownShapes, shape) {
			return fmt.Errorf("overrides.%s: unknown shape, want one of %v", shape, KnownShapes)
		}
		if n := c.Overrides[shape]; n <= 0 {
			return fmt.Errorf("overrides.%s must be > 0, got %d", shape, n)
		}
	}
	return nil
}

// Shapes returns the overridden shape names in sorted order.
func (c Pools) Shapes() []string {
	shapes := make([]string, 0, len(c.Overrides))
	for shape := range c.Overrides {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)
	return shapes
}

// Load reads a YAML file on top of Default. An empty path returns Default.
func Load(path string) (Pools, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Pools{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses YAML from r on top of Default, normalises override keys and validates the result.
func Decode(r io.Reader) (Pools, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Pools{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Pools{}, fmt.Errorf("unmarshal config: %w", err)
	}

	normalised := make(map[string]int, len(cfg.Overrides))
	for shape, n := range cfg.Overrides {
		key := strings.ToLower(strings.TrimSpace(shape))
		if _, exists := normalised[key]; exists {
			return Pools{}, fmt.Errorf("duplicate override for shape %q", key)
		}
		normalised[key] = n
	}
	cfg.Overrides = normalised

	if err := cfg.Validate(); err != nil {
		return Pools{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
