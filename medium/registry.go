package medium

import (
	"fmt"
	"sync"

	"github.com/ahmed-k-aly/Flow-control/physical"
)

// Config carries the knobs a medium variant may need at construction time.
// It is populated from config.Profile (see the config package) or left at
// its zero value, in which case each variant falls back to its own default.
type Config struct {
	// NoiseProbability is the per-recipient bit-flip probability used by
	// LowNoise. Zero means "use the built-in default of 0.001".
	NoiseProbability float64
}

// Constructor builds a Medium from a Config. Variants register one under
// their CLI name via init().
type Constructor func(Config) (physical.Medium, error)

var (
	registryMu sync.Mutex
	registry   = make(map[string]Constructor)
)

// Register adds a named medium constructor. Intended to be called from a
// variant's init() function, mirroring how cla.Manager.Register accepts a
// new Convergence implementation rather than resolving one by reflection.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// Create builds the named medium, or returns ErrUnknownVariant.
func Create(name string, cfg Config) (physical.Medium, error) {
	registryMu.Lock()
	ctor, ok := registry[name]
	registryMu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return ctor(cfg)
}
