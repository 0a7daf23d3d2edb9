package datalink

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ahmed-k-aly/Flow-control/physical"
)

// ErrUnknownVariant is returned by Create for a data link layer type name
// that no variant has registered under.
var ErrUnknownVariant = errors.New("datalink: unknown variant")

// Config carries the settings a data link layer variant may honor at
// construction time. Not every variant uses every field.
type Config struct {
	// RetransmitTimeout overrides a variant's own default retransmission
	// timeout, where the variant has one. Zero means "use the variant's
	// built-in default".
	RetransmitTimeout time.Duration
}

// Constructor builds a fully-wired Layer (event loop plus attached Variant)
// for one endpoint. Variants register one under their CLI name via init().
type Constructor func(phy *physical.Layer, host Host, cfg Config) (*Layer, error)

var (
	registryMu sync.Mutex
	registry   = make(map[string]Constructor)
)

// Register adds a named data link layer constructor. Mirrors
// medium.Register and, ultimately, cla.Manager.Register: a variant makes
// itself known at init() time rather than being resolved by reflection.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// Create builds the named data link layer, or returns ErrUnknownVariant.
func Create(name string, phy *physical.Layer, host Host, cfg Config) (*Layer, error) {
	registryMu.Lock()
	ctor, ok := registry[name]
	registryMu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return ctor(phy, host, cfg)
}
