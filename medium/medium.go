// Package medium implements the shared broadcast substrate that carries
// bits between the physical layers of two or more hosts. Concrete variants
// (Perfect, LowNoise) are grounded on the teacher's Convergence Layer
// Adapters (github.com/dtn7/dtn7-go/cla), which likewise deliver payloads
// between registered endpoints and let a Manager-style registry pick the
// concrete implementation by name.
package medium

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ahmed-k-aly/Flow-control/physical"
)

// ErrUnregisteredSender is returned by Transmit when the sender is not a
// registered client of the medium.
var ErrUnregisteredSender = errors.New("medium: unregistered sender")

// ErrUnknownVariant is returned by Create for a medium type name that no
// variant has registered under.
var ErrUnknownVariant = errors.New("medium: unknown variant")

// broadcaster is the shared bookkeeping used by every medium variant: a set
// of registered physical layers, with broadcast-to-all-but-sender delivery.
// Variants embed it and supply their own per-bit corruption behavior.
type broadcaster struct {
	mu      sync.Mutex
	clients []*physical.Layer
}

// Register adds client to this medium, ignoring a repeat registration (set
// semantics — matches Medium.register in the reference implementation).
func (b *broadcaster) Register(client *physical.Layer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, existing := range b.clients {
		if existing == client {
			return
		}
	}
	b.clients = append(b.clients, client)
}

// recipients returns every registered client other than sender, or
// ErrUnregisteredSender if sender itself never registered.
func (b *broadcaster) recipients(sender *physical.Layer) ([]*physical.Layer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var found bool
	others := make([]*physical.Layer, 0, len(b.clients))
	for _, c := range b.clients {
		if c == sender {
			found = true
			continue
		}
		others = append(others, c)
	}

	if !found {
		return nil, fmt.Errorf("%w: %p", ErrUnregisteredSender, sender)
	}
	return others, nil
}
