// Package host wires one endpoint's physical layer, data link layer, and
// application-facing send/retrieve buffer together, and gives the pair
// somewhere to run: its own event-loop goroutine. Grounded on the
// reference Host, which performs the same wiring in its constructor and
// runs the data link layer's event loop on its own thread.
package host

import (
	"sync"
	"time"

	"github.com/ahmed-k-aly/Flow-control/datalink"
	"github.com/ahmed-k-aly/Flow-control/physical"
	"github.com/ahmed-k-aly/Flow-control/transcript"
)

// Host binds a physical layer and a data link layer variant, and exposes
// the application-level send/receive surface described in the design: an
// opaque byte sink the driver feeds and later drains.
type Host struct {
	name     string
	physical *physical.Layer
	dll      *datalink.Layer

	mu     sync.Mutex
	buffer []byte
}

// New creates a host attached to medium, running the named data link layer
// variant, identified as name in any events it emits. retransmitTimeout
// overrides the variant's own default retransmission timeout where the
// variant honors it; zero keeps that default. The physical layer registers
// itself with medium as a side effect of construction; the data link layer
// then claims that physical layer, which fails with
// physical.ErrDoubleRegistration only if phy is reused across hosts (never
// the case here, but checked all the same).
func New(medium physical.Medium, dllVariant, name string, retransmitTimeout time.Duration) (*Host, error) {
	phy := physical.New(medium)
	if err := phy.Register(); err != nil {
		return nil, err
	}

	h := &Host{name: name, physical: phy}

	dll, err := datalink.Create(dllVariant, phy, h, datalink.Config{RetransmitTimeout: retransmitTimeout})
	if err != nil {
		return nil, err
	}
	h.dll = dll

	return h, nil
}

// SetSink attaches an event sink that the data link layer will report
// frame sends, receives, damage, retransmissions, and state through.
func (h *Host) SetSink(sink transcript.Sink) {
	h.dll.SetSink(h.name, sink)
}

// Send enqueues data for the data link layer to frame and transmit. Safe
// to call from any goroutine.
func (h *Host) Send(data []byte) {
	h.dll.Send(data)
}

// Deliver implements datalink.Host: it is called by the data link layer's
// event loop goroutine whenever an in-order, undamaged frame completes.
func (h *Host) Deliver(data []byte) {
	h.mu.Lock()
	h.buffer = append(h.buffer, data...)
	h.mu.Unlock()
}

// Retrieve drains and returns every byte delivered so far.
func (h *Host) Retrieve() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := h.buffer
	h.buffer = nil
	return out
}

// Run drives the data link layer's event loop until Stop is called. It
// blocks, so callers run it on its own goroutine — one per host, matching
// the reference implementation's one-thread-per-host model.
func (h *Host) Run() {
	h.dll.Run()
}

// Stop requests the event loop exit and blocks until it has.
func (h *Host) Stop() {
	h.dll.Stop()
}
