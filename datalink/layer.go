// Package datalink implements the shared data link layer event loop: the
// busy poll that drains bits off a physical.Layer, reassembles them into
// bytes, hands complete frames to a Variant for interpretation, and frames
// outgoing application bytes on the way out. It is grounded on the
// reference DataLinkLayer/go() event loop, generalized the way
// cla.Convergence separates a shared Manager-driven lifecycle from a
// per-implementation Convergence capability set.
package datalink

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ahmed-k-aly/Flow-control/physical"
	"github.com/ahmed-k-aly/Flow-control/transcript"
)

// Layer runs one endpoint's event loop: frame, transmit, receive,
// reassemble, dispatch, retransmit. The loop itself is variant-agnostic;
// all protocol-specific behavior is delegated to the attached Variant.
type Layer struct {
	physical *physical.Layer
	host     Host
	variant  Variant

	name string
	sink transcript.Sink

	sendBuffer    byteFIFO
	bitBuffer     []bool    // loop-local, single consumer: the event loop itself
	receiveBuffer ByteBuffer // loop-local, single consumer

	stopOnce sync.Once
	stop     chan struct{}
	stopped  chan struct{}
}

// NewLayer creates a Layer bound to phy and host. The caller must attach a
// Variant with SetVariant before calling Run; this two-step construction
// lets a Variant hold a back-reference to the Layer it serves, the way a
// reference-implementation subclass holds an implicit reference to its
// enclosing DataLinkLayer instance.
func NewLayer(phy *physical.Layer, host Host) *Layer {
	return &Layer{
		physical: phy,
		host:     host,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// SetVariant attaches the protocol implementation. Must be called exactly
// once, before Run.
func (l *Layer) SetVariant(v Variant) {
	l.variant = v
}

// SetSink attaches an event sink under the given host name. Every
// subsequent Record call tags its Event with name. A nil sink (the
// default) makes Record a no-op.
func (l *Layer) SetSink(name string, sink transcript.Sink) {
	l.name = name
	l.sink = sink
}

// Record emits an Event through the attached sink, if any. Variants call
// this to report frame sends, receives, damage, retransmissions, and
// their own state, none of which the Layer itself has any opinion about.
func (l *Layer) Record(kind transcript.Kind, data []byte) {
	if l.sink == nil {
		return
	}
	l.sink.Record(transcript.NewEvent(l.name, kind, data))
}

// Send enqueues application bytes for eventual framing and transmission.
// Safe to call from any goroutine.
func (l *Layer) Send(data []byte) {
	l.sendBuffer.push(data)
}

// Deliver hands bytes extracted from an in-order, undamaged frame up to the
// host. Called only from the event loop goroutine, via a Variant's
// FinishFrameReceive.
func (l *Layer) Deliver(data []byte) {
	l.host.Deliver(data)
}

// WriteFrame transmits frame bit-by-bit, most-significant-bit first, via
// the physical layer.
func (l *Layer) WriteFrame(frame []byte) error {
	for _, b := range frame {
		for bit := 7; bit >= 0; bit-- {
			if err := l.physical.Send((b>>uint(bit))&1 == 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Run drives the event loop until Stop is called. It busy-polls: there is
// no sleep between iterations, only the blocking implicit in the thread-safe
// queues it drains.
func (l *Layer) Run() {
	defer close(l.stopped)

	for {
		select {
		case <-l.stop:
			return
		default:
		}

		l.sendNextFrame()
		l.drainBits()
		l.processReceiveBuffer()
		l.variant.CheckTimeout(l)
	}
}

func (l *Layer) sendNextFrame() {
	if l.sendBuffer.len() == 0 || !l.variant.CanSend() {
		return
	}

	data := l.sendBuffer.popUpTo(MaxFrameSize)
	if len(data) == 0 {
		return
	}

	frame := l.variant.CreateFrame(data)
	if err := l.WriteFrame(frame); err != nil {
		log.WithError(err).Warn("datalink: failed to transmit frame")
		return
	}
	l.variant.FinishFrameSend(l, frame)
}

func (l *Layer) drainBits() {
	for {
		bit, ok := l.physical.Retrieve()
		if !ok {
			break
		}
		l.bitBuffer = append(l.bitBuffer, bit)
	}

	for len(l.bitBuffer) >= 8 {
		var b byte
		for i := 0; i < 8; i++ {
			b <<= 1
			if l.bitBuffer[i] {
				b |= 1
			}
		}
		l.receiveBuffer.Append(b)
		l.bitBuffer = l.bitBuffer[8:]
	}
}

func (l *Layer) processReceiveBuffer() {
	if l.receiveBuffer.Len() == 0 {
		return
	}
	if frame, ok := l.variant.ProcessFrame(l, &l.receiveBuffer); ok {
		l.variant.FinishFrameReceive(l, frame)
	}
}

// Stop requests the event loop exit and blocks until it has.
func (l *Layer) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.stopped
}
