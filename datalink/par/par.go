package par

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ahmed-k-aly/Flow-control/datalink"
	"github.com/ahmed-k-aly/Flow-control/physical"
	"github.com/ahmed-k-aly/Flow-control/transcript"
)

// DefaultRetransmitTimeout is how long the sender waits for an ACK before
// resending the last frame, absent a configured override.
const DefaultRetransmitTimeout = 100 * time.Millisecond

// PAR holds one endpoint's sender and receiver state. Both are loop-local:
// every method here runs exclusively on the owning datalink.Layer's event
// loop goroutine, so neither needs its own lock (datalink.Layer.sendBuffer
// is the only thing crossing a goroutine boundary).
type PAR struct {
	timeout time.Duration

	// sender state
	seqSend     byte
	awaitingAck bool
	lastFrame   []byte
	timerStart  time.Time

	// receiver state
	seqRecv byte
}

// New creates a PAR variant with both sequence numbers starting at 0 and
// the default retransmission timeout.
func New() *PAR {
	return NewWithTimeout(DefaultRetransmitTimeout)
}

// NewWithTimeout creates a PAR variant with a specific retransmission
// timeout, e.g. one read from a configuration profile.
func NewWithTimeout(timeout time.Duration) *PAR {
	return &PAR{timeout: timeout}
}

// CanSend implements datalink.Variant: stop-and-wait forbids a new frame
// while the previous one is unacknowledged.
func (p *PAR) CanSend() bool {
	return !p.awaitingAck
}

// CreateFrame implements datalink.Variant.
func (p *PAR) CreateFrame(data []byte) []byte {
	return createFrame(data, p.seqSend)
}

// ProcessFrame implements datalink.Variant.
func (p *PAR) ProcessFrame(l *datalink.Layer, rb *datalink.ByteBuffer) ([]byte, bool) {
	return processFrame(l, rb)
}

// FinishFrameSend implements datalink.Variant: arms the retransmission
// timer over the just-sent frame and records it as sent.
func (p *PAR) FinishFrameSend(l *datalink.Layer, frame []byte) {
	p.arm(frame)
	l.Record(transcript.KindFrameSent, frame)
	p.recordState(l)
}

// arm (re)starts the retransmission timer over frame, without recording
// any event — CheckTimeout's retransmit path reports separately, as a
// retransmission rather than a fresh send.
func (p *PAR) arm(frame []byte) {
	p.awaitingAck = true
	p.lastFrame = frame
	p.timerStart = time.Now()
}

// FinishFrameReceive implements datalink.Variant, dispatching an ACK to the
// sender state or a data frame to the receiver state. A data frame always
// gets an ACK back, even when it is a duplicate the receiver will not
// deliver — that repeated ACK is what recovers a peer stuck retransmitting
// because its previous ACK was lost.
func (p *PAR) FinishFrameReceive(l *datalink.Layer, frame []byte) {
	if len(frame) == 1 && frame[0] == ackTag {
		p.awaitingAck = false
		p.lastFrame = nil
		p.timerStart = time.Time{}
		p.seqSend ^= 1
		l.Record(transcript.KindAckReceived, nil)
		p.recordState(l)
		return
	}

	l.Record(transcript.KindFrameReceived, frame)

	seq, data := frame[0], frame[1:]

	ack := ackFrame()
	if err := l.WriteFrame(ack); err != nil {
		log.WithError(err).Warn("par: failed to send ack")
	} else {
		l.Record(transcript.KindAckSent, ack)
	}

	if seq != p.seqRecv {
		log.WithField("seq", seq).Debug("par: duplicate frame, ack resent, not delivered")
		p.recordState(l)
		return
	}

	p.seqRecv ^= 1
	l.Deliver(data)
	l.Record(transcript.KindDelivery, data)
	p.recordState(l)
}

// CheckTimeout implements datalink.Variant.
func (p *PAR) CheckTimeout(l *datalink.Layer) {
	if !p.awaitingAck {
		return
	}
	if time.Since(p.timerStart) <= p.timeout {
		return
	}

	if err := l.WriteFrame(p.lastFrame); err != nil {
		log.WithError(err).Warn("par: retransmit failed")
		return
	}
	p.arm(p.lastFrame)
	l.Record(transcript.KindRetransmission, p.lastFrame)
	p.recordState(l)
}

// recordState reports the current sender/receiver state as a single Event,
// alongside whatever occurrence just changed it.
func (p *PAR) recordState(l *datalink.Layer) {
	awaiting := byte(0)
	if p.awaitingAck {
		awaiting = 1
	}
	l.Record(transcript.KindState, []byte{p.seqSend, p.seqRecv, awaiting})
}

func init() {
	datalink.Register("PAR", func(phy *physical.Layer, host datalink.Host, cfg datalink.Config) (*datalink.Layer, error) {
		l := datalink.NewLayer(phy, host)
		timeout := cfg.RetransmitTimeout
		if timeout <= 0 {
			timeout = DefaultRetransmitTimeout
		}
		l.SetVariant(NewWithTimeout(timeout))
		return l, nil
	})
}
