package datalink

// MaxFrameSize is the largest number of application bytes a single data
// frame may carry. The event loop never extracts more than this many bytes
// from the send buffer per frame.
const MaxFrameSize = 8

// Host receives bytes a data link layer has finished assembling from
// inbound, in-order, undamaged frames.
type Host interface {
	Deliver(data []byte)
}

// Variant supplies the framing, deframing, and sender/receiver state machine
// behavior that distinguishes one data link layer protocol from another. The
// event loop itself (Layer.Run) is shared; only these hooks vary. This is
// the composition-based stand-in for what the reference implementation
// models as an abstract class with protected hook methods overridden by a
// concrete subclass.
type Variant interface {
	// CreateFrame frames up to MaxFrameSize application bytes for
	// transmission.
	CreateFrame(data []byte) []byte

	// ProcessFrame scans rb for a complete frame, consuming bytes from it
	// as the scan progresses (including bytes belonging to a frame later
	// judged malformed or damaged). It returns ok=false when no decision
	// has yet been reached from the buffered bytes, and also when the frame
	// it reached was dropped as damaged or empty. l is passed through so
	// a damaged-frame decision can be recorded via l.Record.
	ProcessFrame(l *Layer, rb *ByteBuffer) (frame []byte, ok bool)

	// CanSend reports whether the event loop is permitted to extract and
	// transmit a new frame right now.
	CanSend() bool

	// FinishFrameSend is called immediately after frame has been written
	// to the physical layer as an original transmission.
	FinishFrameSend(l *Layer, frame []byte)

	// FinishFrameReceive is called once per frame ProcessFrame returns.
	// It may write further frames (e.g. an ACK) via l.WriteFrame and
	// deliver payload bytes via l.Deliver.
	FinishFrameReceive(l *Layer, frame []byte)

	// CheckTimeout is called once per event loop iteration to drive
	// retransmission.
	CheckTimeout(l *Layer)
}
