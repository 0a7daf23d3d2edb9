// Package transcript records simulation events (frames sent, frames
// received, damaged frames, retransmissions, deliveries) to an append-only
// CBOR log for later inspection. It is a pure observer: nothing here feeds
// back into the data link layer's send/receive path. Grounded on
// cla/soclp's Message CBOR envelope (github.com/dtn7/cboring) and
// bundle/crc.go's use of github.com/howeyc/crc16 as an integrity digest.
package transcript

import (
	"fmt"
	"io"

	"github.com/dtn7/cboring"
	"github.com/howeyc/crc16"
)

// Kind identifies what happened at an event's Host.
type Kind uint64

const (
	KindFrameSent      Kind = 0
	KindFrameReceived  Kind = 1
	KindFrameDamaged   Kind = 2
	KindRetransmission Kind = 3
	KindDelivery       Kind = 4
	KindAckSent        Kind = 5
	KindAckReceived    Kind = 6

	// KindState carries a sender/receiver state snapshot rather than a
	// one-off occurrence: Bytes is exactly [seqSend, seqRecv, awaitingAck],
	// the last byte 0 or 1. PAR emits one after every frame sent, frame
	// received, ACK received and retransmission (not after a damaged frame)
	// so a subscriber can track the state machine without replaying history.
	KindState Kind = 7
)

func (k Kind) String() string {
	switch k {
	case KindFrameSent:
		return "frame-sent"
	case KindFrameReceived:
		return "frame-received"
	case KindFrameDamaged:
		return "frame-damaged"
	case KindRetransmission:
		return "retransmission"
	case KindDelivery:
		return "delivery"
	case KindAckSent:
		return "ack-sent"
	case KindAckReceived:
		return "ack-received"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Sink receives Events as a simulation produces them. transcript.Recorder
// and monitor.Server both implement it; a datalink.Layer holds one to feed
// events out as they occur, without knowing which (if either) it is.
type Sink interface {
	Record(Event)
}

var crcTable = crc16.MakeTable(crc16.CCITT)

// Event is one recorded occurrence, tagged by which host it happened on.
type Event struct {
	Host  string
	Kind  Kind
	Bytes []byte

	// Digest is a CRC16/CCITT checksum of Bytes, computed at construction
	// time. It exists purely so a transcript reader can flag corruption in
	// the log itself; it plays no role in the simulated protocol, which
	// uses its own XOR parity on the wire.
	Digest uint16
}

// NewEvent builds an Event, computing its digest over data.
func NewEvent(host string, kind Kind, data []byte) Event {
	return Event{
		Host:   host,
		Kind:   kind,
		Bytes:  append([]byte(nil), data...),
		Digest: crc16.Checksum(data, crcTable),
	}
}

// Verify reports whether Digest still matches Bytes.
func (e Event) Verify() bool {
	return e.Digest == crc16.Checksum(e.Bytes, crcTable)
}

// MarshalCbor encodes e as a CBOR array: [host, kind, bytes, digest].
func (e *Event) MarshalCbor(w io.Writer) error {
	if err := cboring.WriteArrayLength(4, w); err != nil {
		return err
	}
	if err := cboring.WriteTextString(e.Host, w); err != nil {
		return err
	}
	if err := cboring.WriteUInt(uint64(e.Kind), w); err != nil {
		return err
	}
	if err := cboring.WriteByteString(e.Bytes, w); err != nil {
		return err
	}
	if err := cboring.WriteUInt(uint64(e.Digest), w); err != nil {
		return err
	}
	return nil
}

// UnmarshalCbor decodes e from the array MarshalCbor produces.
func (e *Event) UnmarshalCbor(r io.Reader) error {
	n, err := cboring.ReadArrayLength(r)
	if err != nil {
		return err
	}
	if n != 4 {
		return fmt.Errorf("transcript: expected array of length 4, got %d", n)
	}

	if e.Host, err = cboring.ReadTextString(r); err != nil {
		return err
	}

	kind, err := cboring.ReadUInt(r)
	if err != nil {
		return err
	}
	e.Kind = Kind(kind)

	if e.Bytes, err = cboring.ReadByteString(r); err != nil {
		return err
	}

	digest, err := cboring.ReadUInt(r)
	if err != nil {
		return err
	}
	e.Digest = uint16(digest)

	return nil
}
