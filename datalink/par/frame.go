// Package par implements the Positive-Acknowledgment-with-Retransmission
// data link layer variant: byte-stuffed framing, XOR parity, a one-bit
// alternating sequence number, and a stop-and-wait sender/receiver state
// machine driven by a fixed retransmission timeout. It is grounded on the
// reference PARDataLinkLayer, generalized onto the datalink.Variant
// interface the way cla/mtcp.Client implements cla.ConvergenceSender
// against the shared cla.Convergence lifecycle.
package par

const (
	startTag  byte = 0x7B
	stopTag   byte = 0x7D
	escapeTag byte = 0x5C

	// ackTag is the sole payload byte of an ACK frame.
	ackTag byte = 0x06
)

// createFrame builds the wire bytes for a data frame carrying data (already
// known to be 1..datalink.MaxFrameSize bytes) tagged with seq.
func createFrame(data []byte, seq byte) []byte {
	body := make([]byte, 0, len(data)+1)
	body = append(body, data...)
	body = append(body, seq)

	parity := computeParity(body)

	out := make([]byte, 0, len(body)+4)
	out = append(out, startTag)
	for _, b := range body {
		out = appendEscaped(out, b)
	}
	out = appendEscaped(out, parity)
	out = append(out, stopTag)
	return out
}

// ackFrame is the fixed three-byte acknowledgment frame.
func ackFrame() []byte {
	return []byte{startTag, ackTag, stopTag}
}

func appendEscaped(out []byte, b byte) []byte {
	if b == startTag || b == stopTag || b == escapeTag {
		out = append(out, escapeTag)
	}
	return append(out, b)
}

// computeParity XORs every bit across data, reduced to a single 0/1 byte.
// The parity byte itself is never included in this computation, even when
// checking a received frame — that asymmetry is part of the wire format,
// not an oversight.
func computeParity(data []byte) byte {
	var parity byte
	for _, b := range data {
		for i := 0; i < 8; i++ {
			parity ^= (b >> uint(i)) & 1
		}
	}
	return parity & 1
}
