package par

import (
	log "github.com/sirupsen/logrus"

	"github.com/ahmed-k-aly/Flow-control/datalink"
	"github.com/ahmed-k-aly/Flow-control/transcript"
)

// processFrame scans rb non-destructively until a decision is reached,
// mirroring PARDataLinkLayer.processFrame: garbage before the first start
// tag is discarded, an escape with no buffered successor leaves the buffer
// untouched, and an unescaped start tag mid-scan restarts extraction rather
// than aborting it. The returned frame, when ok, is either a single
// ackTag byte (ACK) or seq followed by the delivered application bytes.
func processFrame(l *datalink.Layer, rb *datalink.ByteBuffer) (frame []byte, ok bool) {
scan:
	for {
		start := indexOf(rb, startTag)
		if start < 0 {
			if rb.Len() > 0 {
				log.Warn("par: discarding bytes received outside a frame")
				rb.RemoveFront(rb.Len())
			}
			return nil, false
		}
		if start > 0 {
			log.Warn("par: discarding bytes received before a start tag")
			rb.RemoveFront(start)
		}

		var extracted []byte
		for i := 1; i < rb.Len(); {
			b := rb.At(i)
			switch b {
			case escapeTag:
				if i+1 >= rb.Len() {
					return nil, false
				}
				extracted = append(extracted, rb.At(i+1))
				i += 2
			case stopTag:
				rb.RemoveFront(i + 1)
				return classify(l, extracted)
			case startTag:
				log.Warn("par: unescaped start tag inside a frame, restarting extraction")
				rb.RemoveFront(i)
				continue scan
			default:
				extracted = append(extracted, b)
				i++
			}
		}
		// ran out of buffered bytes before a stop tag; wait for more
		return nil, false
	}
}

func indexOf(rb *datalink.ByteBuffer, tag byte) int {
	for i := 0; i < rb.Len(); i++ {
		if rb.At(i) == tag {
			return i
		}
	}
	return -1
}

// classify interprets a fully-extracted, unescaped byte run.
func classify(l *datalink.Layer, extracted []byte) (frame []byte, ok bool) {
	switch len(extracted) {
	case 0:
		return nil, false
	case 1:
		return extracted, true
	default:
		received := extracted[len(extracted)-1]
		body := extracted[:len(extracted)-1]
		if computeParity(body) != received {
			log.Warn("par: damaged frame dropped (parity mismatch)")
			l.Record(transcript.KindFrameDamaged, body)
			return nil, false
		}
		seq := body[len(body)-1]
		data := body[:len(body)-1]
		out := make([]byte, 0, len(data)+1)
		out = append(out, seq)
		out = append(out, data...)
		return out, true
	}
}
