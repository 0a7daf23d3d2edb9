package transcript

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Recorder appends Events to a file as a stream of CBOR-encoded records,
// one MarshalCbor call per event, back to back. Safe for concurrent use:
// both hosts' event loops may record through the same Recorder.
type Recorder struct {
	mu   sync.Mutex
	file *os.File
}

// NewRecorder opens (creating if necessary) path for append-only writing.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	return &Recorder{file: f}, nil
}

// Record appends one event.
func (r *Recorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := e.MarshalCbor(r.file); err != nil {
		log.WithError(err).Warn("transcript: failed to record event")
	}
}

// Close flushes and closes the underlying file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}

// multiSink fans one Record call out to every non-nil Sink it holds.
type multiSink []Sink

func (m multiSink) Record(e Event) {
	for _, s := range m {
		s.Record(e)
	}
}

// Multi combines sinks into one, skipping any nil entries. A caller with
// both a Recorder and a monitor.Server, say, wires Multi(rec, mon) into a
// single Layer.SetSink call instead of juggling two.
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
