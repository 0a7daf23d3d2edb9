package transcript

import (
	"path/filepath"
	"testing"
)

func TestRecorderAppendsAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	rec.Record(NewEvent("hostA", KindFrameSent, []byte("one")))
	rec.Record(NewEvent("hostA", KindDelivery, []byte("two")))
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rec2, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("reopen NewRecorder: %v", err)
	}
	defer rec2.Close()
	rec2.Record(NewEvent("hostA", KindFrameReceived, []byte("three")))
}
