package host

import (
	"bytes"
	"testing"
	"time"

	_ "github.com/ahmed-k-aly/Flow-control/datalink/par" // registers "PAR"
	"github.com/ahmed-k-aly/Flow-control/medium"
)

// retrieveEventually polls h.Retrieve until it has accumulated want bytes
// or the deadline passes. The busy-loop event loop has no completion
// signal, so end-to-end tests poll the way the reference simulator's
// fixed-pause read does, just without the fixed multi-second sleep.
func retrieveEventually(t *testing.T, h *Host, want int, timeout time.Duration) []byte {
	t.Helper()

	deadline := time.After(timeout)
	var got []byte
	for {
		got = append(got, h.Retrieve()...)
		if len(got) >= want {
			return got
		}
		select {
		case <-deadline:
			return got
		case <-time.After(time.Millisecond):
		}
	}
}

func twoHostsOnPerfectMedium(t *testing.T) (a, b *Host) {
	t.Helper()

	med := medium.NewPerfect()

	a, err := New(med, "PAR", "A", 0)
	if err != nil {
		t.Fatalf("New(a): %v", err)
	}
	b, err = New(med, "PAR", "B", 0)
	if err != nil {
		t.Fatalf("New(b): %v", err)
	}

	go a.Run()
	go b.Run()
	t.Cleanup(func() {
		a.Stop()
		b.Stop()
	})

	return a, b
}

func TestSingleShortPayload(t *testing.T) {
	a, b := twoHostsOnPerfectMedium(t)

	a.Send([]byte("hello"))

	got := retrieveEventually(t, b, len("hello"), time.Second)
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf("received = %q, want %q", got, "hello")
	}
}

func TestTwoFramePayload(t *testing.T) {
	a, b := twoHostsOnPerfectMedium(t)

	payload := []byte("abcdefghi") // 9 bytes: one full frame plus one
	a.Send(payload)

	got := retrieveEventually(t, b, len(payload), time.Second)
	if !bytes.Equal(got, payload) {
		t.Errorf("received = %q, want %q", got, payload)
	}
}

func TestEscapeRequiringPayload(t *testing.T) {
	a, b := twoHostsOnPerfectMedium(t)

	payload := []byte{0x7B, 0x7D, 0x5C}
	a.Send(payload)

	got := retrieveEventually(t, b, len(payload), time.Second)
	if !bytes.Equal(got, payload) {
		t.Errorf("received = %x, want %x", got, payload)
	}
}

func TestSimultaneousBidirectional(t *testing.T) {
	a, b := twoHostsOnPerfectMedium(t)

	a.Send([]byte("ping"))
	b.Send([]byte("pong"))

	gotB := retrieveEventually(t, b, len("ping"), time.Second)
	gotA := retrieveEventually(t, a, len("pong"), time.Second)

	if !bytes.Equal(gotB, []byte("ping")) {
		t.Errorf("B received = %q, want %q", gotB, "ping")
	}
	if !bytes.Equal(gotA, []byte("pong")) {
		t.Errorf("A received = %q, want %q", gotA, "pong")
	}
}

func TestLossyChannelRoundTrip(t *testing.T) {
	med := medium.NewLowNoise(0.02) // elevated from the default to keep the test fast

	a, err := New(med, "PAR", "A", 0)
	if err != nil {
		t.Fatalf("New(a): %v", err)
	}
	b, err := New(med, "PAR", "B", 0)
	if err != nil {
		t.Fatalf("New(b): %v", err)
	}
	go a.Run()
	go b.Run()
	defer func() {
		a.Stop()
		b.Stop()
	}()

	payload := bytes.Repeat([]byte("0123456789"), 20) // 200 bytes
	a.Send(payload)

	got := retrieveEventually(t, b, len(payload), 10*time.Second)
	if !bytes.Equal(got, payload) {
		t.Errorf("received %d bytes, want %d bytes matching the sent payload", len(got), len(payload))
	}
}

func TestUnknownVariantRejected(t *testing.T) {
	med := medium.NewPerfect()

	if _, err := New(med, "NoSuchVariant", "A", 0); err == nil {
		t.Error("expected an error for an unregistered data link layer variant")
	}
}
