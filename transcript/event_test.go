package transcript

import (
	"bytes"
	"testing"
)

func TestEventCborRoundTrip(t *testing.T) {
	want := NewEvent("hostA", KindFrameSent, []byte("payload"))

	var buf bytes.Buffer
	if err := want.MarshalCbor(&buf); err != nil {
		t.Fatalf("MarshalCbor: %v", err)
	}

	var got Event
	if err := got.UnmarshalCbor(&buf); err != nil {
		t.Fatalf("UnmarshalCbor: %v", err)
	}

	if got.Host != want.Host || got.Kind != want.Kind || !bytes.Equal(got.Bytes, want.Bytes) || got.Digest != want.Digest {
		t.Errorf("round-tripped event = %+v, want %+v", got, want)
	}
}

func TestEventVerifyDetectsTampering(t *testing.T) {
	e := NewEvent("hostB", KindDelivery, []byte("hello"))
	if !e.Verify() {
		t.Fatal("freshly-built event failed to verify")
	}

	e.Bytes[0] ^= 0xFF
	if e.Verify() {
		t.Error("tampered event still verified")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindFrameSent:      "frame-sent",
		KindFrameReceived:  "frame-received",
		KindFrameDamaged:   "frame-damaged",
		KindRetransmission: "retransmission",
		KindDelivery:       "delivery",
		Kind(99):           "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
