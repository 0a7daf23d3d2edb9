package monitor

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ahmed-k-aly/Flow-control/transcript"
)

func TestRecordUpdatesStats(t *testing.T) {
	s := NewServer(":0")
	s.Record(transcript.NewEvent("hostA", transcript.KindFrameSent, nil))
	s.Record(transcript.NewEvent("hostB", transcript.KindDelivery, []byte("hello")))
	s.Record(transcript.NewEvent("hostA", transcript.KindRetransmission, nil))

	s.mu.Lock()
	got := s.stats
	s.mu.Unlock()

	if got.FramesSent != 1 {
		t.Errorf("FramesSent = %d, want 1", got.FramesSent)
	}
	if got.BytesDelivered != 5 {
		t.Errorf("BytesDelivered = %d, want 5", got.BytesDelivered)
	}
	if got.Retransmissions != 1 {
		t.Errorf("Retransmissions = %d, want 1", got.Retransmissions)
	}
}

func TestStatsEndpointServesJSON(t *testing.T) {
	s := NewServer("127.0.0.1:18765")
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Close()

	s.Record(transcript.NewEvent("hostA", transcript.KindFrameSent, nil))

	var resp *http.Response
	var err error
	for i := 0; i < 20; i++ {
		resp, err = http.Get("http://127.0.0.1:18765/stats")
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /stats: %v", err)
	}
	defer resp.Body.Close()

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.FramesSent != 1 {
		t.Errorf("FramesSent = %d, want 1", stats.FramesSent)
	}
}
