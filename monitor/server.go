// Package monitor exposes a read-only view of a running simulation over
// HTTP: a JSON stats snapshot and a live WebSocket event stream. It is
// purely observational — Server.Record is fed events after the fact by
// whatever already produces them (a transcript.Recorder's caller); nothing
// in this package ever reaches back into a datalink.Layer or host.Host.
// Grounded on agent/rest_agent.go (gorilla/mux routing, JSON responses)
// and agent/websocket_agent.go (gorilla/websocket upgrade-and-stream).
package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/ahmed-k-aly/Flow-control/transcript"
)

// Stats is a point-in-time snapshot of simulation counters and the PAR
// state machine's current gauges.
type Stats struct {
	FramesSent      uint64 `json:"framesSent"`
	FramesReceived  uint64 `json:"framesReceived"`
	AcksSent        uint64 `json:"acksSent"`
	AcksReceived    uint64 `json:"acksReceived"`
	DamagedFrames   uint64 `json:"damagedFrames"`
	Retransmissions uint64 `json:"retransmissions"`
	SeqSend         byte   `json:"seqSend"`
	SeqRecv         byte   `json:"seqRecv"`
	AwaitingAck     bool   `json:"awaitingAck"`
	BytesDelivered  uint64 `json:"bytesDelivered"`
}

// Server serves /stats and /ws over HTTP for one simulation run.
type Server struct {
	httpServer *http.Server
	upgrader   websocket.Upgrader

	mu    sync.Mutex
	stats Stats

	subsMu sync.Mutex
	subs   map[chan transcript.Event]struct{}
}

// NewServer builds a Server bound to addr. Call Start to begin serving.
func NewServer(addr string) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subs: make(map[chan transcript.Event]struct{}),
	}

	router := mux.NewRouter()
	router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)

	s.httpServer = &http.Server{Addr: addr, Handler: router}
	return s
}

// Start begins serving in the background. It returns the listen error if
// serving fails within 100ms, and nil otherwise.
func (s *Server) Start() error {
	startupErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			startupErr <- err
			return
		}
		startupErr <- nil
	}()

	select {
	case err := <-startupErr:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Close shuts the HTTP server down and disconnects every WebSocket
// subscriber.
func (s *Server) Close() error {
	s.subsMu.Lock()
	for ch := range s.subs {
		close(ch)
		delete(s.subs, ch)
	}
	s.subsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Record folds e into the running stats and fans it out to every connected
// WebSocket subscriber.
func (s *Server) Record(e transcript.Event) {
	s.mu.Lock()
	switch e.Kind {
	case transcript.KindFrameSent:
		s.stats.FramesSent++
	case transcript.KindFrameReceived:
		s.stats.FramesReceived++
	case transcript.KindAckSent:
		s.stats.AcksSent++
	case transcript.KindAckReceived:
		s.stats.AcksReceived++
	case transcript.KindRetransmission:
		s.stats.Retransmissions++
	case transcript.KindFrameDamaged:
		s.stats.DamagedFrames++
	case transcript.KindDelivery:
		s.stats.BytesDelivered += uint64(len(e.Bytes))
	case transcript.KindState:
		if len(e.Bytes) == 3 {
			s.stats.SeqSend = e.Bytes[0]
			s.stats.SeqRecv = e.Bytes[1]
			s.stats.AwaitingAck = e.Bytes[2] != 0
		}
	}
	s.mu.Unlock()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
			log.Warn("monitor: subscriber too slow, dropping event")
		}
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot := s.stats
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.WithError(err).Warn("monitor: failed to write stats response")
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("monitor: websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch := make(chan transcript.Event, 16)
	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	defer func() {
		s.subsMu.Lock()
		delete(s.subs, ch)
		s.subsMu.Unlock()
	}()

	for e := range ch {
		if err := conn.WriteJSON(struct {
			Host string `json:"host"`
			Kind string `json:"kind"`
			Size int    `json:"size"`
		}{e.Host, e.Kind.String(), len(e.Bytes)}); err != nil {
			return
		}
	}
}
