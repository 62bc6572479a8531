package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// Frame is one server-sent event.
type Frame struct {
	Event string
	Data  []byte
}

// StreamManager handles active SSE connections per session.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Frame]struct{}
}

// NewStreamManager creates an empty manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan Frame]struct{}),
	}
}

// Subscribe registers a listener for sessionID. The returned cancel is idempotent.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan Frame, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Frame, 32)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan Frame]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		subs, ok := sm.subscribers[sessionID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(sm.subscribers, sessionID)
		}
	}
}

// Broadcast sends a frame to every listener of sessionID. Slow listeners drop frames.
func (sm *StreamManager) Broadcast(sessionID string, f Frame) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- f:
		default:
			slog.Warn("SSE: client buffer full, dropping frame", "session_id", sessionID, "event", f.Event)
		}
	}
}

// BroadcastJSON encodes v and broadcasts it as event.
func (sm *StreamManager) BroadcastJSON(sessionID, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("SSE: encode frame failed", "session_id", sessionID, "event", event, "err", err)
		return
	}
	sm.Broadcast(sessionID, Frame{Event: event, Data: data})
}

// CloseSession ends every stream of sessionID.
func (sm *StreamManager) CloseSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers[sessionID] {
		close(ch)
	}
	delete(sm.subscribers, sessionID)
}

// Listeners returns the number of open streams for sessionID.
func (sm *StreamManager) Listeners(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// serveStream writes frames for sessionID until the client leaves or the session ends.
// snapshot, when set, is taken after the subscription is registered and sent
// right after the connection is confirmed.
func (s *Server) serveStream(w http.ResponseWriter, r *http.Request, sessionID string, snapshot func() any) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SSE: streaming not supported")
		return
	}

	ch, cancel := s.streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if snapshot != nil {
		writeFrame(w, Frame{Event: "snapshot", Data: mustJSON(snapshot())})
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected", "session_id", sessionID)
			return
		case f, ok := <-ch:
			if !ok {
				return
			}
			writeFrame(w, f)
			flusher.Flush()
		}
	}
}

func writeFrame(w http.ResponseWriter, f Frame) {
	if f.Event != "" {
		fmt.Fprintf(w, "event: %s\n", f.Event)
	}
	fmt.Fprintf(w, "data: %s\n\n", f.Data)
}
