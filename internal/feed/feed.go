// Package feed broadcasts controller states to read-only renderers over Server-Sent Events.
package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

const keepaliveInterval = 1 * time.Second

// Stream broadcasts JSON frames to connected HTTP clients.
type Stream struct {
	mu          sync.RWMutex
	subs        map[chan []byte]struct{}
	last        []byte
	minInterval time.Duration
	lastPush    time.Time
	trailing    *time.Timer
}

// NewStream creates a new stream with a minimum publish interval.
func NewStream(minInterval time.Duration) *Stream {
	return &Stream{
		subs:        make(map[chan []byte]struct{}),
		minInterval: minInterval,
	}
}

// PublishJSON encodes v and publishes it.
func (s *Stream) PublishJSON(v any) error {
	frame, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Publish(frame)
	return nil
}

// Publish sends a frame to all subscribers with throttling.
// A throttled frame becomes the last frame and is broadcast when the
// throttle window closes, so the final state of a burst is never held back.
func (s *Stream) Publish(frame []byte) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = append([]byte(nil), frame...)
	if wait := s.minInterval - now.Sub(s.lastPush); s.minInterval > 0 && wait > 0 {
		if s.trailing == nil {
			s.trailing = time.AfterFunc(wait, s.flush)
		}
		return
	}
	if s.trailing != nil {
		s.trailing.Stop()
		s.trailing = nil
	}
	s.lastPush = now
	s.broadcast(s.last)
}

// flush broadcasts the last frame at the end of a throttle window.
func (s *Stream) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trailing = nil
	s.lastPush = time.Now()
	s.broadcast(s.last)
}

// broadcast replaces any unread frame in each subscriber with frame.
// Callers hold s.mu.
func (s *Stream) broadcast(frame []byte) {
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- frame:
		default:
		}
	}
}

// Last returns a copy of the most recent frame.
func (s *Stream) Last() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.last...)
}

// Handler serves the event stream to the HTTP client.
func (s *Stream) Handler(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	keep := time.NewTicker(keepaliveInterval)
	defer keep.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame := <-ch:
			if err := writeEvent(w, frame); err != nil {
				return
			}
			fl.Flush()
		case <-keep.C:
			if frame := s.Last(); len(frame) > 0 {
				if err := writeEvent(w, frame); err != nil {
					return
				}
				fl.Flush()
			}
		}
	}
}

// subscribe registers a new client and primes it with the last frame.
func (s *Stream) subscribe() chan []byte {
	ch := make(chan []byte, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	if len(s.last) > 0 {
		ch <- append([]byte(nil), s.last...)
	}
	s.mu.Unlock()
	return ch
}

// unsubscribe removes a client subscription.
func (s *Stream) unsubscribe(ch chan []byte) {
	s.mu.Lock()
	delete(s.subs, ch)
	close(ch)
	s.mu.Unlock()
}

// writeEvent writes a single SSE message.
func writeEvent(w http.ResponseWriter, frame []byte) error {
	if _, err := w.Write([]byte("event: state\ndata: ")); err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n\n"))
	return err
}
