package control

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/frudas24/dragbox/internal/box"
	"github.com/frudas24/dragbox/internal/geom"
	"github.com/frudas24/dragbox/internal/viewer"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Options configures the box a Server controls.
type Options struct {
	Initial    geom.Rect
	Limits     box.Limits
	HandleSize float64
	// OnState is called after every controller state change.
	OnState func(box.State)
}

// pointerCapture records which pointer opened the current session.
// Moves and ups from other pointers are dropped until it is released.
type pointerCapture struct {
	pending int
	owner   int
	active  bool
}

// Capture binds the session to the pending pointer.
func (p *pointerCapture) Capture() func() {
	p.owner = p.pending
	p.active = true
	return func() { p.active = false }
}

// allows reports whether pointer id may drive the session.
func (p *pointerCapture) allows(id int) bool {
	return !p.active || p.owner == id
}

// Server handles websocket control input.
type Server struct {
	mu         sync.Mutex
	writeMu    sync.Mutex
	upgrader   websocket.Upgrader
	viewer     *viewer.Viewer
	box        *box.Controller
	capture    *pointerCapture
	handleSize float64
	conn       *websocket.Conn
	connID     string
}

// NewServer creates a control websocket server around a new controller.
func NewServer(v *viewer.Viewer, opts Options) (*Server, error) {
	if v == nil {
		return nil, errors.New("viewer is required")
	}
	capture := &pointerCapture{}
	ctl, err := box.New(opts.Initial, opts.Limits, v.Viewport,
		box.WithCapturer(capture),
		box.WithObserver(opts.OnState),
	)
	if err != nil {
		return nil, err
	}
	return &Server{
		viewer:     v,
		box:        ctl,
		capture:    capture,
		handleSize: opts.HandleSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}, nil
}

// State returns the current controller state.
func (s *Server) State() box.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.box.State()
}

// Limits returns the size limits of the controller.
func (s *Server) Limits() box.Limits {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.box.Limits()
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.viewer.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	id := uuid.NewString()
	if err := s.acceptConn(conn, id); err != nil {
		log.Printf("control: rejected %s: %v", id, err)
		rejectConn(conn, err.Error())
		return
	}
	defer s.cleanupConn(conn)
	log.Printf("control: connected %s from %s", id, r.RemoteAddr)

	if err := s.sendState(conn); err != nil {
		return
	}
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(conn, msg); err != nil {
			return
		}
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	s.connID = id
	return nil
}

// cleanupConn clears the active connection and ends any session it left open.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		if s.box.Cancel() {
			log.Printf("control: %s closed mid-session, cancelled", s.connID)
		}
		log.Printf("control: disconnected %s", s.connID)
		s.conn = nil
		s.connID = ""
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// rejectConn sends a policy violation close and closes the socket.
func rejectConn(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(1*time.Second))
	_ = conn.Close()
}

// handleMessage dispatches a single control message and replies with the new state.
func (s *Server) handleMessage(conn *websocket.Conn, msg Message) error {
	switch msg.T {
	case "down":
		s.handlePointerDown(msg)
	case "move":
		s.handlePointerMove(msg)
	case "up":
		s.handlePointerUp(msg)
	case "cancel":
		s.cancel()
	case "viewport":
		if !s.viewer.SetViewport(geom.Size{W: msg.W, H: msg.H}) {
			log.Printf("control: ignoring viewport %vx%v", msg.W, msg.H)
		}
	case "inputEnabled":
		if msg.Enabled != nil {
			s.viewer.SetInputEnabled(*msg.Enabled)
			if !*msg.Enabled {
				s.cancel()
			}
		}
	default:
		return nil
	}
	return s.sendState(conn)
}

// handlePointerDown opens a drag or resize session for the resolved target.
func (s *Server) handlePointerDown(msg Message) {
	if !s.viewer.InputEnabled() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := geom.Point{X: msg.X, Y: msg.Y}
	handle, ok := box.ResolveTarget(msg.Target, s.box.Rect(), p, s.handleSize)
	if !ok {
		if debugEnabled() {
			log.Printf("debug: control %s down miss target=%q at (%.1f,%.1f)", s.connID, msg.Target, p.X, p.Y)
		}
		return
	}
	s.capture.pending = msg.ID
	started := s.box.Down(p, handle)
	if debugEnabled() {
		log.Printf("debug: control %s down id=%d handle=%q started=%v", s.connID, msg.ID, handle, started)
	}
}

// handlePointerMove recomputes the box for the capturing pointer.
func (s *Server) handlePointerMove(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.capture.allows(msg.ID) {
		return
	}
	if s.box.Move(geom.Point{X: msg.X, Y: msg.Y}) && debugEnabled() {
		r := s.box.Rect()
		log.Printf("debug: control %s rect x=%.1f y=%.1f w=%.1f h=%.1f", s.connID, r.X, r.Y, r.W, r.H)
	}
}

// handlePointerUp ends the session for the capturing pointer.
func (s *Server) handlePointerUp(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.capture.allows(msg.ID) {
		return
	}
	if s.box.Up() && debugEnabled() {
		log.Printf("debug: control %s up id=%d", s.connID, msg.ID)
	}
}

// cancel ends any open session.
func (s *Server) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.box.Cancel()
}

// sendState writes the current state to conn.
func (s *Server) sendState(conn *websocket.Conn) error {
	reply := stateReply(s.State())
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(reply)
}
