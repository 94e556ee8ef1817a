// Package control carries pointer input from the browser to the geometry controller.
package control

import (
	"github.com/frudas24/dragbox/internal/box"
	"github.com/frudas24/dragbox/internal/geom"
)

// Message is a control websocket payload sent by the client.
type Message struct {
	T       string  `json:"t"`
	ID      int     `json:"id,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Target  string  `json:"target,omitempty"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// Reply is a control websocket payload sent to the client.
type Reply struct {
	T       string          `json:"t"`
	Rect    geom.Rect       `json:"rect"`
	Session box.SessionKind `json:"session"`
	Dir     box.Direction   `json:"dir,omitempty"`
	Cursor  string          `json:"cursor"`
}

// stateReply wraps a controller state for the wire.
func stateReply(s box.State) Reply {
	return Reply{
		T:       "state",
		Rect:    s.Rect,
		Session: s.Session,
		Dir:     s.Direction,
		Cursor:  s.Cursor,
	}
}
