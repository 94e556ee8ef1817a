// Package viewer holds runtime state for the connected client.
package viewer

import (
	"sync"

	"github.com/frudas24/dragbox/internal/geom"
)

// Snapshot represents a read-only view of the current viewer state.
type Snapshot struct {
	Authenticated bool
	InputEnabled  bool
	Viewport      geom.Size
	Reported      bool
}

// Viewer holds runtime state for the connected client.
type Viewer struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	inputEnabled  bool
	viewport      geom.Size
	reported      bool
	fallback      geom.Size
}

// New returns a viewer guarded by password. An empty password disables authentication.
func New(password string, fallback geom.Size) *Viewer {
	return &Viewer{
		password:     password,
		inputEnabled: true,
		fallback:     fallback,
	}
}

// Authenticate validates the password and marks the viewer as authenticated.
func (v *Viewer) Authenticate(pass string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.password == "" || (pass != "" && pass == v.password) {
		v.authenticated = true
		return true
	}
	v.authenticated = false
	return false
}

// Logout clears authentication state.
func (v *Viewer) Logout() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.authenticated = false
}

// IsAuthenticated reports whether the viewer may use the API.
func (v *Viewer) IsAuthenticated() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.password == "" || v.authenticated
}

// SetInputEnabled toggles whether pointer input reaches the controller.
func (v *Viewer) SetInputEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inputEnabled = enabled
}

// InputEnabled reports whether pointer input reaches the controller.
func (v *Viewer) InputEnabled() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.inputEnabled
}

// SetViewport records the viewport size reported by the client.
// Non-positive and non-finite sizes are ignored.
func (v *Viewer) SetViewport(size geom.Size) bool {
	if !size.Usable() {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewport = size
	v.reported = true
	return true
}

// SetFallbackViewport sets the size used until the client reports one.
func (v *Viewer) SetFallbackViewport(size geom.Size) {
	if !size.Usable() {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fallback = size
}

// Viewport returns the client viewport, or the fallback before the first report.
func (v *Viewer) Viewport() geom.Size {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.reported {
		return v.viewport
	}
	return v.fallback
}

// Snapshot returns a copy of the current viewer state.
func (v *Viewer) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	size := v.fallback
	if v.reported {
		size = v.viewport
	}
	return Snapshot{
		Authenticated: v.password == "" || v.authenticated,
		InputEnabled:  v.inputEnabled,
		Viewport:      size,
		Reported:      v.reported,
	}
}
