package app

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/dragbox/internal/box"
	"github.com/frudas24/dragbox/internal/geom"
	"github.com/frudas24/dragbox/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/events", a.handleEvents)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type limitsResponse struct {
	MinWidth  float64 `json:"minWidth"`
	MaxWidth  float64 `json:"maxWidth"`
	MinHeight float64 `json:"minHeight"`
}

type stateResponse struct {
	Rect          geom.Rect       `json:"rect"`
	Session       box.SessionKind `json:"session"`
	Dir           box.Direction   `json:"dir,omitempty"`
	Cursor        string          `json:"cursor"`
	Viewport      geom.Size       `json:"viewport"`
	Limits        limitsResponse  `json:"limits"`
	HandleSize    float64         `json:"handleSize"`
	InputEnabled  bool            `json:"inputEnabled"`
	Authenticated bool            `json:"authenticated"`
}

// handleLogin authenticates the viewer.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.viewer.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.viewer.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleState returns the box geometry, session and viewer state.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	st := a.control.State()
	lim := a.control.Limits()
	snap := a.viewer.Snapshot()
	resp := stateResponse{
		Rect:     st.Rect,
		Session:  st.Session,
		Dir:      st.Direction,
		Cursor:   st.Cursor,
		Viewport: snap.Viewport,
		Limits: limitsResponse{
			MinWidth:  lim.MinWidth,
			MaxWidth:  lim.MaxWidth,
			MinHeight: lim.MinHeight,
		},
		HandleSize:    a.cfg.HandleSize,
		InputEnabled:  snap.InputEnabled,
		Authenticated: snap.Authenticated,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleEvents streams state changes to read-only renderers.
func (a *App) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	a.feed.Handler(w, r)
}

// requireAuth returns false and writes an error if the viewer is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.viewer.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Printf("static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
