package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/dragbox/internal/config"
	"github.com/frudas24/dragbox/internal/geom"
	"github.com/frudas24/dragbox/internal/viewer"
)

// newTestApp returns an App with stock geometry guarded by password.
func newTestApp(t *testing.T, password string) *App {
	t.Helper()
	cfg := config.Config{
		MinWidth:   150,
		MaxWidth:   500,
		MinHeight:  240,
		Initial:    geom.Rect{X: 100, Y: 100, W: 250, H: 250},
		HandleSize: 10,
		Viewport:   geom.Size{W: 1280, H: 720},
	}
	app, err := New(cfg, viewer.New(password, cfg.Viewport))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return app
}

// TestNew_RejectsInvalidGeometry verifies bad limits fail app construction.
func TestNew_RejectsInvalidGeometry(t *testing.T) {
	cfg := config.Config{MinWidth: 300, MaxWidth: 200, MinHeight: 240, Initial: geom.Rect{W: 250, H: 250}}
	if _, err := New(cfg, viewer.New("", geom.Size{W: 800, H: 600})); err == nil {
		t.Fatalf("expected error for inverted limits")
	}
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for missing viewer")
	}
}

// TestHandleState_Unauthorized verifies /api/state requires authentication.
func TestHandleState_Unauthorized(t *testing.T) {
	app := newTestApp(t, "pw")

	rec := httptest.NewRecorder()
	app.handleState(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// TestHandleLogin_ThenState verifies login unlocks the state endpoint.
func TestHandleLogin_ThenState(t *testing.T) {
	app := newTestApp(t, "pw")

	bad := httptest.NewRecorder()
	app.handleLogin(bad, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"password":"nope"}`)))
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", bad.Code)
	}

	login := httptest.NewRecorder()
	app.handleLogin(login, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"password":"pw"}`)))
	if login.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", login.Code, login.Body.String())
	}

	rec := httptest.NewRecorder()
	app.handleState(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Rect != (geom.Rect{X: 100, Y: 100, W: 250, H: 250}) || resp.Session != "idle" || resp.Cursor != "grab" {
		t.Fatalf("unexpected state: %+v", resp)
	}
	if resp.Limits.MinWidth != 150 || resp.Limits.MaxWidth != 500 || resp.Limits.MinHeight != 240 {
		t.Fatalf("unexpected limits: %+v", resp.Limits)
	}
	if resp.Viewport != (geom.Size{W: 1280, H: 720}) || !resp.Authenticated || !resp.InputEnabled {
		t.Fatalf("unexpected viewer state: %+v", resp)
	}
}

// TestHandleLogin_MethodAndBody verifies request validation.
func TestHandleLogin_MethodAndBody(t *testing.T) {
	app := newTestApp(t, "pw")

	get := httptest.NewRecorder()
	app.handleLogin(get, httptest.NewRequest(http.MethodGet, "/login", nil))
	if get.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", get.Code)
	}

	garbage := httptest.NewRecorder()
	app.handleLogin(garbage, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{`)))
	if garbage.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", garbage.Code)
	}
}

// TestHandleLogout_LocksState verifies logout revokes access.
func TestHandleLogout_LocksState(t *testing.T) {
	app := newTestApp(t, "pw")
	app.viewer.Authenticate("pw")

	out := httptest.NewRecorder()
	app.handleLogout(out, httptest.NewRequest(http.MethodPost, "/logout", nil))
	if out.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", out.Code)
	}

	rec := httptest.NewRecorder()
	app.handleState(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

// TestHandleEvents_StreamsInitialState verifies the feed is primed with the initial box.
func TestHandleEvents_StreamsInitialState(t *testing.T) {
	app := newTestApp(t, "")
	mux := http.NewServeMux()
	app.RegisterRoutes(mux, t.TempDir())
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	event, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read event line: %v", err)
	}
	data, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("read data line: %v", err)
	}
	if event != "event: state\n" || !strings.HasPrefix(data, "data: ") || !strings.Contains(data, `"session":"idle"`) {
		t.Fatalf("unexpected event %q %q", event, data)
	}
}

// TestRegisterRoutes_Favicon verifies the favicon shortcut.
func TestRegisterRoutes_Favicon(t *testing.T) {
	app := newTestApp(t, "")
	mux := http.NewServeMux()
	app.RegisterRoutes(mux, t.TempDir())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
