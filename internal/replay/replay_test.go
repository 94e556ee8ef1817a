package replay

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frudas24/dragbox/internal/box"
	"github.com/frudas24/dragbox/internal/geom"
)

const dragScript = `
viewport: {w: 1920, h: 1080}
rect: {x: 100, y: 100, w: 250, h: 250}
handleSize: 10
events:
  - {t: down, x: 150, y: 150, target: body}
  - {t: move, x: 400, y: 300}
  - {t: up}
  - {t: down, x: 600, y: 375}
  - {t: move, x: 800, y: 375}
  - {t: up}
`

// TestRun_DragThenClassifiedResize verifies a drag followed by a hit-tested right resize.
func TestRun_DragThenClassifiedResize(t *testing.T) {
	s, err := Parse([]byte(dragScript))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	steps, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(steps))
	}
	if got := steps[1].State.Rect; got != (geom.Rect{X: 350, Y: 250, W: 250, H: 250}) {
		t.Fatalf("unexpected rect after drag %+v", got)
	}
	if steps[3].State.Session != box.Resizing || steps[3].State.Direction != box.DirRight {
		t.Fatalf("expected right resize, got %+v", steps[3].State)
	}
	if got := steps[4].State.Rect; got != (geom.Rect{X: 350, Y: 250, W: 450, H: 250}) {
		t.Fatalf("unexpected rect after resize %+v", got)
	}
	if !steps[5].Changed || steps[5].State.Session != box.Idle {
		t.Fatalf("unexpected final step %+v", steps[5])
	}
}

// TestRun_ViewportEvent verifies a mid-script viewport change bounds later moves.
func TestRun_ViewportEvent(t *testing.T) {
	s, err := Parse([]byte(`
viewport: {w: 1920, h: 1080}
rect: {x: 100, y: 100, w: 250, h: 250}
events:
  - {t: down, x: 150, y: 150, target: body}
  - {t: viewport, w: 1000, h: 800}
  - {t: move, x: 5000, y: 150}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	steps, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if x := steps[2].State.Rect.X; x != 875 {
		t.Fatalf("expected x=875, got %v", x)
	}
}

// TestRun_CustomLimits verifies script limits replace the defaults.
func TestRun_CustomLimits(t *testing.T) {
	s, err := Parse([]byte(`
viewport: {w: 1920, h: 1080}
rect: {x: 0, y: 0, w: 100, h: 100}
limits: {minWidth: 50, maxWidth: 120, minHeight: 40}
events:
  - {t: down, x: 100, y: 50, target: right}
  - {t: move, x: 400, y: 50}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	steps, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if w := steps[1].State.Rect.W; w != 120 {
		t.Fatalf("expected width capped at 120, got %v", w)
	}
}

// TestRun_Errors verifies bad scripts are reported.
func TestRun_Errors(t *testing.T) {
	if _, err := Parse([]byte(`rect: {x: 0, y: 0, w: 200, h: 300}`)); err == nil {
		t.Fatalf("expected error for missing viewport")
	}

	s, err := Parse([]byte(`
viewport: {w: 800, h: 600}
rect: {x: 0, y: 0, w: 200, h: 300}
events:
  - {t: hover}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := Run(s); err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Fatalf("expected step error, got %v", err)
	}

	s.Rect.W = 10
	s.Events = nil
	if _, err := Run(s); err == nil {
		t.Fatalf("expected error for undersized rect")
	}
}

// TestRun_NonFiniteInputKeepsRectFinite verifies .nan and .inf coordinates never reach the rect.
func TestRun_NonFiniteInputKeepsRectFinite(t *testing.T) {
	s, err := Parse([]byte(`
viewport: {w: 1920, h: 1080}
rect: {x: 100, y: 100, w: 250, h: 250}
events:
  - {t: down, x: .nan, y: 150, target: body}
  - {t: down, x: 150, y: -1.7e308, target: body}
  - {t: move, x: .nan, y: .inf}
  - {t: move, x: 150, y: 1.7e308}
  - {t: cancel}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	steps, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if steps[0].Changed || steps[0].State.Session != box.Idle {
		t.Fatalf("expected NaN down to be ignored, got %+v", steps[0])
	}
	for _, st := range steps {
		if r := st.State.Rect; !r.Finite() || r != (geom.Rect{X: 100, Y: 100, W: 250, H: 250}) {
			t.Fatalf("step %d: expected unchanged finite rect, got %+v", st.Index, r)
		}
	}
	if !steps[4].Changed || steps[4].State.Session != box.Idle {
		t.Fatalf("expected cancel to end the drag, got %+v", steps[4])
	}

	var out bytes.Buffer
	if err := Write(&out, steps, true); err != nil {
		t.Fatalf("expected JSON output to encode, got %v", err)
	}
}

// TestRun_RejectsNonFiniteViewport verifies bad viewport values fail with the step number.
func TestRun_RejectsNonFiniteViewport(t *testing.T) {
	if _, err := Parse([]byte("viewport: {w: .inf, h: 600}\nrect: {x: 0, y: 0, w: 200, h: 300}\n")); err == nil {
		t.Fatalf("expected error for infinite script viewport")
	}
	s, err := Parse([]byte(`
viewport: {w: 800, h: 600}
rect: {x: 0, y: 0, w: 200, h: 300}
events:
  - {t: viewport, w: .nan, h: 600}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := Run(s); err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Fatalf("expected step error, got %v", err)
	}
	s.Rect.X = math.NaN()
	s.Events = nil
	if _, err := Run(s); err == nil {
		t.Fatalf("expected error for NaN rect")
	}
}

// TestLoad_FromFile verifies scripts load from disk and errors name the file.
func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "drag.yml")
	if err := os.WriteFile(good, []byte(dragScript), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	s, err := Load(good)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(s.Events) != 6 {
		t.Fatalf("expected 6 events, got %d", len(s.Events))
	}

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("viewport: [1, 2]\n"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "bad.yml") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

// TestWrite_TextAndJSON verifies both output formats.
func TestWrite_TextAndJSON(t *testing.T) {
	s, _ := Parse([]byte(dragScript))
	steps, err := Run(s)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var text bytes.Buffer
	if err := Write(&text, steps[:2], false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(text.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "x=350 y=250 w=250 h=250 cursor=grabbing") {
		t.Fatalf("unexpected text output %q", text.String())
	}

	var out bytes.Buffer
	if err := Write(&out, steps[:2], true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	dec := json.NewDecoder(&out)
	var first Step
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if first.Index != 1 || first.Event != "down" || first.State.Session != box.Dragging {
		t.Fatalf("unexpected json step %+v", first)
	}
}
