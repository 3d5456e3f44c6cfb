package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-ballistics/control"
	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/vmath"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func cellRune(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func inFlight(pos, vel vmath.Vec3F, ticks uint64) engine.Snapshot {
	return engine.Snapshot{
		Position:   pos,
		Velocity:   vel,
		State:      engine.StateInFlight,
		Ticks:      ticks,
		Parameters: engine.DefaultParameters(),
	}
}

func TestScene_DrawsGroundAndStatus(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	scene := NewScene(screen, 10, 16)

	form := control.NewForm(engine.DefaultParameters())
	scene.Draw(Frame{
		Snapshot: engine.Snapshot{State: engine.StateAtRest, Parameters: engine.DefaultParameters()},
		Rows:     form.Rows(),
	})

	ground := scene.Viewport().GroundRow()
	if got := cellRune(screen, 0, ground); got != '─' {
		t.Errorf("Expected ground line at row %d, got %q", ground, got)
	}
	if got := cellRune(screen, OriginMargin, ground); got != '^' {
		t.Errorf("Expected launch marker, got %q", got)
	}

	status := rowText(screen, 23)
	if !strings.HasPrefix(status, "Position: (0.00, 0.00)") {
		t.Errorf("Unexpected status line: %q", status)
	}
	if !strings.Contains(status, "at rest") {
		t.Errorf("Status should show state: %q", status)
	}

	if row := rowText(screen, 1); !strings.Contains(row, "> Wind") || !strings.Contains(row, "+0.00 m/s") {
		t.Errorf("Focused wind row not drawn: %q", row)
	}
	if row := rowText(screen, 4); !strings.Contains(row, "Ballistic coeff.") {
		t.Errorf("Coefficient row not drawn: %q", row)
	}
}

func TestScene_DrawsProjectileGlyph(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	scene := NewScene(screen, 10, 16)

	// 45° climb at (100 m, 40 m) → column 14, two rows above ground
	snap := inFlight(vmath.Vec3F{X: 100, Y: 40}, vmath.Vec3F{X: 50, Y: 50}, 10)
	scene.Draw(Frame{Snapshot: snap})

	if got := cellRune(screen, OriginMargin+10, 20); got != '/' {
		t.Errorf("Expected '/' glyph for climbing shot, got %q", got)
	}

	// Falling at 45° draws the other diagonal
	snap = inFlight(vmath.Vec3F{X: 200, Y: 40}, vmath.Vec3F{X: 50, Y: -50}, 11)
	scene.Draw(Frame{Snapshot: snap})
	if got := cellRune(screen, OriginMargin+20, 20); got != '\\' {
		t.Errorf("Expected '\\' glyph for falling shot, got %q", got)
	}
	// Previous position stays as trail
	if got := cellRune(screen, OriginMargin+10, 20); got != ':' && got != '.' {
		t.Errorf("Expected trail mark at previous position, got %q", got)
	}
}

func TestScene_ImpactClampedToGround(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	scene := NewScene(screen, 10, 16)

	snap := inFlight(vmath.Vec3F{X: 50, Y: -3}, vmath.Vec3F{Y: -20}, 40)
	scene.Draw(Frame{Snapshot: snap})

	ground := scene.Viewport().GroundRow()
	if got := cellRune(screen, OriginMargin+5, ground); got != '|' {
		t.Errorf("Expected impact glyph on ground row, got %q", got)
	}
}

func TestScene_ResetClearsTrailAndZoom(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	scene := NewScene(screen, 10, 16)

	for i := uint64(1); i <= 5; i++ {
		scene.Observe(inFlight(vmath.Vec3F{X: float64(i) * 1000, Y: 10}, vmath.Vec3F{X: 1}, i))
	}
	if scene.Trail().Len() != 5 {
		t.Fatalf("Expected 5 trail points, got %d", scene.Trail().Len())
	}
	if scene.Viewport().MetersPerCell() <= 10 {
		t.Fatal("Expected zoom-out for a 5 km shot")
	}

	scene.Observe(engine.Snapshot{State: engine.StateAtRest})
	if scene.Trail().Len() != 0 {
		t.Error("Reset should clear trail")
	}
	if scene.Viewport().MetersPerCell() != 10 {
		t.Error("Reset should restore zoom")
	}
}

func TestScene_NewShotAtSameTickStartsClean(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	scene := NewScene(screen, 10, 16)

	first := inFlight(vmath.Vec3F{X: 5000, Y: 10}, vmath.Vec3F{X: 1}, 1)
	first.Shot = 1
	scene.Observe(first)
	if scene.Viewport().MetersPerCell() <= 10 {
		t.Fatal("Expected zoom-out for a 5 km point")
	}

	// Relaunch whose first observed frame is already at tick 1
	second := inFlight(vmath.Vec3F{X: 10, Y: 1}, vmath.Vec3F{X: 1}, 1)
	second.Shot = 2
	scene.Observe(second)

	if got := scene.Trail().Len(); got != 1 {
		t.Errorf("Expected only the new shot in the trail, got %d points", got)
	}
	if scene.Viewport().MetersPerCell() != 10 {
		t.Errorf("Expected zoom restored for the new shot, got %v", scene.Viewport().MetersPerCell())
	}
}

func TestScene_PausedAndMessage(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	scene := NewScene(screen, 10, 16)

	scene.Draw(Frame{
		Snapshot: engine.Snapshot{State: engine.StateAtRest},
		Paused:   true,
		Message:  "rejected",
	})

	if status := rowText(screen, 23); !strings.Contains(status, "[paused]") {
		t.Errorf("Expected paused marker: %q", status)
	}
	if top := rowText(screen, 0); !strings.HasSuffix(strings.TrimRight(top, " "), "rejected") {
		t.Errorf("Expected message at top right: %q", top)
	}
}

func TestScene_TooSmall(t *testing.T) {
	screen := newTestScreen(t, 20, 5)
	scene := NewScene(screen, 10, 16)
	scene.Draw(Frame{Snapshot: engine.Snapshot{State: engine.StateAtRest}})

	if row := rowText(screen, 0); !strings.HasPrefix(row, "terminal too small") {
		t.Errorf("Expected size warning, got %q", row)
	}
}

func TestFormatPosition(t *testing.T) {
	if got := FormatPosition(vmath.Vec3F{X: 12.345, Y: -0.5}); got != "Position: (12.35, -0.50)" {
		t.Errorf("FormatPosition = %q", got)
	}
}
