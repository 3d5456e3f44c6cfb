package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-ballistics/control"
	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/vmath"
)

const (
	minWidth  = 32
	minHeight = 10

	panelWidth = 30
)

// Frame is everything drawn in one refresh
type Frame struct {
	Snapshot engine.Snapshot
	Rows     []control.Row
	Paused   bool
	Message  string // Transient notice, e.g. a rejected input
}

// Scene draws the trajectory view onto a tcell screen
// Not safe for concurrent use; the shell renders from one goroutine
type Scene struct {
	screen tcell.Screen
	view   *Viewport
	trail  *Trail

	lastTicks uint64
	lastShot  uint64
}

func NewScene(screen tcell.Screen, metersPerCell float64, trailLength int) *Scene {
	w, h := screen.Size()
	return &Scene{
		screen: screen,
		view:   NewViewport(w, h, metersPerCell),
		trail:  NewTrail(trailLength),
	}
}

func (s *Scene) Viewport() *Viewport { return s.view }

func (s *Scene) Trail() *Trail { return s.trail }

// Observe records the snapshot into the trail and adjusts zoom
// A new shot number, a reset session or a tick counter that went backwards starts a clean view
func (s *Scene) Observe(snap engine.Snapshot) {
	if snap.Shot != s.lastShot || snap.Ticks < s.lastTicks ||
		(snap.State == engine.StateAtRest && snap.Ticks == 0) {
		s.trail.Reset()
		s.view.ResetZoom()
	}
	s.lastTicks = snap.Ticks
	s.lastShot = snap.Shot

	if snap.State != engine.StateInFlight {
		return
	}
	s.trail.Push(snap.Position)
	s.view.Fit(snap.Position)
}

// Draw renders one frame and shows it
func (s *Scene) Draw(f Frame) {
	w, h := s.screen.Size()
	s.view.Resize(w, h)
	s.Observe(f.Snapshot)

	base := tcell.StyleDefault.Background(RgbBackground)
	s.screen.Fill(' ', base)

	if w < minWidth || h < minHeight {
		drawString(s.screen, 0, 0, "terminal too small", base.Foreground(RgbError))
		s.screen.Show()
		return
	}

	s.drawGround(base)
	s.drawTrail(base)
	s.drawProjectile(f.Snapshot, base)
	s.drawPanel(f, base)
	s.drawStatus(f, base)

	s.screen.Show()
}

func (s *Scene) drawGround(base tcell.Style) {
	w, _ := s.view.Size()
	row := s.view.GroundRow()
	style := base.Foreground(RgbGround)
	for x := 0; x < w; x++ {
		s.screen.SetContent(x, row, '─', nil, style)
	}
	s.screen.SetContent(OriginMargin, row, '^', nil, base.Foreground(RgbLauncher).Bold(true))
}

func (s *Scene) drawTrail(base tcell.Style) {
	points := s.trail.Points()
	n := len(points)
	// Newest point is the projectile itself
	for i := 0; i < n-1; i++ {
		x, y, ok := s.view.ToCell(points[i])
		if !ok || y == s.view.GroundRow() {
			continue
		}
		age := float64(n-1-i) / float64(n)
		char := '.'
		if age < 0.3 {
			char = ':'
		}
		s.screen.SetContent(x, y, char, nil, base.Foreground(lerpColor(rgbTrailNew, rgbTrailOld, age)))
	}
}

func (s *Scene) drawProjectile(snap engine.Snapshot, base tcell.Style) {
	if snap.State != engine.StateInFlight {
		return
	}
	p := snap.Position
	style := base.Foreground(RgbProjectile).Bold(true)
	if p.Y < 0 {
		// Clamp to the ground row so impact stays visible
		p.Y = 0
		style = base.Foreground(RgbImpact).Bold(true)
	}
	x, y, ok := s.view.ToCell(p)
	if !ok {
		return
	}
	char := 'o'
	if snap.Speed() > 0 {
		char = AngleToChar(HeadingAngle(snap.Velocity.X, snap.Velocity.Y))
	}
	s.screen.SetContent(x, y, char, nil, style)
}

func (s *Scene) drawPanel(f Frame, base tcell.Style) {
	text := base.Foreground(RgbPanelText)
	focus := base.Foreground(RgbPanelFocus).Bold(true)

	drawString(s.screen, 1, 0, "[j/k] field  [h/l] adjust  [Enter] fire  [r] reset  [q] quit", text.Dim(true))
	for i, row := range f.Rows {
		style := text
		marker := "  "
		if row.Focused {
			style = focus
			marker = "> "
		}
		line := fmt.Sprintf("%s%-17s %s", marker, row.Label, row.Value)
		if len(line) > panelWidth {
			line = line[:panelWidth]
		}
		drawString(s.screen, 1, i+1, line, style)
	}
}

func (s *Scene) drawStatus(f Frame, base tcell.Style) {
	_, h := s.view.Size()
	snap := f.Snapshot
	status := fmt.Sprintf("%s  t=%.2fs  v=%.1f m/s  scale=%gm/cell  %s",
		FormatPosition(snap.Position), snap.Elapsed, snap.Speed(), s.view.MetersPerCell(), snap.State)
	if f.Paused {
		status += "  [paused]"
	}
	drawString(s.screen, 0, h-1, status, base.Foreground(RgbStatusBar))

	if f.Message != "" {
		w, _ := s.view.Size()
		x := max(w-len(f.Message)-1, 0)
		drawString(s.screen, x, 0, f.Message, base.Foreground(RgbError))
	}
}

// FormatPosition renders the status readout for a position
func FormatPosition(p vmath.Vec3F) string {
	return fmt.Sprintf("Position: (%.2f, %.2f)", p.X, p.Y)
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	w, _ := screen.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
