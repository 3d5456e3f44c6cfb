package render

import (
	"math"

	"github.com/lixenwraith/vi-ballistics/vmath"
)

const (
	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0

	// OriginMargin is the column of the launch point
	OriginMargin = 4

	// maxMetersPerCell caps zoom-out for runaway shots
	maxMetersPerCell = 1e7
)

// Viewport maps the launch frame (meters, y up) onto terminal cells (y down)
// The launch point sits at column OriginMargin on the ground row
// Rows below the ground row hold the status line
type Viewport struct {
	width, height int
	metersPerCell float64
	baseScale     float64
}

func NewViewport(width, height int, metersPerCell float64) *Viewport {
	if metersPerCell <= 0 {
		metersPerCell = 1
	}
	return &Viewport{
		width:         width,
		height:        height,
		metersPerCell: metersPerCell,
		baseScale:     metersPerCell,
	}
}

// Resize updates the screen dimensions without changing scale
func (v *Viewport) Resize(width, height int) {
	v.width, v.height = width, height
}

func (v *Viewport) Size() (int, int) { return v.width, v.height }

// MetersPerCell is the horizontal scale; one row spans CellAspect times that
func (v *Viewport) MetersPerCell() float64 { return v.metersPerCell }

// ResetZoom returns to the configured scale
func (v *Viewport) ResetZoom() { v.metersPerCell = v.baseScale }

// GroundRow is the row of y = 0
func (v *Viewport) GroundRow() int { return v.height - 2 }

// ToCell maps a world position to a cell; ok is false when off screen
// Cross-range (z) is not shown
func (v *Viewport) ToCell(p vmath.Vec3F) (x, y int, ok bool) {
	if !vmath.V3FFinite(p) {
		return 0, 0, false
	}
	x = OriginMargin + int(math.Round(p.X/v.metersPerCell))
	y = v.GroundRow() - int(math.Round(p.Y/(v.metersPerCell*CellAspect)))
	ok = x >= 0 && x < v.width && y >= 0 && y <= v.GroundRow()
	return x, y, ok
}

// Fit doubles the scale until p is inside the sky area and reports whether it zoomed
// Points below ground never trigger zoom
func (v *Viewport) Fit(p vmath.Vec3F) bool {
	if !vmath.V3FFinite(p) || v.width <= OriginMargin+1 || v.GroundRow() < 1 {
		return false
	}

	zoomed := false
	for v.metersPerCell < maxMetersPerCell && !v.contains(p) {
		v.metersPerCell *= 2
		zoomed = true
	}
	return zoomed
}

func (v *Viewport) contains(p vmath.Vec3F) bool {
	right := float64(v.width-1-OriginMargin) * v.metersPerCell
	left := -float64(OriginMargin) * v.metersPerCell
	top := float64(v.GroundRow()) * v.metersPerCell * CellAspect
	return p.X <= right && p.X >= left && p.Y <= top
}
