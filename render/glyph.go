package render

import "math"

// AngleToChar picks a line glyph for a flight direction
// rad is measured in the launch frame (counter-clockwise from +x, y up)
func AngleToChar(rad float64) rune {
	// Direction is unsigned for a line glyph
	if rad < 0 {
		rad += math.Pi
	}
	if rad >= math.Pi {
		rad -= math.Pi
	}
	deg := rad * 180 / math.Pi
	if deg < 22.5 || deg > 157.5 {
		return '-'
	}
	if deg < 67.5 {
		return '/'
	}
	if deg < 112.5 {
		return '|'
	}
	return '\\'
}

// HeadingAngle is the direction of travel in the x/y plane
func HeadingAngle(vx, vy float64) float64 {
	return math.Atan2(vy, vx)
}
