package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector in the launch frame
// X is downrange, Y is vertical (up positive), Z is cross-range
// 2D trajectories leave Z at zero; every operation is valid for both
type Vec3F struct {
	X, Y, Z float64
}

// V2F builds a planar vector with Z = 0
func V2F(x, y float64) Vec3F {
	return Vec3F{X: x, Y: y}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

// V3FAddScaled returns a + b*s, the Euler update shape
func V3FAddScaled(a, b Vec3F, s float64) Vec3F {
	return Vec3F{a.X + b.X*s, a.Y + b.Y*s, a.Z + b.Z*s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// V3FMag returns the Euclidean norm
func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FFinite reports whether every component is neither NaN nor ±Inf
func V3FFinite(v Vec3F) bool {
	return Finite(v.X) && Finite(v.Y) && Finite(v.Z)
}

// V3FNear reports component-wise equality within tol
func V3FNear(a, b Vec3F, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// Finite reports whether f is neither NaN nor ±Inf
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
