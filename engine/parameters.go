package engine

import (
	"github.com/lixenwraith/vi-ballistics/parameter"
	"github.com/lixenwraith/vi-ballistics/physics"
	"github.com/lixenwraith/vi-ballistics/vmath"
)

// Parameters is the externally supplied shot configuration
// Passed by value; the session keeps its own copy
type Parameters struct {
	// Wind in m/s on the horizontal axes, Y is ignored
	Wind vmath.Vec3F
	// Elevation in degrees, read only at launch
	Elevation float64
	// Caliber is the projectile diameter in meters
	Caliber float64
	// BallisticCoefficient is dimensionless, higher means less drag
	BallisticCoefficient float64
	// MuzzleVelocity in m/s
	MuzzleVelocity float64
}

// DefaultParameters returns the initial form values
func DefaultParameters() Parameters {
	return Parameters{
		Wind:                 vmath.Vec3F{X: parameter.DefaultWind},
		Elevation:            parameter.DefaultElevation,
		Caliber:              parameter.DefaultCaliber,
		BallisticCoefficient: parameter.DefaultBallisticCoefficient,
		MuzzleVelocity:       parameter.MuzzleVelocity,
	}
}

// Validate rejects non-finite values and non-positive caliber, coefficient or muzzle velocity
// The physical formula is defined for any positive coefficient, so no upper bound is applied here
func (p Parameters) Validate() error {
	if !vmath.Finite(p.Wind.X) {
		return invalid("wind.x", p.Wind.X, "must be finite")
	}
	if !vmath.Finite(p.Wind.Y) {
		return invalid("wind.y", p.Wind.Y, "must be finite")
	}
	if !vmath.Finite(p.Wind.Z) {
		return invalid("wind.z", p.Wind.Z, "must be finite")
	}
	if !vmath.Finite(p.Elevation) {
		return invalid("elevation", p.Elevation, "must be finite")
	}
	if !vmath.Finite(p.Caliber) || p.Caliber <= 0 {
		return invalid("caliber", p.Caliber, "must be finite and > 0")
	}
	if !vmath.Finite(p.BallisticCoefficient) || p.BallisticCoefficient <= 0 {
		return invalid("ballisticCoefficient", p.BallisticCoefficient, "must be finite and > 0")
	}
	if !vmath.Finite(p.MuzzleVelocity) || p.MuzzleVelocity <= 0 {
		return invalid("muzzleVelocity", p.MuzzleVelocity, "must be finite and > 0")
	}
	return nil
}

// Environment returns the per-step snapshot consumed by the integrator
func (p Parameters) Environment() physics.Environment {
	return physics.Environment{
		Wind:                 p.Wind,
		Caliber:              p.Caliber,
		BallisticCoefficient: p.BallisticCoefficient,
	}
}

// ValidateStep rejects a non-finite or non-positive time step
func ValidateStep(dt float64) error {
	if !vmath.Finite(dt) || dt <= 0 {
		return invalid("dt", dt, "must be finite and > 0")
	}
	return nil
}
