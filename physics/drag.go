package physics

import "github.com/lixenwraith/vi-ballistics/parameter"

// DragCoefficient returns 1 / (bc * caliber²)
// Caller guarantees caliber > 0 and bc > 0
func DragCoefficient(caliber, ballisticCoefficient float64) float64 {
	return 1.0 / (ballisticCoefficient * caliber * caliber)
}

// DragMagnitude returns the decelerating drag scalar for the given speed
// drag = -0.5 * Cd * ρ * v², always <= 0 and zero only at rest
// The caller distributes it along the unit velocity direction
// Precondition: caliber > 0, ballisticCoefficient > 0 (checked at the session boundary)
func DragMagnitude(speed, caliber, ballisticCoefficient float64) float64 {
	cd := DragCoefficient(caliber, ballisticCoefficient)
	return -0.5 * cd * parameter.AirDensity * speed * speed
}
