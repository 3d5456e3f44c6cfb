package physics

import (
	"math"

	"github.com/lixenwraith/vi-ballistics/parameter"
	"github.com/lixenwraith/vi-ballistics/vmath"
)

// Projectile is the kinematic state of the single live shot
// Position in meters from the launch point, Velocity in m/s
type Projectile struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
}

// Speed returns the Euclidean norm of the velocity
func (p *Projectile) Speed() float64 {
	return vmath.V3FMag(p.Velocity)
}

// Environment is the parameter snapshot read by one step
// Wind.Y is ignored, wind acts only on the horizontal axes
type Environment struct {
	Wind                 vmath.Vec3F
	Caliber              float64
	BallisticCoefficient float64
}

// Integrator advances a Projectile with semi-implicit Euler
// Gravity is the magnitude applied on -Y; zero gives the horizontal-only harness
type Integrator struct {
	Gravity float64
}

// NewIntegrator returns an integrator using standard gravity
func NewIntegrator() Integrator {
	return Integrator{Gravity: parameter.Gravity}
}

// Acceleration combines gravity, wind and drag for the given velocity
// At zero speed there is no drag direction, so only gravity and wind apply
func (in Integrator) Acceleration(vel vmath.Vec3F, env Environment) vmath.Vec3F {
	accel := in.fieldAccel(env)

	speed := vmath.V3FMag(vel)
	if speed == 0 {
		return accel
	}

	drag := DragMagnitude(speed, env.Caliber, env.BallisticCoefficient)
	return vmath.V3FAddScaled(accel, vel, drag/speed)
}

// fieldAccel is the velocity-independent part: wind on X/Z, gravity on -Y
func (in Integrator) fieldAccel(env Environment) vmath.Vec3F {
	return vmath.Vec3F{
		X: env.Wind.X,
		Y: -in.Gravity,
		Z: env.Wind.Z,
	}
}

// Step advances p by dt: v += a(v)*dt, then p += v'*dt using the updated velocity
// When drag is saturated it removes exactly the current velocity, so a stiff
// drag term stops the projectile along its path instead of reversing it
// Both fields are committed together
func (in Integrator) Step(p *Projectile, env Environment, dt float64) {
	vel := p.Velocity

	var next vmath.Vec3F
	if Saturated(vel, env, dt) {
		next = vmath.V3FScale(in.fieldAccel(env), dt)
	} else {
		next = vmath.V3FAddScaled(vel, in.Acceleration(vel, env), dt)
	}

	p.Velocity = next
	p.Position = vmath.V3FAddScaled(p.Position, next, dt)
}

// Saturated reports whether drag at this velocity would remove more than the speed within dt
// At the default bullet (caliber 0.00762, bc 0.4) every step at flight speed is saturated:
// the first step stops the shot, after which it falls at a constant gravity*dt, about
// 0.098 m/s at dt = 0.01, and never rises. That slow fall is the clamp, not a physical
// terminal velocity
func Saturated(vel vmath.Vec3F, env Environment, dt float64) bool {
	speed := vmath.V3FMag(vel)
	if speed == 0 {
		return false
	}
	return -DragMagnitude(speed, env.Caliber, env.BallisticCoefficient)*dt > speed
}

// Launch sets the muzzle velocity from the elevation angle, position is left as is
func Launch(p *Projectile, elevationDeg, muzzleVelocity float64) {
	rad := vmath.DegToRad(elevationDeg)
	p.Velocity = vmath.Vec3F{
		X: muzzleVelocity * math.Cos(rad),
		Y: muzzleVelocity * math.Sin(rad),
	}
}
