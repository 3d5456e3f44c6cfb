package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/vi-ballistics/physics"
	"github.com/lixenwraith/vi-ballistics/vmath"
)

// State is the logical flight state of the session projectile
type State uint8

const (
	// StateAtRest is the pre-launch state, ticks are ignored
	StateAtRest State = iota
	// StateInFlight is entered by Launch, every tick steps the integrator
	StateInFlight
)

func (s State) String() string {
	switch s {
	case StateAtRest:
		return "at rest"
	case StateInFlight:
		return "in flight"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of session state taken under the session lock
type Snapshot struct {
	Position   vmath.Vec3F
	Velocity   vmath.Vec3F
	State      State
	Ticks      uint64
	Elapsed    float64 // simulated seconds since launch
	Shot       uint64  // launch sequence number, 0 before the first launch
	Parameters Parameters
}

// Speed returns the velocity magnitude
func (s Snapshot) Speed() float64 {
	return vmath.V3FMag(s.Velocity)
}

// Session owns the single live projectile and its parameter snapshot
// It is the one mutual-exclusion boundary around the integrator: every call
// holds the lock for its full duration, so ticks never overlap
type Session struct {
	mu sync.Mutex

	projectile physics.Projectile
	integrator physics.Integrator
	params     Parameters
	state      State
	ticks      uint64
	elapsed    float64
	shot       uint64

	logger  *slog.Logger
	metrics *sessionMetrics
}

// Option configures a Session
type Option func(*sessionConfig)

type sessionConfig struct {
	logger     *slog.Logger
	meter      metric.Meter
	integrator *physics.Integrator
}

// WithLogger sets the session logger, slog.Default otherwise
func WithLogger(l *slog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = l
	}
}

// WithMeter overrides the global OTel meter
func WithMeter(m metric.Meter) Option {
	return func(c *sessionConfig) {
		c.meter = m
	}
}

// WithIntegrator replaces the standard-gravity integrator
func WithIntegrator(in physics.Integrator) Option {
	return func(c *sessionConfig) {
		c.integrator = &in
	}
}

// NewSession validates params and returns a session with the projectile at rest at the origin
func NewSession(params Parameters, opts ...Option) (*Session, error) {
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.meter == nil {
		cfg.meter = meter()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		integrator: physics.NewIntegrator(),
		params:     params,
		state:      StateAtRest,
		logger:     cfg.logger,
	}
	if cfg.integrator != nil {
		s.integrator = *cfg.integrator
	}

	m, err := newSessionMetrics(cfg.meter, s)
	if err != nil {
		return nil, fmt.Errorf("session metrics: %w", err)
	}
	s.metrics = m

	return s, nil
}

// SetParameters replaces the parameter snapshot used by subsequent ticks
// Invalid parameters are rejected and the previous snapshot is kept
func (s *Session) SetParameters(p Parameters) error {
	if err := p.Validate(); err != nil {
		s.rejected(err)
		return err
	}

	s.mu.Lock()
	s.params = p
	s.mu.Unlock()

	s.logger.Debug("Parameters updated",
		"wind", p.Wind,
		"elevation", p.Elevation,
		"caliber", p.Caliber,
		"bc", p.BallisticCoefficient,
	)
	return nil
}

// Parameters returns the current snapshot
func (s *Session) Parameters() Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Launch fires using the snapshot's elevation and muzzle velocity
func (s *Session) Launch() error {
	s.mu.Lock()
	p := s.params
	s.mu.Unlock()
	return s.LaunchWith(p.Elevation, p.MuzzleVelocity)
}

// LaunchWith sets the launch velocity from elevationDeg and muzzleVelocity
// The projectile keeps its current position; the session enters StateInFlight
func (s *Session) LaunchWith(elevationDeg, muzzleVelocity float64) error {
	if !vmath.Finite(elevationDeg) {
		err := invalid("elevation", elevationDeg, "must be finite")
		s.rejected(err)
		return err
	}
	if !vmath.Finite(muzzleVelocity) || muzzleVelocity <= 0 {
		err := invalid("muzzleVelocity", muzzleVelocity, "must be finite and > 0")
		s.rejected(err)
		return err
	}

	s.mu.Lock()
	physics.Launch(&s.projectile, elevationDeg, muzzleVelocity)
	s.state = StateInFlight
	s.elapsed = 0
	s.shot++
	pos := s.projectile.Position
	vel := s.projectile.Velocity
	s.mu.Unlock()

	s.metrics.launches.Add(context.Background(), 1)
	s.logger.Info("Projectile launched",
		"elevation", elevationDeg,
		"muzzleVelocity", muzzleVelocity,
		"position", pos,
		"velocity", vel,
	)
	return nil
}

// Tick advances the projectile by dt using the current parameter snapshot
// At rest the call is a no-op; an invalid dt is rejected without mutation
func (s *Session) Tick(dt float64) (Snapshot, error) {
	if err := ValidateStep(dt); err != nil {
		s.rejected(err)
		return s.Snapshot(), err
	}

	s.mu.Lock()
	if s.state != StateInFlight {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	s.integrator.Step(&s.projectile, s.params.Environment(), dt)
	s.ticks++
	s.elapsed += dt
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.ticks.Add(context.Background(), 1)
	return snap, nil
}

// Reset returns the projectile to the origin at rest, parameters and the shot count are kept
func (s *Session) Reset() {
	s.mu.Lock()
	s.projectile = physics.Projectile{}
	s.state = StateAtRest
	s.ticks = 0
	s.elapsed = 0
	s.mu.Unlock()

	s.logger.Debug("Session reset")
}

// Snapshot returns a consistent copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Position returns the current projectile position
func (s *Session) Position() vmath.Vec3F {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectile.Position
}

// State returns the current flight state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close releases metric callbacks
func (s *Session) Close() error {
	return s.metrics.close()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Position:   s.projectile.Position,
		Velocity:   s.projectile.Velocity,
		State:      s.state,
		Ticks:      s.ticks,
		Elapsed:    s.elapsed,
		Shot:       s.shot,
		Parameters: s.params,
	}
}

func (s *Session) rejected(err error) {
	field := "unknown"
	var pe *ParameterError
	if errors.As(err, &pe) {
		field = pe.Field
	}
	s.metrics.reject(field)
	s.logger.Warn("Rejected parameter", "error", err)
}
