package parameter

import "time"

// Physical constants, SI units throughout
const (
	// Gravity is the downward acceleration applied on the vertical axis (m/s²)
	Gravity = 9.81

	// AirDensity is sea-level air density used by the drag model (kg/m³)
	AirDensity = 1.225

	// MuzzleVelocity is the speed imparted at launch (m/s)
	MuzzleVelocity = 850.0
)

// Default shot parameters, matching the initial form values
const (
	DefaultWind                 = 0.0
	DefaultElevation            = 0.0
	DefaultCaliber              = 0.00762 // 7.62 mm
	DefaultBallisticCoefficient = 0.4
)

// Tick source timing
const (
	// TickInterval is the logical period between integrator steps
	TickInterval = 10 * time.Millisecond

	// StepSeconds is the simulated time advanced per tick (dt)
	StepSeconds = 0.01

	// FrameInterval is the render refresh period of the terminal shell (~30 FPS)
	FrameInterval = 33 * time.Millisecond

	// MaxTicks bounds a headless run; 0 disables the cap
	MaxTicks = 0
)

// Form input steps, one per field
const (
	WindInputStep                 = 0.01
	ElevationInputStep            = 1.0
	CaliberInputStep              = 0.00001
	BallisticCoefficientInputStep = 0.01
)

// Form input bounds (UI-level clamps, not core invariants)
const (
	ElevationMin              = -90.0
	ElevationMax              = 90.0
	CaliberMin                = 0.00001
	BallisticCoefficientUIMin = 0.01
	BallisticCoefficientUIMax = 1.0
	WindMagnitudeMax          = 100.0

	// CoarseInputMultiplier scales a field step when Shift is held
	CoarseInputMultiplier = 10.0
)

// Display
const (
	DefaultTrailLength         = 48
	DefaultMetersPerCell       = 20.0
	DefaultHeadlessSampleEvery = 10
)

// Audio
const (
	DefaultAudioVolume     = 0.6
	DefaultAudioSampleRate = 44100

	LaunchSoundDuration = 180 * time.Millisecond
	LaunchSoundAttack   = 2 * time.Millisecond
	LaunchSoundRelease  = 160 * time.Millisecond

	ImpactSoundDuration = 250 * time.Millisecond
	ImpactSoundAttack   = 5 * time.Millisecond
	ImpactSoundRelease  = 220 * time.Millisecond
)
