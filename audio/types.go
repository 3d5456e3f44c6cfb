package audio

import "github.com/lixenwraith/vi-ballistics/parameter"

// SoundType identifies a shot event sound
type SoundType int

const (
	SoundLaunch SoundType = iota // Muzzle report on launch
	SoundImpact                  // Thud when the shot reaches the ground
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundLaunch:
		return "launch"
	case SoundImpact:
		return "impact"
	default:
		return "unknown"
	}
}

// Config holds audio settings
type Config struct {
	Enabled    bool
	Volume     float64 // Master volume, 0.0-1.0
	SampleRate int
}

func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Volume:     parameter.DefaultAudioVolume,
		SampleRate: parameter.DefaultAudioSampleRate,
	}
}
