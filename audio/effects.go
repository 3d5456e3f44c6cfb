package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-ballistics/parameter"
)

// Waveform maps a phase in [0, 1) to a sample in [-1, 1]
type Waveform func(phase float64) float64

var (
	Sine Waveform = func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	Saw  Waveform = func(p float64) float64 { return 2*p - 1 }
	// Noise ignores phase
	Noise  Waveform = func(float64) float64 { return rand.Float64()*2 - 1 }
	Square Waveform = func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	}
)

// sweep is a fixed-length tone gliding linearly from one frequency to another
type sweep struct {
	wave     Waveform
	from, to float64
	rate     float64
	phase    float64
	pos      int
	length   int
}

// NewSweep returns a mono-in-stereo tone of the given duration
func NewSweep(wave Waveform, from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		wave:   wave,
		from:   from,
		to:     to,
		rate:   float64(rate),
		length: rate.N(duration),
	}
}

// NewTone is a sweep with a constant frequency
func NewTone(wave Waveform, freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewSweep(wave, freq, freq, duration, rate)
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.length {
			return i, i > 0
		}
		v := s.wave(s.phase)
		samples[i] = [2]float64{v, v}

		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.length)
		s.phase = math.Mod(s.phase+freq/s.rate, 1)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release over a fixed window
// The release ramp ends on the last sample of the window
type envelope struct {
	src     beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		src:     s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(duration),
	}
}

func (e *envelope) gain() float64 {
	switch {
	case e.attack > 0 && e.pos < e.attack:
		return float64(e.pos) / float64(e.attack)
	case e.release > 0 && e.pos >= e.total-e.release:
		return max(float64(e.total-e.pos)/float64(e.release), 0)
	default:
		return 1
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// newVolume wraps s in a linear gain; log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateLaunchSound generates the muzzle report: a noise crack over a saw body dropping in pitch
func CreateLaunchSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.LaunchSoundDuration

	crack := NewEnvelope(NewTone(Noise, 0, d, rate), d,
		parameter.LaunchSoundAttack, parameter.LaunchSoundRelease, rate)
	body := NewEnvelope(NewSweep(Saw, 180, 90, d, rate), d,
		parameter.LaunchSoundAttack, parameter.LaunchSoundRelease/2, rate)

	return newVolume(beep.Mix(
		newVolume(crack, 0.6),
		newVolume(body, 0.4),
	), cfg.Volume)
}

// CreateImpactSound generates a dull thud: a sagging low sine with a short dirt spray
func CreateImpactSound(cfg Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ImpactSoundDuration
	tail := d / 2

	thud := NewEnvelope(NewSweep(Sine, 80, 50, d, rate), d,
		parameter.ImpactSoundAttack, parameter.ImpactSoundRelease, rate)
	dirt := NewEnvelope(NewTone(Noise, 0, tail, rate), tail,
		parameter.ImpactSoundAttack, tail-parameter.ImpactSoundAttack, rate)

	return newVolume(beep.Mix(
		newVolume(thud, 0.75),
		newVolume(dirt, 0.25),
	), cfg.Volume)
}

// GetSoundEffect returns a fresh streamer for the sound type, nil if unknown
func GetSoundEffect(soundType SoundType, cfg Config) beep.Streamer {
	switch soundType {
	case SoundLaunch:
		return CreateLaunchSound(cfg)
	case SoundImpact:
		return CreateImpactSound(cfg)
	default:
		return nil
	}
}
