package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/parameter"
	"github.com/lixenwraith/vi-ballistics/vmath"
)

// EnvPrefix prefixes environment overrides, e.g. BALLISTICS_SIMULATION_WIND
const EnvPrefix = "BALLISTICS"

// SimulationConfig holds the shot parameters and tick source timing
type SimulationConfig struct {
	Wind                 float64       `mapstructure:"wind"`
	CrossWind            float64       `mapstructure:"crossWind"`
	Elevation            float64       `mapstructure:"elevation"`
	Caliber              float64       `mapstructure:"caliber"`
	BallisticCoefficient float64       `mapstructure:"ballisticCoefficient"`
	MuzzleVelocity       float64       `mapstructure:"muzzleVelocity"`
	Step                 float64       `mapstructure:"step"`
	TickInterval         time.Duration `mapstructure:"tickInterval"`
	MaxTicks             uint64        `mapstructure:"maxTicks"`
}

// AudioConfig holds launch and impact sound settings
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Volume     float64 `mapstructure:"volume"`
	SampleRate int     `mapstructure:"sampleRate"`
}

// TelemetryConfig holds OpenTelemetry log export settings
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

// DisplayConfig holds terminal rendering settings
type DisplayConfig struct {
	MetersPerCell float64       `mapstructure:"metersPerCell"`
	TrailLength   int           `mapstructure:"trailLength"`
	FrameInterval time.Duration `mapstructure:"frameInterval"`
	SampleEvery   int           `mapstructure:"sampleEvery"`
}

// Config is the full application configuration
type Config struct {
	LogLevel   string           `mapstructure:"logLevel"`
	LogsDir    string           `mapstructure:"logsDir"`
	Debug      bool             `mapstructure:"debug"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Display    DisplayConfig    `mapstructure:"display"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "./logs")
	v.SetDefault("debug", false)

	v.SetDefault("simulation.wind", parameter.DefaultWind)
	v.SetDefault("simulation.crossWind", 0.0)
	v.SetDefault("simulation.elevation", parameter.DefaultElevation)
	v.SetDefault("simulation.caliber", parameter.DefaultCaliber)
	v.SetDefault("simulation.ballisticCoefficient", parameter.DefaultBallisticCoefficient)
	v.SetDefault("simulation.muzzleVelocity", parameter.MuzzleVelocity)
	v.SetDefault("simulation.step", parameter.StepSeconds)
	v.SetDefault("simulation.tickInterval", parameter.TickInterval)
	v.SetDefault("simulation.maxTicks", parameter.MaxTicks)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", parameter.DefaultAudioVolume)
	v.SetDefault("audio.sampleRate", parameter.DefaultAudioSampleRate)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)

	v.SetDefault("display.metersPerCell", parameter.DefaultMetersPerCell)
	v.SetDefault("display.trailLength", parameter.DefaultTrailLength)
	v.SetDefault("display.frameInterval", parameter.FrameInterval)
	v.SetDefault("display.sampleEvery", parameter.DefaultHeadlessSampleEvery)
}

// New returns a viper instance with defaults and environment overrides bound
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path and applies defaults and environment overrides.
// An empty path loads defaults only. The format follows the file extension
// (json, toml, yaml).
func Load(path string) (*Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals a populated viper instance into Config
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the engine does not own
// Shot parameters are validated by the session boundary
func (c *Config) Validate() error {
	if c.Simulation.TickInterval <= 0 {
		return fmt.Errorf("simulation.tickInterval must be > 0, got %v", c.Simulation.TickInterval)
	}
	if err := engine.ValidateStep(c.Simulation.Step); err != nil {
		return fmt.Errorf("simulation.step: %w", err)
	}
	if c.Display.MetersPerCell <= 0 {
		return fmt.Errorf("display.metersPerCell must be > 0, got %v", c.Display.MetersPerCell)
	}
	if c.Display.FrameInterval <= 0 {
		return fmt.Errorf("display.frameInterval must be > 0, got %v", c.Display.FrameInterval)
	}
	if c.Display.TrailLength < 0 {
		return fmt.Errorf("display.trailLength must be >= 0, got %d", c.Display.TrailLength)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	return nil
}

// Parameters converts the simulation section into an engine parameter snapshot
// Wind is downrange (X), CrossWind is cross-range (Z)
func (c *Config) Parameters() engine.Parameters {
	s := c.Simulation
	return engine.Parameters{
		Wind:                 vmath.Vec3F{X: s.Wind, Z: s.CrossWind},
		Elevation:            s.Elevation,
		Caliber:              s.Caliber,
		BallisticCoefficient: s.BallisticCoefficient,
		MuzzleVelocity:       s.MuzzleVelocity,
	}
}
