package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/solhav/moodlamp/internal/engine"
)

const (
	DefaultDt       = 0.016
	DefaultDuration = 30.0
	DefaultSignal   = "sine"

	DefaultTauValence   = 2.0
	DefaultTauArousal   = 0.6
	DefaultTauDominance = 1.2
	DefaultMaxStep      = 0.25

	DefaultEnergyDecay = 0.995

	DefaultBaseTurbulence = 0.1
	DefaultArousalGain    = 0.9
	DefaultEnergyGain     = 0.4

	DefaultTankWidth   = 1.0
	DefaultTankHeight  = 1.0
	DefaultDampingBase = 0.995
)

type Config struct {
	Signal   string  `yaml:"signal"`
	Seed     int64   `yaml:"seed"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`

	Filter FilterConfig `yaml:"filter"`
	Energy EnergyConfig `yaml:"energy"`
	Mapper MapperConfig `yaml:"mapper"`
	Tank   TankConfig   `yaml:"tank"`
}

type FilterConfig struct {
	TauValence   float64 `yaml:"tau_valence"`
	TauArousal   float64 `yaml:"tau_arousal"`
	TauDominance float64 `yaml:"tau_dominance"`
	MaxStep      float64 `yaml:"max_step"`
}

type EnergyConfig struct {
	Decay float64 `yaml:"decay"`
}

type MapperConfig struct {
	BaseTurbulence float64 `yaml:"base_turbulence"`
	ArousalGain    float64 `yaml:"arousal_gain"`
	EnergyGain     float64 `yaml:"energy_gain"`
}

type TankConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	DampingBase float64 `yaml:"damping_base"`
}

func DefaultConfig() *Config {
	return &Config{
		Signal:   DefaultSignal,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Filter: FilterConfig{
			TauValence:   DefaultTauValence,
			TauArousal:   DefaultTauArousal,
			TauDominance: DefaultTauDominance,
			MaxStep:      DefaultMaxStep,
		},
		Energy: EnergyConfig{
			Decay: DefaultEnergyDecay,
		},
		Mapper: MapperConfig{
			BaseTurbulence: DefaultBaseTurbulence,
			ArousalGain:    DefaultArousalGain,
			EnergyGain:     DefaultEnergyGain,
		},
		Tank: TankConfig{
			Width:       DefaultTankWidth,
			Height:      DefaultTankHeight,
			DampingBase: DefaultDampingBase,
		},
	}
}

// Load reads a YAML config, layered over the defaults so a partial file
// only overrides what it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configs the engine cannot run.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.Filter.TauValence <= 0 || c.Filter.TauArousal <= 0 || c.Filter.TauDominance <= 0 {
		return fmt.Errorf("config: filter time constants must be positive")
	}
	if c.Filter.MaxStep <= 0 {
		return fmt.Errorf("config: filter max_step must be positive, got %f", c.Filter.MaxStep)
	}
	if c.Energy.Decay <= 0 || c.Energy.Decay > 1 {
		return fmt.Errorf("config: energy decay must sit in (0, 1], got %f", c.Energy.Decay)
	}
	if c.Tank.Width <= 0 || c.Tank.Height <= 0 {
		return fmt.Errorf("config: tank extent must be positive, got %fx%f", c.Tank.Width, c.Tank.Height)
	}
	return nil
}

// Apply copies the tunables onto a built engine.
func (c *Config) Apply(e *engine.Engine) {
	e.Filter.TauValence = c.Filter.TauValence
	e.Filter.TauArousal = c.Filter.TauArousal
	e.Filter.TauDominance = c.Filter.TauDominance
	e.Filter.MaxStep = c.Filter.MaxStep

	e.Energy.Decay = c.Energy.Decay

	e.Mapper.BaseTurbulence = c.Mapper.BaseTurbulence
	e.Mapper.ArousalGain = c.Mapper.ArousalGain
	e.Mapper.EnergyGain = c.Mapper.EnergyGain

	e.Sim.Width = c.Tank.Width
	e.Sim.Height = c.Tank.Height
	e.Sim.DampingBase = c.Tank.DampingBase
}
