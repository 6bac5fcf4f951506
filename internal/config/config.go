package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/brownsim/internal/langevin"
	"github.com/san-kum/brownsim/internal/physics"
)

// Defaults describe a protein-sized particle in room-temperature water with
// a timestep safely under its velocity relaxation time.
const (
	DefaultMass     = 1e-20  // kg
	DefaultRadius   = 5e-9   // m
	DefaultDt       = 1e-12  // s
	DefaultDuration = 1e-8   // s
	DefaultRegime   = "underdamped"
)

// Config is the single configuration struct handed to the pipeline; it is
// built once at the boundary (flags, file or preset), validated eagerly,
// and never consulted again inside the numeric core.
type Config struct {
	Regime      string    `yaml:"regime"`
	Mass        float64   `yaml:"mass"`
	Radius      float64   `yaml:"radius"`
	Temperature float64   `yaml:"temperature"`
	Viscosity   float64   `yaml:"viscosity"`
	Dt          float64   `yaml:"dt"`
	Duration    float64   `yaml:"duration"`
	Seed        int64     `yaml:"seed"`
	Fit         FitConfig `yaml:"fit"`
}

// FitConfig bounds the log-log fit window; zeros mean the default window
// derived from the curve.
type FitConfig struct {
	MinLag float64 `yaml:"min_lag"`
	MaxLag float64 `yaml:"max_lag"`
}

func DefaultConfig() *Config {
	return &Config{
		Regime:      DefaultRegime,
		Mass:        DefaultMass,
		Radius:      DefaultRadius,
		Temperature: physics.DefaultTemperature,
		Viscosity:   physics.DefaultViscosity,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", physics.ErrMalformedInput, err)
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

// Parameters extracts the physical parameters.
func (c *Config) Parameters() physics.Parameters {
	return physics.Parameters{
		Mass:        c.Mass,
		Radius:      c.Radius,
		Temperature: c.Temperature,
		Viscosity:   c.Viscosity,
	}
}

// ParseRegime resolves the regime string.
func (c *Config) ParseRegime() (langevin.Regime, error) {
	return langevin.ParseRegime(c.Regime)
}

// Validate fails fast on any value the pipeline would reject later.
func (c *Config) Validate() error {
	if _, err := c.ParseRegime(); err != nil {
		return err
	}
	if err := c.Parameters().Validate(); err != nil {
		return err
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", physics.ErrInvalidParameter, c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", physics.ErrInvalidParameter, c.Duration)
	}
	if c.Fit.MinLag < 0 || c.Fit.MaxLag < 0 {
		return fmt.Errorf("%w: fit window bounds must be non-negative", physics.ErrInvalidParameter)
	}
	return nil
}
