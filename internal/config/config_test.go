package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/brownsim/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Regime != "underdamped" {
		t.Errorf("expected regime underdamped, got %s", cfg.Regime)
	}
	if cfg.Temperature != physics.DefaultTemperature {
		t.Errorf("expected room temperature default, got %g", cfg.Temperature)
	}
	if cfg.Viscosity != physics.DefaultViscosity {
		t.Errorf("expected water viscosity default, got %g", cfg.Viscosity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad regime", func(c *Config) { c.Regime = "critical" }},
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative fit bound", func(c *Config) { c.Fit.MinLag = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, physics.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Regime = "overdamped"
	cfg.Mass = 3e-18
	cfg.Seed = 42
	cfg.Fit.MaxLag = 0.5

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("protein")
	if cfg == nil {
		t.Fatal("expected protein preset")
	}
	if cfg.Regime != "underdamped" || cfg.Mass != 1e-20 {
		t.Errorf("unexpected preset values: %+v", cfg)
	}
	if cfg.Temperature != physics.DefaultTemperature {
		t.Error("preset should inherit solvent defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	// Mutating the returned config must not leak into the preset table.
	cfg.Mass = 1
	if again := GetPreset("protein"); again.Mass != 1e-20 {
		t.Error("preset table was mutated through a returned config")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestPresetsAllValid(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected some presets")
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
