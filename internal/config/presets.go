package config

import "sort"

// Presets for common scenarios. Timesteps for underdamped presets stay
// under a tenth of the particle's velocity relaxation time m/γ.
var presets = map[string]Config{
	// Protein-sized particle, inertia resolved.
	"protein": {
		Regime:   "underdamped",
		Mass:     1e-20,
		Radius:   5e-9,
		Dt:       1e-12,
		Duration: 1e-8,
	},
	// Tracked chromatin locus scale; inertia irrelevant at video rates.
	"histone": {
		Regime:   "overdamped",
		Mass:     4.2e-18,
		Radius:   1e-7,
		Dt:       1e-3,
		Duration: 10,
	},
	// Micron colloidal bead, classic video microscopy.
	"colloid": {
		Regime:   "overdamped",
		Mass:     5.5e-16,
		Radius:   5e-7,
		Dt:       1e-2,
		Duration: 60,
	},
}

// GetPreset returns a copy of the named preset with solvent defaults
// filled in, or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Regime = p.Regime
	cfg.Mass = p.Mass
	cfg.Radius = p.Radius
	cfg.Dt = p.Dt
	cfg.Duration = p.Duration
	return cfg
}

// ListPresets returns the preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
