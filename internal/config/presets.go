package config

import "github.com/dsoppit/wavesim/internal/fdtd"

var Presets = map[string]*Config{
	// The reference optical cell: 1µm pulse crossing a 10µm vacuum domain.
	"vacuum": {
		Lx: 10e-6, Ly: 10e-6, Dx: 0.12e-6, Dy: 0.12e-6,
		NStop: 150, Wavelength: 1e-6, PulseWidth: 18e-15, T0: 4e-15,
		WaveSpeed: fdtd.SpeedOfLight,
		Boundary:  "mur",
		Source:    SourceConfig{IX: -1, IY: -1, Centered: true},
	},
	// Halved resolution, same physics. Fast sanity runs.
	"coarse": {
		Lx: 10e-6, Ly: 10e-6, Dx: 0.24e-6, Dy: 0.24e-6,
		NStop: 80, Wavelength: 1e-6, PulseWidth: 18e-15, T0: 4e-15,
		WaveSpeed: fdtd.SpeedOfLight,
		Boundary:  "mur",
		Source:    SourceConfig{IX: -1, IY: -1, Centered: true},
	},
	// A handful of steps; the pulse never leaves the neighborhood of the
	// source.
	"short": {
		Lx: 10e-6, Ly: 10e-6, Dx: 0.12e-6, Dy: 0.12e-6,
		NStop: 5, Wavelength: 1e-6, PulseWidth: 18e-15, T0: 4e-15,
		WaveSpeed: fdtd.SpeedOfLight,
		Boundary:  "mur",
		Source:    SourceConfig{IX: -1, IY: -1, Centered: true},
	},
	// Zero-Dirichlet edges, for comparing against the absorbing runs.
	"reflecting": {
		Lx: 10e-6, Ly: 10e-6, Dx: 0.12e-6, Dy: 0.12e-6,
		NStop: 150, Wavelength: 1e-6, PulseWidth: 18e-15, T0: 4e-15,
		WaveSpeed: fdtd.SpeedOfLight,
		Boundary:  "reflecting",
		Source:    SourceConfig{IX: -1, IY: -1, Centered: true},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
