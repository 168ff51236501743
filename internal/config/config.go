package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dsoppit/wavesim/internal/fdtd"
)

// Reference parameter set: a 10µm × 10µm vacuum cell, 0.12µm mesh, and a
// 1µm-wavelength pulse 18fs wide centered at 4fs.
const (
	DefaultLx         = 10e-6
	DefaultLy         = 10e-6
	DefaultDx         = 0.12e-6
	DefaultDy         = 0.12e-6
	DefaultNStop      = 150
	DefaultWavelength = 1.0e-6
	DefaultPulseWidth = 18.0e-15
	DefaultT0         = 4.0e-15
)

type Config struct {
	Lx         float64      `yaml:"lx"`
	Ly         float64      `yaml:"ly"`
	Dx         float64      `yaml:"dx"`
	Dy         float64      `yaml:"dy"`
	NStop      int          `yaml:"n_stop"`
	Wavelength float64      `yaml:"wavelength"`
	PulseWidth float64      `yaml:"pulse_width"`
	T0         float64      `yaml:"t0"`
	WaveSpeed  float64      `yaml:"wave_speed"`
	Boundary   string       `yaml:"boundary"`
	Source     SourceConfig `yaml:"source"`
}

// SourceConfig places the pulse. X/Y are physical coordinates mapped to the
// nearest grid point; IX/IY, when non-negative, override them with literal
// grid indices for parity with the reference setup. Centered defaults to
// the domain center and wins over X/Y.
type SourceConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	IX       int     `yaml:"ix"`
	IY       int     `yaml:"iy"`
	Centered bool    `yaml:"centered"`
}

// UnmarshalYAML decodes the source block. Writing x/y into a config that
// defaults to a centered source must take effect, so explicit physical
// coordinates clear the centered default unless the file sets centered
// itself.
func (s *SourceConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain SourceConfig
	p := plain(*s)
	if err := node.Decode(&p); err != nil {
		return err
	}

	var present struct {
		X        *float64 `yaml:"x"`
		Y        *float64 `yaml:"y"`
		Centered *bool    `yaml:"centered"`
	}
	if err := node.Decode(&present); err != nil {
		return err
	}
	if present.Centered == nil && (present.X != nil || present.Y != nil) {
		p.Centered = false
	}

	*s = SourceConfig(p)
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Lx:         DefaultLx,
		Ly:         DefaultLy,
		Dx:         DefaultDx,
		Dy:         DefaultDy,
		NStop:      DefaultNStop,
		Wavelength: DefaultWavelength,
		PulseWidth: DefaultPulseWidth,
		T0:         DefaultT0,
		WaveSpeed:  fdtd.SpeedOfLight,
		Boundary:   "mur",
		Source:     SourceConfig{IX: -1, IY: -1, Centered: true},
	}
}

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

// Grid builds the mesh described by the config.
func (c *Config) Grid() (*fdtd.Grid, error) {
	return fdtd.NewGrid(c.Lx, c.Ly, c.Dx, c.Dy, c.WaveSpeed)
}

// SourceIndex resolves the source placement against a grid.
func (c *Config) SourceIndex(g *fdtd.Grid) (int, int) {
	if c.Source.IX >= 0 && c.Source.IY >= 0 {
		return c.Source.IX, c.Source.IY
	}
	if c.Source.Centered {
		return g.CenterIndex()
	}
	return g.NearestIndex(c.Source.X, c.Source.Y)
}

// BuildIntegrator assembles the full simulation from the config: grid,
// field state, source, and integrator.
func (c *Config) BuildIntegrator() (*fdtd.Integrator, error) {
	g, err := c.Grid()
	if err != nil {
		return nil, err
	}
	fs, err := fdtd.NewFieldState(g.Nx, g.Ny, c.NStop)
	if err != nil {
		return nil, err
	}
	ix, iy := c.SourceIndex(g)
	src, err := fdtd.NewSource(c.Wavelength, c.PulseWidth, c.T0, c.WaveSpeed, ix, iy)
	if err != nil {
		return nil, err
	}
	b, err := fdtd.ParseBoundary(c.Boundary)
	if err != nil {
		return nil, err
	}
	return fdtd.NewIntegrator(g, fs, src, b)
}
