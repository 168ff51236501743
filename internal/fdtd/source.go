package fdtd

import (
	"fmt"
	"math"
)

// Source is a pulsed point source: a Gaussian envelope of width w centered
// at T0 modulating a sinusoid of wavelength l, injected at fixed grid
// indices (IX, IY).
type Source struct {
	Wavelength float64
	PulseWidth float64
	T0         float64
	C          float64
	IX, IY     int
}

// NewSource validates the pulse parameters. A zero pulse width would make
// the envelope exponent NaN, so it is rejected up front.
func NewSource(l, w, t0, c float64, ix, iy int) (*Source, error) {
	if l == 0 {
		return nil, fmt.Errorf("%w: wavelength must be nonzero", ErrInvalidParameter)
	}
	if w == 0 {
		return nil, fmt.Errorf("%w: pulse width must be nonzero", ErrInvalidParameter)
	}
	if c <= 0 {
		return nil, fmt.Errorf("%w: wave speed must be positive (c=%g)", ErrInvalidParameter, c)
	}
	if ix < 0 || iy < 0 {
		return nil, fmt.Errorf("%w: source indices must be non-negative (ix=%d, iy=%d)", ErrInvalidParameter, ix, iy)
	}
	return &Source{Wavelength: l, PulseWidth: w, T0: t0, C: c, IX: ix, IY: iy}, nil
}

// Amplitude evaluates the pulse at discrete step n with time step dt:
//
//	exp(-((n·dt - T0)/(w/2))²) · sin((2π·c/l)·n·dt)
func (s *Source) Amplitude(n int, dt float64) float64 {
	t := float64(n) * dt
	arg := (t - s.T0) / (s.PulseWidth / 2)
	return math.Exp(-arg*arg) * math.Sin((2*math.Pi*s.C/s.Wavelength)*t)
}
