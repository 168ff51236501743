package metrics

import (
	"math"

	"github.com/dsoppit/wavesim/internal/fdtd"
)

// Energy tracks the discrete field energy (sum of squares) of the latest
// observed snapshot.
type Energy struct {
	name    string
	current float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(step int, field fdtd.Field, t float64) {
	e.current = FieldEnergy(field)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
	e.samples = 0
}

// PeakAmplitude tracks the maximum |u| seen over the whole run.
type PeakAmplitude struct {
	name string
	peak float64
}

func NewPeakAmplitude() *PeakAmplitude {
	return &PeakAmplitude{name: "peak_amplitude"}
}

func (p *PeakAmplitude) Name() string { return p.name }

func (p *PeakAmplitude) Observe(step int, field fdtd.Field, t float64) {
	for _, v := range field {
		if a := math.Abs(v); a > p.peak {
			p.peak = a
		}
	}
}

func (p *PeakAmplitude) Value() float64 { return p.peak }

func (p *PeakAmplitude) Reset() { p.peak = 0 }

// FieldEnergy returns the sum of squares of a field.
func FieldEnergy(field fdtd.Field) float64 {
	sum := 0.0
	for _, v := range field {
		sum += v * v
	}
	return sum
}
