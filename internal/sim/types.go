package sim

import "github.com/dsoppit/wavesim/internal/fdtd"

// Sink consumes completed snapshots, one call per step in increasing step
// order. The field slice is owned by the run history and must be treated
// as read-only; a sink that needs to retain it past the call must copy.
// A sink error aborts the run.
type Sink interface {
	OnFrame(step int, field fdtd.Field, x, y []float64) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(step int, field fdtd.Field, x, y []float64) error

func (f SinkFunc) OnFrame(step int, field fdtd.Field, x, y []float64) error {
	return f(step, field, x, y)
}

// Metric observes each snapshot and reduces the run to a single value.
type Metric interface {
	Name() string
	Observe(step int, field fdtd.Field, t float64)
	Value() float64
	Reset()
}

// Result summarizes a completed (or interrupted) run.
type Result struct {
	Times      []float64
	StepsTaken int
	Metrics    map[string]float64
}
