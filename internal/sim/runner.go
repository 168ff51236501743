package sim

import (
	"context"

	"github.com/dsoppit/wavesim/internal/fdtd"
)

// Runner drives an integrator through its full step count, forwarding each
// snapshot to the registered sinks and metrics. The scheme is sequential
// across steps; parallelism lives inside the integrator's interior pass.
type Runner struct {
	integ   *fdtd.Integrator
	sinks   []Sink
	metrics []Metric
}

func New(integ *fdtd.Integrator) *Runner {
	return &Runner{
		integ:   integ,
		sinks:   make([]Sink, 0),
		metrics: make([]Metric, 0),
	}
}

func (r *Runner) AddSink(s Sink)     { r.sinks = append(r.sinks, s) }
func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

// Run executes all NSteps() steps. Cancellation is honored between steps;
// an interrupted run returns the partial Result alongside ctx.Err().
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	steps := r.integ.NSteps()
	dt := r.integ.Grid().Dt

	result := &Result{
		Times:   make([]float64, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	for n := 0; n < steps; n++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		snap, err := r.integ.Step(n)
		if err != nil {
			r.collect(result)
			return result, err
		}

		t := float64(n) * dt
		for _, m := range r.metrics {
			m.Observe(n, snap, t)
		}
		for _, s := range r.sinks {
			if err := s.OnFrame(n, snap, r.integ.Grid().X, r.integ.Grid().Y); err != nil {
				r.collect(result)
				return result, err
			}
		}

		result.Times = append(result.Times, t)
		result.StepsTaken++
	}

	r.collect(result)
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
