package sim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dsoppit/wavesim/internal/fdtd"
	"github.com/dsoppit/wavesim/internal/metrics"
	"github.com/dsoppit/wavesim/internal/sim"
)

func newIntegrator(nStop int) *fdtd.Integrator {
	g, err := fdtd.NewGrid(9, 9, 1, 1, 1)
	Expect(err).NotTo(HaveOccurred())
	fs, err := fdtd.NewFieldState(g.Nx, g.Ny, nStop)
	Expect(err).NotTo(HaveOccurred())
	ix, iy := g.CenterIndex()
	src, err := fdtd.NewSource(4, 8, 4, 1, ix, iy)
	Expect(err).NotTo(HaveOccurred())
	integ, err := fdtd.NewIntegrator(g, fs, src, fdtd.BoundaryMur)
	Expect(err).NotTo(HaveOccurred())
	return integ
}

var _ = Describe("Runner", func() {
	It("runs all steps and fills the history", func() {
		integ := newIntegrator(5)
		result, err := sim.New(integ).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(5))
		Expect(result.Times).To(HaveLen(5))
		Expect(integ.Fields().Recorded()).To(Equal(5))

		size := integ.Grid().Nx * integ.Grid().Ny
		for n := 0; n < 5; n++ {
			snap, err := integ.Fields().Snapshot(n)
			Expect(err).NotTo(HaveOccurred())
			Expect(snap).To(HaveLen(size))
		}
	})

	It("forwards frames to sinks in increasing step order", func() {
		integ := newIntegrator(8)
		runner := sim.New(integ)

		var steps []int
		runner.AddSink(sim.SinkFunc(func(step int, field fdtd.Field, x, y []float64) error {
			Expect(field).To(HaveLen(len(x) * len(y)))
			steps = append(steps, step)
			return nil
		}))

		_, err := runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7}))
	})

	It("reports metric values in the result", func() {
		integ := newIntegrator(20)
		runner := sim.New(integ)
		runner.AddMetric(metrics.NewEnergy())
		runner.AddMetric(metrics.NewPeakAmplitude())

		result, err := runner.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Metrics).To(HaveKey("energy"))
		Expect(result.Metrics).To(HaveKey("peak_amplitude"))
		Expect(result.Metrics["peak_amplitude"]).To(BeNumerically(">", 0))
	})

	It("aborts when a sink fails", func() {
		integ := newIntegrator(10)
		runner := sim.New(integ)

		sinkErr := errors.New("renderer went away")
		runner.AddSink(sim.SinkFunc(func(step int, field fdtd.Field, x, y []float64) error {
			if step == 3 {
				return sinkErr
			}
			return nil
		}))

		result, err := runner.Run(context.Background())
		Expect(err).To(MatchError(sinkErr))
		Expect(result.StepsTaken).To(Equal(3))
	})

	It("honors context cancellation between steps", func() {
		integ := newIntegrator(100)
		runner := sim.New(integ)

		ctx, cancel := context.WithCancel(context.Background())
		runner.AddSink(sim.SinkFunc(func(step int, field fdtd.Field, x, y []float64) error {
			if step == 4 {
				cancel()
			}
			return nil
		}))

		result, err := runner.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.StepsTaken).To(BeNumerically("<", 100))
		Expect(result.StepsTaken).To(BeNumerically(">=", 5))
	})
})
