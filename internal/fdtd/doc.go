// Package fdtd implements an explicit second-order finite-difference
// time-domain scheme for the 2D scalar wave equation on a uniform
// rectangular grid.
//
// The building blocks:
//
//   - [Grid]: immutable mesh parameters, time step, and Courant numbers
//   - [FieldState]: the three-level time ring plus the snapshot history
//   - [Source]: a Gaussian-enveloped sinusoidal point pulse
//   - [Integrator]: one leapfrog step (interior stencil, source
//     injection, boundary pass, snapshot, rotation)
//
// # Example
//
//	g, _ := fdtd.NewGrid(10e-6, 10e-6, 0.12e-6, 0.12e-6, fdtd.SpeedOfLight)
//	fs, _ := fdtd.NewFieldState(g.Nx, g.Ny, 150)
//	ix, iy := g.CenterIndex()
//	src, _ := fdtd.NewSource(1e-6, 18e-15, 4e-15, fdtd.SpeedOfLight, ix, iy)
//	integ, _ := fdtd.NewIntegrator(g, fs, src, fdtd.BoundaryMur)
//	for n := 0; n < 150; n++ {
//	    snap, _ := integ.Step(n)
//	    _ = snap
//	}
//
// # Thread Safety
//
// Integrator instances are NOT thread-safe; the field ring is owned and
// mutated by a single Step caller. Snapshots already recorded in the
// history may be read concurrently.
package fdtd
