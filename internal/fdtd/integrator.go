package fdtd

import (
	"fmt"
	"math"
)

// Boundary selects the edge treatment applied after the interior pass.
type Boundary int

const (
	// BoundaryMur applies first-order Mur absorbing conditions: outgoing
	// waves exit the domain with little reflection.
	BoundaryMur Boundary = iota
	// BoundaryReflecting pins the edges at zero (Dirichlet), reflecting
	// the wavefront back into the domain.
	BoundaryReflecting
)

func (b Boundary) String() string {
	switch b {
	case BoundaryMur:
		return "mur"
	case BoundaryReflecting:
		return "reflecting"
	default:
		return fmt.Sprintf("boundary(%d)", int(b))
	}
}

// ParseBoundary maps a config/flag name to a Boundary.
func ParseBoundary(name string) (Boundary, error) {
	switch name {
	case "mur", "":
		return BoundaryMur, nil
	case "reflecting":
		return BoundaryReflecting, nil
	default:
		return 0, fmt.Errorf("%w: unknown boundary condition %q", ErrInvalidParameter, name)
	}
}

// minRowChunk is the smallest number of interior rows a worker goroutine
// takes in the parallel interior pass.
const minRowChunk = 16

// Integrator advances the wave field one leapfrog step at a time. A step
// performs, in order: interior stencil update, hard source injection,
// boundary pass, snapshot recording, time-level rotation. The integrator
// exclusively owns the field ring; nothing else may write to it.
type Integrator struct {
	grid     *Grid
	fields   *FieldState
	source   *Source
	boundary Boundary
}

// NewIntegrator wires a grid, field state, and source together. The source
// must sit strictly inside the grid so the hard injection never lands on a
// boundary point.
func NewIntegrator(g *Grid, fs *FieldState, src *Source, b Boundary) (*Integrator, error) {
	if g == nil || fs == nil || src == nil {
		return nil, fmt.Errorf("%w: integrator needs a grid, field state, and source", ErrInvalidParameter)
	}
	if fs.Nx != g.Nx || fs.Ny != g.Ny {
		return nil, fmt.Errorf("%w: field shape (%d,%d) does not match grid (%d,%d)", ErrInvalidParameter, fs.Nx, fs.Ny, g.Nx, g.Ny)
	}
	if !g.Interior(src.IX, src.IY) {
		return nil, fmt.Errorf("%w: source (%d,%d) not interior to %dx%d grid", ErrInvalidParameter, src.IX, src.IY, g.Nx, g.Ny)
	}
	if b != BoundaryMur && b != BoundaryReflecting {
		return nil, fmt.Errorf("%w: unknown boundary condition %v", ErrInvalidParameter, b)
	}
	return &Integrator{grid: g, fields: fs, source: src, boundary: b}, nil
}

// Grid returns the mesh the integrator runs on.
func (it *Integrator) Grid() *Grid { return it.grid }

// Fields returns the field state, including the snapshot history.
func (it *Integrator) Fields() *FieldState { return it.fields }

// Source returns the pulse model.
func (it *Integrator) Source() *Source { return it.source }

// Boundary returns the configured edge treatment.
func (it *Integrator) Boundary() Boundary { return it.boundary }

// NSteps returns the history capacity, i.e. how many times Step may be
// called.
func (it *Integrator) NSteps() int { return it.fields.NStop }

// Step advances the field from level n to n+1 and returns the recorded
// snapshot. Steps must be invoked with n = 0, 1, ... NSteps()-1 in order.
func (it *Integrator) Step(n int) (Field, error) {
	if n < 0 || n >= it.fields.NStop {
		return nil, fmt.Errorf("%w: step %d outside [0, %d)", ErrIndexOutOfRange, n, it.fields.NStop)
	}

	it.updateInterior()
	it.applySource(n)
	it.updateBoundaries()

	next := it.fields.Next()
	for _, v := range next {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: at step %d", ErrUnstable, n)
		}
	}

	if err := it.fields.Record(n, next); err != nil {
		return nil, err
	}
	snap, err := it.fields.Snapshot(n)
	if err != nil {
		return nil, err
	}
	it.fields.Rotate()
	return snap, nil
}

// updateInterior applies the 5-point leapfrog stencil to every interior
// point, reading levels n and n-1 and writing level n+1. Rows are
// independent within a step, so they are split across workers.
func (it *Integrator) updateInterior() {
	nx, ny := it.grid.Nx, it.grid.Ny
	ox2 := it.grid.Ox * it.grid.Ox
	oy2 := it.grid.Oy * it.grid.Oy
	prev, curr, next := it.fields.Prev(), it.fields.Curr(), it.fields.Next()

	ParallelFor(nx-2, minRowChunk, func(start, end int) {
		for r := start; r < end; r++ {
			i := r + 1
			row := i * ny
			up := row + ny   // row i+1
			down := row - ny // row i-1
			for j := 1; j < ny-1; j++ {
				u0 := curr[row+j]
				next[row+j] = 2*u0 +
					ox2*(curr[up+j]-2*u0+curr[down+j]) +
					oy2*(curr[row+j+1]-2*u0+curr[row+j-1]) -
					prev[row+j]
			}
		}
	})
}

// applySource hard-forces the pulse amplitude at the source point,
// replacing whatever the stencil computed there.
func (it *Integrator) applySource(n int) {
	next := it.fields.Next()
	next[it.source.IX*it.grid.Ny+it.source.IY] = it.source.Amplitude(n, it.grid.Dt)
}

func (it *Integrator) updateBoundaries() {
	switch it.boundary {
	case BoundaryReflecting:
		it.pinEdges()
	default:
		it.murEdges()
	}
}

// murEdges applies the first-order Mur one-way condition on each edge,
// reading the just-computed interior neighbors at level n+1, then sets the
// corners to the average of their two adjacent edge values.
func (it *Integrator) murEdges() {
	nx, ny := it.grid.Nx, it.grid.Ny
	cdt := it.grid.C * it.grid.Dt
	kx := (cdt - it.grid.Dx) / (cdt + it.grid.Dx)
	ky := (cdt - it.grid.Dy) / (cdt + it.grid.Dy)
	curr, next := it.fields.Curr(), it.fields.Next()

	last := (nx - 1) * ny
	inner := (nx - 2) * ny
	for j := 1; j < ny-1; j++ {
		next[j] = curr[ny+j] + kx*(next[ny+j]-curr[j])
		next[last+j] = curr[inner+j] + kx*(next[inner+j]-curr[last+j])
	}
	for i := 1; i < nx-1; i++ {
		row := i * ny
		next[row+ny-1] = curr[row+ny-2] + ky*(next[row+ny-2]-curr[row+ny-1])
		next[row] = curr[row+1] + ky*(next[row+1]-curr[row])
	}

	next[0] = 0.5 * (next[ny] + next[1])
	next[last] = 0.5 * (next[inner] + next[last+1])
	next[last+ny-1] = 0.5 * (next[inner+ny-1] + next[last+ny-2])
	next[ny-1] = 0.5 * (next[2*ny-1] + next[ny-2])
}

// pinEdges zeroes the boundary for the reflecting reference case. The next
// buffer is recycled from a stale level, so the edges are written every
// step.
func (it *Integrator) pinEdges() {
	nx, ny := it.grid.Nx, it.grid.Ny
	next := it.fields.Next()

	last := (nx - 1) * ny
	for j := 0; j < ny; j++ {
		next[j] = 0
		next[last+j] = 0
	}
	for i := 1; i < nx-1; i++ {
		next[i*ny] = 0
		next[i*ny+ny-1] = 0
	}
}
