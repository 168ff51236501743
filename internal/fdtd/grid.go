package fdtd

import (
	"fmt"
	"math"
)

// SpeedOfLight in vacuum, m/s.
const SpeedOfLight = 299792458.0

// courantSlack tolerates rounding in the Ox²+Oy² = 1 equality case (dx = dy
// with the derived time step).
const courantSlack = 1e-9

// Grid holds the immutable mesh parameters of a simulation: physical
// extents, cell sizes, point counts, the derived time step, and the
// Courant numbers of the explicit scheme. The x axis spans [0, Lx] and
// the y axis spans [-Ly/2, Ly/2], both with inclusive endpoints.
type Grid struct {
	Lx, Ly float64
	Dx, Dy float64
	C      float64
	Nx, Ny int
	Dt     float64
	Ox, Oy float64
	X, Y   []float64
}

// NewGrid derives a stable grid from physical parameters. The time step is
// dt = 1/(c·√(1/dx² + 1/dy²)), which saturates the 2D CFL bound
// Ox² + Oy² ≤ 1 by construction.
func NewGrid(lx, ly, dx, dy, c float64) (*Grid, error) {
	dt := 0.0
	if dx > 0 && dy > 0 && c > 0 {
		dt = 1.0 / (c * math.Sqrt(1.0/(dx*dx)+1.0/(dy*dy)))
	}
	return NewGridWithDt(lx, ly, dx, dy, c, dt)
}

// NewGridWithDt builds a grid with an explicit time step, rejecting any dt
// that violates the CFL stability bound.
func NewGridWithDt(lx, ly, dx, dy, c, dt float64) (*Grid, error) {
	if lx <= 0 || ly <= 0 {
		return nil, fmt.Errorf("%w: domain extents must be positive (Lx=%g, Ly=%g)", ErrInvalidParameter, lx, ly)
	}
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("%w: cell sizes must be positive (dx=%g, dy=%g)", ErrInvalidParameter, dx, dy)
	}
	if c <= 0 {
		return nil, fmt.Errorf("%w: wave speed must be positive (c=%g)", ErrInvalidParameter, c)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w: time step must be positive (dt=%g)", ErrInvalidParameter, dt)
	}

	nx := int(math.Floor(lx/dx)) + 2
	ny := int(math.Floor(ly/dy)) + 2
	if nx < 3 || ny < 3 {
		return nil, fmt.Errorf("%w: grid too small for a 3-point stencil (Nx=%d, Ny=%d)", ErrInvalidParameter, nx, ny)
	}

	ox := c * dt / dx
	oy := c * dt / dy
	if ox*ox+oy*oy > 1.0+courantSlack {
		return nil, fmt.Errorf("%w: CFL bound violated (Ox²+Oy²=%g > 1)", ErrInvalidParameter, ox*ox+oy*oy)
	}

	g := &Grid{
		Lx: lx, Ly: ly,
		Dx: dx, Dy: dy,
		C:  c,
		Nx: nx, Ny: ny,
		Dt: dt,
		Ox: ox, Oy: oy,
		X: make([]float64, nx),
		Y: make([]float64, ny),
	}
	for i := range g.X {
		g.X[i] = float64(i) * dx
	}
	for j := range g.Y {
		g.Y[j] = -ly/2 + float64(j)*dy
	}
	return g, nil
}

// NearestIndex maps a physical coordinate to the closest grid indices,
// clamped to the grid.
func (g *Grid) NearestIndex(x, y float64) (int, int) {
	i := int(math.Round(x / g.Dx))
	j := int(math.Round((y + g.Ly/2) / g.Dy))
	return clampIndex(i, g.Nx), clampIndex(j, g.Ny)
}

// CenterIndex returns the indices of the domain center.
func (g *Grid) CenterIndex() (int, int) {
	return g.NearestIndex(g.Lx/2, 0)
}

// Interior reports whether (i, j) lies strictly inside the boundary.
func (g *Grid) Interior(i, j int) bool {
	return i > 0 && i < g.Nx-1 && j > 0 && j < g.Ny-1
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
