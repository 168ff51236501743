package fdtd

import "fmt"

// Field is a flat Nx×Ny scalar field, row-major: element (i, j) lives at
// index i·Ny + j.
type Field []float64

// FieldState owns the three time levels of the leapfrog scheme and the
// per-step snapshot history. The levels form a ring of three buffers that
// are swapped, never element-copied, on rotation.
type FieldState struct {
	Nx, Ny int
	NStop  int

	prev Field // level n-1
	curr Field // level n
	next Field // level n+1

	slab     []float64
	history  []Field
	recorded int
}

// NewFieldState zero-allocates the three levels and a history slab of
// nStop snapshots.
func NewFieldState(nx, ny, nStop int) (*FieldState, error) {
	if nx < 3 || ny < 3 {
		return nil, fmt.Errorf("%w: field needs at least 3 points per axis (Nx=%d, Ny=%d)", ErrInvalidParameter, nx, ny)
	}
	if nStop <= 0 {
		return nil, fmt.Errorf("%w: nStop must be positive (got %d)", ErrInvalidParameter, nStop)
	}

	size := nx * ny
	fs := &FieldState{
		Nx: nx, Ny: ny, NStop: nStop,
		prev:    make(Field, size),
		curr:    make(Field, size),
		next:    make(Field, size),
		slab:    make([]float64, size*nStop),
		history: make([]Field, nStop),
	}
	for n := 0; n < nStop; n++ {
		fs.history[n] = fs.slab[n*size : (n+1)*size]
	}
	return fs, nil
}

// Prev returns the n-1 level.
func (fs *FieldState) Prev() Field { return fs.prev }

// Curr returns the n level.
func (fs *FieldState) Curr() Field { return fs.curr }

// Next returns the n+1 level, the write target of the current step.
func (fs *FieldState) Next() Field { return fs.next }

// Record copies the given field into history slot step.
func (fs *FieldState) Record(step int, f Field) error {
	if step < 0 || step >= fs.NStop {
		return fmt.Errorf("%w: step %d outside [0, %d)", ErrIndexOutOfRange, step, fs.NStop)
	}
	copy(fs.history[step], f)
	if step >= fs.recorded {
		fs.recorded = step + 1
	}
	return nil
}

// Snapshot returns the recorded field at the given step. The slice is
// owned by the history and must be treated as read-only.
func (fs *FieldState) Snapshot(step int) (Field, error) {
	if step < 0 || step >= fs.NStop {
		return nil, fmt.Errorf("%w: step %d outside [0, %d)", ErrIndexOutOfRange, step, fs.NStop)
	}
	return fs.history[step], nil
}

// Recorded returns the number of history slots written so far.
func (fs *FieldState) Recorded() int { return fs.recorded }

// Rotate shifts the time levels: n-1 ← n, n ← n+1. The stale n-1 buffer
// becomes the next write target; its contents are overwritten wholesale by
// the following step, so no zeroing is needed.
func (fs *FieldState) Rotate() {
	fs.prev, fs.curr, fs.next = fs.curr, fs.next, fs.prev
}

// At reads element (i, j) of a field with the state's shape.
func (fs *FieldState) At(f Field, i, j int) float64 { return f[i*fs.Ny+j] }
