package fdtd

import "errors"

// Domain errors for grid and integrator operations.
var (
	// ErrInvalidParameter indicates a constructor input outside its valid range.
	ErrInvalidParameter = errors.New("fdtd: invalid parameter")

	// ErrIndexOutOfRange indicates a step or history index outside [0, nStop).
	ErrIndexOutOfRange = errors.New("fdtd: index out of range")

	// ErrUnstable indicates the field diverged (NaN or Inf detected).
	ErrUnstable = errors.New("fdtd: simulation unstable (field diverged)")
)
