package physics

import "errors"

// Domain errors for the simulation and estimation pipeline. All of them are
// terminal for the current run; callers decide whether to re-prompt or abort.
var (
	// ErrInvalidParameter indicates a configuration value outside its valid range.
	ErrInvalidParameter = errors.New("physics: invalid parameter")

	// ErrMalformedInput indicates an input series that cannot be adapted into a trajectory.
	ErrMalformedInput = errors.New("physics: malformed input")

	// ErrInsufficientData indicates too few usable points for an estimate or fit.
	ErrInsufficientData = errors.New("physics: insufficient data")

	// ErrUnstable indicates the integration would be numerically unstable at
	// the requested timestep.
	ErrUnstable = errors.New("physics: numerically unstable")
)
