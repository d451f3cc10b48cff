package cloth

import "errors"

var (
	// ErrGridMismatch indicates the vertex buffer does not hold (rows+1)*(cols+1) vertices.
	ErrGridMismatch = errors.New("cloth: vertex count does not match grid dimensions")

	// ErrInvalidMass indicates a negative total mass.
	ErrInvalidMass = errors.New("cloth: total mass must be non-negative")

	// ErrInvalidDamping indicates a damping coefficient outside [0, 1].
	ErrInvalidDamping = errors.New("cloth: damping must be within [0, 1]")
)
