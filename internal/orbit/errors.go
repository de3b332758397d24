package orbit

import "errors"

var (
	// ErrNonPositiveMass indicates a body built with mass <= 0.
	ErrNonPositiveMass = errors.New("orbit: body mass must be positive")

	// ErrNoSun indicates a system without any body flagged as the sun.
	ErrNoSun = errors.New("orbit: no body is flagged as the sun")

	// ErrNonFinite indicates a NaN or infinite position, velocity or mass.
	ErrNonFinite = errors.New("orbit: value is NaN or infinite")

	// ErrUnknownGravity indicates an unrecognized gravity mode name.
	ErrUnknownGravity = errors.New("orbit: unknown gravity mode")
)
