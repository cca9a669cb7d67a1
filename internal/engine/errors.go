package engine

import "errors"

// Domain errors for engine ticks.
var (
	// ErrBadSample indicates a delivered sample carrying a NaN or Inf axis.
	ErrBadSample = errors.New("engine: bad sample (non-finite axis)")

	// ErrBadStep indicates a non-positive or non-finite tick duration.
	ErrBadStep = errors.New("engine: bad step (dt must be positive and finite)")
)
