package grid

import "errors"

var (
	// ErrNoMount is returned by New when no mount target is given.
	ErrNoMount = errors.New("grid: missing mount target")
	// ErrDestroyed is returned by operations on a grid after Destroy.
	ErrDestroyed = errors.New("grid: destroyed")
)
