package distributor

import "errors"

var (
	// ErrInvalidLimits is returned when either capacity cap is below one.
	ErrInvalidLimits = errors.New("bin limits must both be at least 1")
)
