package model

import "errors"

// Sentinel error kinds shared by the domain packages.
var (
	// ErrInvalidArgument marks a contract violation by the caller: a
	// non-positive team size, a non-numeric skill level or a repeated id.
	ErrInvalidArgument = errors.New("invalid argument")
)
