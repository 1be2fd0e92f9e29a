package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrRosterRead   = errors.New("roster read failed")
	ErrRosterDecode = errors.New("roster decode failed")
)
