package game

import "errors"

// ErrInvalidTransition is returned when Hit, Stand or Step is requested in a
// state that does not allow it. The match is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")
