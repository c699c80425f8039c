package core

import "errors"

// ErrDegenerateDirection is returned when a direction vector is too short to normalize
var ErrDegenerateDirection = errors.New("degenerate direction")
