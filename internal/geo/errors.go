package geo

import "errors"

// ErrInvalidLocation is returned for coordinates outside the valid range
var ErrInvalidLocation = errors.New("invalid location")
