package app

import "errors"

// ErrShutdownTimeout is returned by Close when resources are not released in time
var ErrShutdownTimeout = errors.New("shutdown timed out")
