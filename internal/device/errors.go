package device

import "errors"

// ErrUnknownKind is returned for a device kind that is not supported
var ErrUnknownKind = errors.New("unknown device kind")
