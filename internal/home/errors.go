package home

import "errors"

// ErrUnnamedRoom is returned for a room declared without a name
var ErrUnnamedRoom = errors.New("room has no name")
