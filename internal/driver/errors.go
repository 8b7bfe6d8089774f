package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dokzlo13/smarthome/internal/controller"
)

var (
	// ErrNoRoom is returned when no room name was given
	ErrNoRoom = errors.New("no room specified")
	// ErrUnknownRoom is matched by UnknownRoomError
	ErrUnknownRoom = errors.New("unknown room")
	// ErrUnrealisticTemperature is matched by TemperatureRangeError
	ErrUnrealisticTemperature = errors.New("unrealistic outside temperature")
	// ErrNoLocation is returned by AutoTime when no daylight source is configured
	ErrNoLocation = errors.New("no location configured")
	// ErrNoLedger is returned by History when the ledger is disabled
	ErrNoLedger = errors.New("event ledger disabled")
)

// UnknownRoomError reports a room name that is not registered
type UnknownRoomError struct {
	Name      string
	Available []string
}

func (e *UnknownRoomError) Error() string {
	return fmt.Sprintf("unknown room %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Is makes errors.Is(err, ErrUnknownRoom) work
func (e *UnknownRoomError) Is(target error) bool {
	return target == ErrUnknownRoom
}

// TemperatureRangeError reports a temperature outside the accepted range
type TemperatureRangeError struct {
	Value    float64
	Min, Max float64
}

func (e *TemperatureRangeError) Error() string {
	return fmt.Sprintf("temperature %s°C is outside [%s, %s]",
		controller.FormatTemperature(e.Value),
		controller.FormatTemperature(e.Min),
		controller.FormatTemperature(e.Max))
}

// Is makes errors.Is(err, ErrUnrealisticTemperature) work
func (e *TemperatureRangeError) Is(target error) bool {
	return target == ErrUnrealisticTemperature
}
