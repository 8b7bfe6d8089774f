// Package device provides the simulated home devices.
// Devices are plain state holders; all decision logic lives in the controller.
package device

import (
	"fmt"
	"strings"
)

// Kind is the capability tag a device is filtered by
type Kind string

const (
	KindLight        Kind = "light"
	KindMotionSensor Kind = "motion_sensor"
	KindThermostat   Kind = "thermostat"
)

// String returns the kind name
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a config value into a Kind.
// Accepts a few spellings for motion sensors, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return KindLight, nil
	case "motion_sensor", "motionsensor", "motion":
		return KindMotionSensor, nil
	case "thermostat":
		return KindThermostat, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Device is a single unit inside a room
type Device interface {
	Name() string
	Kind() Kind
	Status() string
}

// New creates a device of the given kind in its initial state
func New(kind Kind, name string) (Device, error) {
	switch kind {
	case KindLight:
		return NewLight(name), nil
	case KindMotionSensor:
		return NewMotionSensor(name), nil
	case KindThermostat:
		return NewThermostat(name), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// Light is a switchable light. Initially off.
type Light struct {
	name string
	on   bool
}

// NewLight creates a light that is off
func NewLight(name string) *Light {
	return &Light{name: name}
}

func (l *Light) Name() string { return l.name }
func (l *Light) Kind() Kind   { return KindLight }
func (l *Light) IsOn() bool   { return l.on }
func (l *Light) TurnOn()      { l.on = true }
func (l *Light) TurnOff()     { l.on = false }

// Status returns e.g. "Light 'Hall': ON"
func (l *Light) Status() string {
	state := "OFF"
	if l.on {
		state = "ON"
	}
	return fmt.Sprintf("Light '%s': %s", l.name, state)
}

// MotionSensor reports occupant presence. Initially no presence.
type MotionSensor struct {
	name     string
	presence bool
}

// NewMotionSensor creates a sensor with no presence
func NewMotionSensor(name string) *MotionSensor {
	return &MotionSensor{name: name}
}

func (s *MotionSensor) Name() string        { return s.name }
func (s *MotionSensor) Kind() Kind          { return KindMotionSensor }
func (s *MotionSensor) Presence() bool      { return s.presence }
func (s *MotionSensor) SetPresence(on bool) { s.presence = on }

// Status returns e.g. "MotionSensor 'Hall': NO PRESENCE"
func (s *MotionSensor) Status() string {
	state := "NO PRESENCE"
	if s.presence {
		state = "PRESENCE"
	}
	return fmt.Sprintf("MotionSensor '%s': %s", s.name, state)
}
