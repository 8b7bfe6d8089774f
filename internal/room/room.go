// Package room provides rooms and the case-insensitive room registry.
package room

import (
	"strings"

	"github.com/dokzlo13/smarthome/internal/device"
)

// Room is a named, ordered collection of devices it exclusively owns
type Room struct {
	name    string
	devices []device.Device
}

// New creates a room with the given devices in order
func New(name string, devices ...device.Device) *Room {
	r := &Room{name: name}
	r.devices = append(r.devices, devices...)
	return r
}

// Name returns the canonical (display-case) room name
func (r *Room) Name() string {
	return r.name
}

// Key returns the registry key of the room
func (r *Room) Key() string {
	return Key(r.name)
}

// Is reports whether the room has the given name, ignoring case
func (r *Room) Is(name string) bool {
	return r.Key() == Key(name)
}

// AddDevice appends a device. Only used while the home is being built.
func (r *Room) AddDevice(d device.Device) {
	r.devices = append(r.devices, d)
}

// Devices returns a copy of the device list in insertion order
func (r *Room) Devices() []device.Device {
	out := make([]device.Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// DevicesOfKind returns devices tagged with kind, in insertion order.
// Returns an empty slice if none match.
func (r *Room) DevicesOfKind(kind device.Kind) []device.Device {
	out := []device.Device{}
	for _, d := range r.devices {
		if d.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}

// Lights returns all lights in the room
func (r *Room) Lights() []*device.Light {
	return ofKind[*device.Light](r, device.KindLight)
}

// MotionSensors returns all motion sensors in the room
func (r *Room) MotionSensors() []*device.MotionSensor {
	return ofKind[*device.MotionSensor](r, device.KindMotionSensor)
}

// Thermostats returns all thermostats in the room
func (r *Room) Thermostats() []*device.Thermostat {
	return ofKind[*device.Thermostat](r, device.KindThermostat)
}

// FirstMotionSensor returns the first motion sensor by insertion order, or nil.
// A room has at most one canonical sensor; the rest are never consulted.
func (r *Room) FirstMotionSensor() *device.MotionSensor {
	sensors := r.MotionSensors()
	if len(sensors) == 0 {
		return nil
	}
	return sensors[0]
}

// ofKind narrows tag-matched devices to their concrete type.
// A device whose tag does not match its concrete type is skipped.
func ofKind[T device.Device](r *Room, kind device.Kind) []T {
	matched := r.DevicesOfKind(kind)
	out := make([]T, 0, len(matched))
	for _, d := range matched {
		if typed, ok := d.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// Key normalizes a room name into its registry key
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
