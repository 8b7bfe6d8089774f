// Package controller implements the smart home rule engine.
//
// A Controller owns the room registry and the global home state (occupied
// room, day/night flag, outside temperature) and reacts to three stimuli:
// the occupant entering a room, a day/night transition and an outside
// temperature change. Every decision is narrated into an append-only
// event log.
//
// All public methods are serialized by a single mutex, so a stimulus is
// always applied as a whole. Log observers run while that mutex is held
// and must not call back into the controller.
package controller

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/eventlog"
	"github.com/dokzlo13/smarthome/internal/room"
)

// DefaultOutsideTemperature is the outside temperature of a fresh controller (°C)
const DefaultOutsideTemperature = 21.0

// Option configures a Controller
type Option func(*Controller)

// WithOutsideTemperature sets the initial outside temperature
func WithOutsideTemperature(celsius float64) Option {
	return func(c *Controller) {
		c.outsideTemperature = celsius
	}
}

// WithEventLog uses the given log instead of a fresh one
func WithEventLog(l *eventlog.Log) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// Controller is the rule engine plus the home state it acts on
type Controller struct {
	mu sync.Mutex

	rooms              *room.Registry
	isNight            bool
	outsideTemperature float64
	currentRoom        string
	occupied           bool
	log                *eventlog.Log

	// stimulus being processed, used to tag log entries
	stimulus eventlog.Stimulus
}

// New creates a controller with no rooms, in day mode, at 21°C outside
func New(opts ...Option) *Controller {
	c := &Controller{
		rooms:              room.NewRegistry(),
		outsideTemperature: DefaultOutsideTemperature,
		stimulus:           eventlog.StimulusDriver,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = eventlog.New()
	}
	return c
}

// AddRoom registers a room. A room with the same name (ignoring case) is replaced.
func (c *Controller) AddRoom(r *room.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms.Add(r)
	log.Debug().Str("room", r.Name()).Int("devices", len(r.Devices())).Msg("Room registered")
}

// GetRoom looks up a room by name, ignoring case
func (c *Controller) GetRoom(name string) (*room.Room, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.Get(name)
}

// Rooms returns a copy of the lowercased-name to room mapping
func (c *Controller) Rooms() map[string]*room.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.Map()
}

// RoomList returns the rooms in registration order
func (c *Controller) RoomList() []*room.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.Rooms()
}

// RoomKeys returns lowercased room names in registration order
func (c *Controller) RoomKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.Keys()
}

// Inspect runs fn with the rooms in registration order while holding the
// controller lock, so device state can be read consistently. fn must not
// call back into the controller.
func (c *Controller) Inspect(fn func(rooms []*room.Room)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.rooms.Rooms())
}

// SetIsNight sets the day/night flag without touching any device.
// Call UpdateLightingBasedOnTime afterwards to apply the transition.
func (c *Controller) SetIsNight(night bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isNight = night
}

// IsNight reports the day/night flag
func (c *Controller) IsNight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isNight
}

// SetOutsideTemperature stores the outside temperature without reacting to it.
// Range validation is the caller's job.
func (c *Controller) SetOutsideTemperature(celsius float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outsideTemperature = celsius
}

// OutsideTemperature returns the stored outside temperature
func (c *Controller) OutsideTemperature() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outsideTemperature
}

// CurrentRoom returns the canonical name of the occupied room, if any
func (c *Controller) CurrentRoom() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentRoom, c.occupied
}

// Record appends a driver-originated message to the event log
func (c *Controller) Record(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Append(eventlog.StimulusDriver, message)
}

// Log returns a snapshot of the event log messages
func (c *Controller) Log() []string {
	return c.log.Messages()
}

// Entries returns a snapshot of the event log entries
func (c *Controller) Entries() []eventlog.Entry {
	return c.log.Entries()
}

// Subscribe registers an observer on the event log.
// The observer must not call back into the controller.
func (c *Controller) Subscribe(obs eventlog.Observer) {
	c.log.Subscribe(obs)
}

// begin marks the stimulus being processed. Caller holds mu.
func (c *Controller) begin(stimulus eventlog.Stimulus) func() {
	c.stimulus = stimulus
	return func() {
		c.stimulus = eventlog.StimulusDriver
	}
}

// emit appends a message tagged with the current stimulus. Caller holds mu.
func (c *Controller) emit(message string) {
	c.log.Append(c.stimulus, message)
}
