// Package driver is the boundary between front ends (shell, scripts) and
// the controller. It owns input validation and the call sequences the
// controller expects, such as capturing the previous day/night flag before
// flipping it.
package driver

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/config"
	"github.com/dokzlo13/smarthome/internal/controller"
	"github.com/dokzlo13/smarthome/internal/eventlog"
	"github.com/dokzlo13/smarthome/internal/ledger"
	"github.com/dokzlo13/smarthome/internal/room"
)

// Daylight tells whether a moment falls at night
type Daylight interface {
	IsNight(at time.Time) (bool, error)
}

// History serves persisted log queries
type History interface {
	Recent(limit int) ([]*ledger.Entry, error)
	ByStimulus(stimulus eventlog.Stimulus, limit int) ([]*ledger.Entry, error)
}

// Option configures a Driver
type Option func(*Driver)

// WithDaylight enables AutoTime
func WithDaylight(d Daylight) Option {
	return func(dr *Driver) {
		dr.daylight = d
	}
}

// WithHistory enables History
func WithHistory(h History) Option {
	return func(dr *Driver) {
		dr.history = h
	}
}

// WithTemperatureRange overrides the accepted outside temperature range
func WithTemperatureRange(lo, hi float64) Option {
	return func(dr *Driver) {
		dr.minTemp, dr.maxTemp = lo, hi
	}
}

// Driver validates front-end input and feeds stimuli to the controller
type Driver struct {
	ctrl     *controller.Controller
	daylight Daylight
	history  History
	minTemp  float64
	maxTemp  float64
}

// New creates a driver for ctrl. The default temperature range is [-89, 56] °C.
func New(ctrl *controller.Controller, opts ...Option) *Driver {
	d := &Driver{
		ctrl:    ctrl,
		minTemp: config.DefaultMinTemperature,
		maxTemp: config.DefaultMaxTemperature,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Controller returns the underlying controller
func (d *Driver) Controller() *controller.Controller {
	return d.ctrl
}

// TemperatureRange returns the accepted outside temperature range
func (d *Driver) TemperatureRange() (lo, hi float64) {
	return d.minTemp, d.maxTemp
}

// Rooms returns the registry keys in order
func (d *Driver) Rooms() []string {
	return d.ctrl.RoomKeys()
}

// Enter moves the occupant into a room. Unknown rooms are rejected here,
// before the controller sees them.
func (d *Driver) Enter(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNoRoom
	}
	if _, ok := d.ctrl.GetRoom(name); !ok {
		return &UnknownRoomError{Name: name, Available: d.ctrl.RoomKeys()}
	}

	d.ctrl.EnterRoom(name)
	return nil
}

// SetTime switches to night or day and applies the transition
func (d *Driver) SetTime(night bool) {
	prev := d.ctrl.IsNight()
	d.ctrl.SetIsNight(night)
	d.ctrl.UpdateLightingBasedOnTime(prev)
}

// AutoTime sets day or night from the sun position at now.
// Returns the resulting night flag.
func (d *Driver) AutoTime(now time.Time) (bool, error) {
	if d.daylight == nil {
		return false, ErrNoLocation
	}
	night, err := d.daylight.IsNight(now)
	if err != nil {
		return false, fmt.Errorf("failed to determine time of day: %w", err)
	}

	log.Debug().Time("at", now).Bool("night", night).Msg("Time of day from sun position")
	d.SetTime(night)
	return night, nil
}

// SetOutside validates and applies a new outside temperature
func (d *Driver) SetOutside(celsius float64) error {
	if celsius < d.minTemp || celsius > d.maxTemp {
		return &TemperatureRangeError{Value: celsius, Min: d.minTemp, Max: d.maxTemp}
	}

	d.ctrl.Record(fmt.Sprintf("Outside temperature updated: %s°C", controller.FormatTemperature(celsius)))
	d.ctrl.SetOutsideTemperature(celsius)
	d.ctrl.HandleOutsideTemperatureChange()
	return nil
}

// Logs returns a snapshot of the event log
func (d *Driver) Logs() []string {
	return d.ctrl.Log()
}

// History returns ledger rows, optionally for one stimulus, oldest first
func (d *Driver) History(stimulus eventlog.Stimulus, limit int) ([]*ledger.Entry, error) {
	if d.history == nil {
		return nil, ErrNoLedger
	}
	if stimulus == "" {
		return d.history.Recent(limit)
	}
	return d.history.ByStimulus(stimulus, limit)
}

// Status is a point-in-time view of the home
type Status struct {
	Night              bool
	OutsideTemperature float64
	CurrentRoom        string
	Occupied           bool
	Rooms              []RoomStatus
}

// RoomStatus lists a room's device status lines in order
type RoomStatus struct {
	Name    string
	Devices []string
}

// Status returns the current home state
func (d *Driver) Status() Status {
	current, occupied := d.ctrl.CurrentRoom()
	s := Status{
		Night:              d.ctrl.IsNight(),
		OutsideTemperature: d.ctrl.OutsideTemperature(),
		CurrentRoom:        current,
		Occupied:           occupied,
	}

	d.ctrl.Inspect(func(rooms []*room.Room) {
		for _, r := range rooms {
			rs := RoomStatus{Name: r.Name()}
			for _, dev := range r.Devices() {
				rs.Devices = append(rs.Devices, dev.Status())
			}
			s.Rooms = append(s.Rooms, rs)
		}
	})
	return s
}

// ParseStimulus maps user input to a stimulus. Accepts the stimulus names
// and the shell command that triggers them.
func ParseStimulus(s string) (eventlog.Stimulus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", true
	case "enter", string(eventlog.StimulusEnterRoom):
		return eventlog.StimulusEnterRoom, true
	case "time", string(eventlog.StimulusTimeOfDay):
		return eventlog.StimulusTimeOfDay, true
	case "outside", "temperature", string(eventlog.StimulusTemperature):
		return eventlog.StimulusTemperature, true
	case string(eventlog.StimulusDriver):
		return eventlog.StimulusDriver, true
	default:
		return "", false
	}
}
