package controller

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/eventlog"
	"github.com/dokzlo13/smarthome/internal/room"
)

// EnterRoom moves the occupant into the named room (case-insensitive).
//
// The previous room loses presence and its lights go off; the new room
// gains presence and its lights follow the lighting policy (bathroom
// always on, on at night, untouched by day). Only the first motion sensor
// of a room is ever consulted.
//
// Returns false if the room is unknown; that case is only logged.
func (c *Controller) EnterRoom(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.begin(eventlog.StimulusEnterRoom)()

	target, ok := c.rooms.Get(name)
	if !ok {
		c.emit(msgUnknownRoom(name))
		log.Debug().Str("stimulus", string(eventlog.StimulusEnterRoom)).Str("room", name).Msg("Unknown room")
		return false
	}

	if c.occupied && c.currentRoom == target.Name() {
		c.reenter(target)
		return true
	}

	if c.occupied {
		if prev, found := c.rooms.Get(c.currentRoom); found {
			c.leave(prev)
		}
	}

	c.enter(target)
	return true
}

// reenter handles entering the room the occupant is already in
func (c *Controller) reenter(r *room.Room) {
	if r.Is(bathroom) {
		for _, light := range r.Lights() {
			if !light.IsOn() {
				light.TurnOn()
			}
			c.emit(msgBathroomLightOn(light.Name()))
		}
	}

	if sensor := r.FirstMotionSensor(); sensor != nil {
		c.emit(fmt.Sprintf("MotionSensor '%s' reports PRESENCE in %s (already inside)", sensor.Name(), r.Name()))
	} else {
		c.emit(fmt.Sprintf("You are already in %s", r.Name()))
	}

	log.Debug().Str("stimulus", string(eventlog.StimulusEnterRoom)).Str("room", r.Name()).Msg("Re-entered occupied room")
}

// leave clears presence and switches off the lights of the room being left
func (c *Controller) leave(r *room.Room) {
	c.emit(fmt.Sprintf("You left %s", r.Name()))

	if sensor := r.FirstMotionSensor(); sensor != nil {
		c.emit(fmt.Sprintf("MotionSensor '%s' reports NO PRESENCE in %s", sensor.Name(), r.Name()))
		sensor.SetPresence(false)
	}

	for _, light := range r.Lights() {
		if light.IsOn() {
			light.TurnOff()
			c.emit(fmt.Sprintf("Light '%s' turned OFF (no presence in %s)", light.Name(), r.Name()))
		} else {
			// Narrated as day mode regardless of the actual day/night flag
			c.emit(fmt.Sprintf("Light '%s' stays OFF (day mode)", light.Name()))
		}
	}
}

// enter occupies the room and applies the lighting policy
func (c *Controller) enter(r *room.Room) {
	c.currentRoom = r.Name()
	c.occupied = true
	c.emit(fmt.Sprintf("You entered %s", r.Name()))

	sensor := r.FirstMotionSensor()
	if sensor == nil {
		c.emit(fmt.Sprintf("No MotionSensor available in %s", r.Name()))
		log.Debug().Str("stimulus", string(eventlog.StimulusEnterRoom)).Str("room", r.Name()).Msg("Entered room without sensor")
		return
	}

	c.emit(fmt.Sprintf("MotionSensor '%s' reports PRESENCE in %s", sensor.Name(), r.Name()))
	sensor.SetPresence(true)

	lights := r.Lights()
	switch {
	case r.Is(bathroom):
		for _, light := range lights {
			if !light.IsOn() {
				light.TurnOn()
			}
			c.emit(msgBathroomLightOn(light.Name()))
		}
	case c.isNight:
		for _, light := range lights {
			if !light.IsOn() {
				light.TurnOn()
			}
			c.emit(fmt.Sprintf("Light '%s' turned ON (night mode, presence detected)", light.Name()))
		}
	default:
		// Lights are not forced off; the narration does not check actual state
		for _, light := range lights {
			c.emit(fmt.Sprintf("Light '%s' remains OFF (daylight)", light.Name()))
		}
	}

	log.Debug().
		Str("stimulus", string(eventlog.StimulusEnterRoom)).
		Str("room", r.Name()).
		Bool("night", c.isNight).
		Int("lights", len(lights)).
		Msg("Entered room")
}
