package controller

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/eventlog"
)

// UpdateLightingBasedOnTime applies a day/night transition.
//
// previousIsNight is the flag value captured before SetIsNight was called.
// If it equals the current flag nothing changes. Otherwise only the lights
// of the occupied room respond: all on for night, all off for day. With no
// occupied room no device is touched.
func (c *Controller) UpdateLightingBasedOnTime(previousIsNight bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.begin(eventlog.StimulusTimeOfDay)()

	if previousIsNight == c.isNight {
		if c.isNight {
			c.emit("It is already NIGHT – no changes made")
		} else {
			c.emit("It is already DAY – no changes made")
		}
		return
	}

	if !c.occupied {
		log.Debug().Str("stimulus", string(eventlog.StimulusTimeOfDay)).Bool("night", c.isNight).Msg("No occupied room, lighting unchanged")
		return
	}
	r, ok := c.rooms.Get(c.currentRoom)
	if !ok {
		return
	}

	lights := r.Lights()
	if c.isNight {
		c.emit("System switched to NIGHT mode")
		for _, light := range lights {
			light.TurnOn()
			c.emit(fmt.Sprintf("Light '%s' turned ON in %s (night mode)", light.Name(), r.Name()))
		}
	} else {
		c.emit("System switched to DAY mode")
		for _, light := range lights {
			light.TurnOff()
			c.emit(fmt.Sprintf("Light '%s' turned OFF in %s (day mode)", light.Name(), r.Name()))
		}
	}

	log.Debug().
		Str("stimulus", string(eventlog.StimulusTimeOfDay)).
		Str("room", r.Name()).
		Bool("night", c.isNight).
		Int("lights", len(lights)).
		Msg("Lighting updated for time of day")
}
