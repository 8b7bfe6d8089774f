package controller

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/device"
	"github.com/dokzlo13/smarthome/internal/eventlog"
)

// Temperature bands (°C). Low is inclusive, high is exclusive.
const (
	LowTemperatureThreshold  = 5.0
	HighTemperatureThreshold = 20.0

	HeatingTarget = 23
	CoolingTarget = 19
	EcoTarget     = 21
)

// HandleOutsideTemperatureChange re-classifies the stored outside temperature
// and commands every thermostat in every room, in order. Thermostats are
// re-commanded on every call even when nothing changes.
func (c *Controller) HandleOutsideTemperatureChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.begin(eventlog.StimulusTemperature)()

	temp := c.outsideTemperature
	shown := FormatTemperature(temp)
	commanded := 0

	for _, r := range c.rooms.Rooms() {
		for _, t := range r.Thermostats() {
			switch band(temp) {
			case device.ModeHeating:
				t.SetTargetTemperature(HeatingTarget)
				t.SetHeating()
				c.emit(fmt.Sprintf("Thermostat in %s detected LOW outside temperature (%s°C)", r.Name(), shown))
				c.emit(fmt.Sprintf("Command sent to Heater: target set to %d°C", HeatingTarget))
			case device.ModeCooling:
				t.SetTargetTemperature(CoolingTarget)
				t.SetCooling()
				c.emit(fmt.Sprintf("Thermostat in %s detected HIGH outside temperature (%s°C)", r.Name(), shown))
				c.emit(fmt.Sprintf("Command sent to Cooler: target set to %d°C", CoolingTarget))
			default:
				t.SetTargetTemperature(EcoTarget)
				t.SetIdle()
				c.emit(fmt.Sprintf("Thermostat in %s detected MODERATE outside temperature (%s°C)", r.Name(), shown))
				c.emit(fmt.Sprintf("Command sent to Thermostat: target set to %d°C (eco mode)", EcoTarget))
			}
			commanded++
		}
	}

	log.Debug().
		Str("stimulus", string(eventlog.StimulusTemperature)).
		Float64("outside", temp).
		Str("mode", string(band(temp))).
		Int("thermostats", commanded).
		Msg("Thermostats commanded")
}

// band maps an outside temperature to the thermostat mode it calls for
func band(temp float64) device.Mode {
	switch {
	case temp <= LowTemperatureThreshold:
		return device.ModeHeating
	case temp > HighTemperatureThreshold:
		return device.ModeCooling
	default:
		return device.ModeIdle
	}
}
