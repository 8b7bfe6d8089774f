package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dokzlo13/smarthome/internal/device"
	"github.com/dokzlo13/smarthome/internal/room"
)

func TestHandleOutsideTemperatureChange_Bands(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		target int
		mode   device.Mode
	}{
		{name: "freezing", temp: -89, target: 23, mode: device.ModeHeating},
		{name: "cold", temp: 3, target: 23, mode: device.ModeHeating},
		{name: "low_boundary", temp: 5, target: 23, mode: device.ModeHeating},
		{name: "just_above_low", temp: 5.1, target: 21, mode: device.ModeIdle},
		{name: "high_boundary", temp: 20, target: 21, mode: device.ModeIdle},
		{name: "just_above_high", temp: 20.01, target: 19, mode: device.ModeCooling},
		{name: "warm", temp: 21, target: 19, mode: device.ModeCooling},
		{name: "scorching", temp: 56, target: 19, mode: device.ModeCooling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			a := device.NewThermostat("A")
			b := device.NewThermostat("B")
			other := device.NewThermostat("C")
			c.AddRoom(room.New("Kitchen", a, b))
			c.AddRoom(room.New("Bedroom", other))

			c.SetOutsideTemperature(tt.temp)
			c.HandleOutsideTemperatureChange()

			for _, th := range []*device.Thermostat{a, b, other} {
				assert.Equal(t, tt.target, th.TargetTemperature(), th.Name())
				assert.Equal(t, tt.mode, th.Mode(), th.Name())
			}
			assert.Len(t, c.Log(), 6)
		})
	}
}

func TestHandleOutsideTemperatureChange_Messages(t *testing.T) {
	h := newHome(t)

	h.c.SetOutsideTemperature(3)
	h.c.HandleOutsideTemperatureChange()
	h.c.SetOutsideTemperature(25.5)
	h.c.HandleOutsideTemperatureChange()
	h.c.SetOutsideTemperature(12)
	h.c.HandleOutsideTemperatureChange()

	assert.Equal(t, []string{
		"Thermostat in Kitchen detected LOW outside temperature (3.0°C)",
		"Command sent to Heater: target set to 23°C",
		"Thermostat in Kitchen detected HIGH outside temperature (25.5°C)",
		"Command sent to Cooler: target set to 19°C",
		"Thermostat in Kitchen detected MODERATE outside temperature (12.0°C)",
		"Command sent to Thermostat: target set to 21°C (eco mode)",
	}, h.c.Log())
	assert.Equal(t, device.ModeIdle, h.kitchenThermo.Mode())
	assert.Equal(t, 21, h.kitchenThermo.TargetTemperature())
}

func TestHandleOutsideTemperatureChange_ColdScenario(t *testing.T) {
	h := newHome(t)

	h.c.SetOutsideTemperature(3)
	h.c.HandleOutsideTemperatureChange()

	assert.Equal(t, device.Mode("HEATING"), h.kitchenThermo.Mode())
	assert.Equal(t, 23, h.kitchenThermo.TargetTemperature())
}

func TestHandleOutsideTemperatureChange_NoDeltaSuppression(t *testing.T) {
	h := newHome(t)
	h.c.SetOutsideTemperature(30)

	h.c.HandleOutsideTemperatureChange()
	h.c.HandleOutsideTemperatureChange()

	assert.Len(t, h.c.Log(), 4)
}

func TestHandleOutsideTemperatureChange_DoesNotTouchLights(t *testing.T) {
	h := newHome(t)
	h.c.EnterRoom("Kitchen")
	before := h.kitchenSensor.Presence()

	h.c.SetOutsideTemperature(-20)
	h.c.HandleOutsideTemperatureChange()

	assert.False(t, h.kitchenLight.IsOn())
	assert.Equal(t, before, h.kitchenSensor.Presence())
	current, _ := h.c.CurrentRoom()
	assert.Equal(t, "Kitchen", current)
}

func TestHandleOutsideTemperatureChange_NoThermostats(t *testing.T) {
	c := New()
	c.AddRoom(room.New("Hall", device.NewLight("Lamp")))

	c.HandleOutsideTemperatureChange()

	assert.Empty(t, c.Log())
}
