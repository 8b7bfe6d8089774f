package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/smarthome/internal/device"
	"github.com/dokzlo13/smarthome/internal/room"
)

func TestUpdateLighting_NoChange(t *testing.T) {
	tests := []struct {
		name  string
		night bool
		want  string
	}{
		{name: "already_day", night: false, want: "It is already DAY – no changes made"},
		{name: "already_night", night: true, want: "It is already NIGHT – no changes made"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHome(t)
			h.c.EnterRoom("Bedroom")
			if tt.night {
				h.bedroomLight.TurnOn()
			}
			lightBefore := h.bedroomLight.IsOn()
			before := len(h.c.Log())

			h.c.SetIsNight(tt.night)
			h.c.UpdateLightingBasedOnTime(tt.night)

			assert.Equal(t, lightBefore, h.bedroomLight.IsOn())
			log := h.c.Log()
			require.Len(t, log, before+1)
			assert.Equal(t, tt.want, log[before])
		})
	}
}

func TestUpdateLighting_SwitchToNight(t *testing.T) {
	c := New()
	a := device.NewLight("A")
	b := device.NewLight("B")
	elsewhere := device.NewLight("Elsewhere")
	c.AddRoom(room.New("Lounge", a, b, device.NewMotionSensor("S")))
	c.AddRoom(room.New("Porch", elsewhere))
	c.EnterRoom("Lounge")
	before := len(c.Log())

	c.SetIsNight(true)
	c.UpdateLightingBasedOnTime(false)

	assert.True(t, a.IsOn())
	assert.True(t, b.IsOn())
	assert.False(t, elsewhere.IsOn(), "only the occupied room responds")
	assert.Equal(t, []string{
		"System switched to NIGHT mode",
		"Light 'A' turned ON in Lounge (night mode)",
		"Light 'B' turned ON in Lounge (night mode)",
	}, c.Log()[before:])
}

func TestUpdateLighting_SwitchToDay(t *testing.T) {
	h := newHome(t)
	h.c.SetIsNight(true)
	h.c.EnterRoom("Kitchen")
	h.bedroomLight.TurnOn()
	require.True(t, h.kitchenLight.IsOn())
	before := len(h.c.Log())

	h.c.SetIsNight(false)
	h.c.UpdateLightingBasedOnTime(true)

	assert.False(t, h.kitchenLight.IsOn())
	assert.True(t, h.bedroomLight.IsOn(), "unoccupied rooms are not touched")
	assert.Equal(t, []string{
		"System switched to DAY mode",
		"Light 'Kitchen Light' turned OFF in Kitchen (day mode)",
	}, h.c.Log()[before:])
}

func TestUpdateLighting_NoOccupiedRoom(t *testing.T) {
	h := newHome(t)

	h.c.SetIsNight(true)
	h.c.UpdateLightingBasedOnTime(false)

	assert.True(t, h.c.IsNight())
	assert.False(t, h.kitchenLight.IsOn())
	assert.False(t, h.bathroomLight.IsOn())
	assert.False(t, h.bedroomLight.IsOn())
	assert.Empty(t, h.c.Log())
}

func TestUpdateLighting_ThenEnterUsesNewFlag(t *testing.T) {
	h := newHome(t)
	h.c.EnterRoom("Kitchen")
	h.c.SetIsNight(true)
	h.c.UpdateLightingBasedOnTime(false)

	h.c.EnterRoom("Bedroom")

	assert.False(t, h.kitchenLight.IsOn())
	assert.True(t, h.bedroomLight.IsOn())
}
