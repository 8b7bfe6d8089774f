package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/smarthome/internal/device"
	"github.com/dokzlo13/smarthome/internal/eventlog"
	"github.com/dokzlo13/smarthome/internal/room"
)

// home is a three-room fixture: Kitchen (light, thermostat, sensor),
// Bathroom (light, sensor), Bedroom (light, sensor).
type home struct {
	c *Controller

	kitchenLight   *device.Light
	kitchenSensor  *device.MotionSensor
	kitchenThermo  *device.Thermostat
	bathroomLight  *device.Light
	bathroomSensor *device.MotionSensor
	bedroomLight   *device.Light
	bedroomSensor  *device.MotionSensor
}

func newHome(t *testing.T) *home {
	t.Helper()

	h := &home{
		c:              New(),
		kitchenLight:   device.NewLight("Kitchen Light"),
		kitchenSensor:  device.NewMotionSensor("Kitchen Sensor"),
		kitchenThermo:  device.NewThermostat("Kitchen Thermostat"),
		bathroomLight:  device.NewLight("Bathroom Light"),
		bathroomSensor: device.NewMotionSensor("Bathroom Sensor"),
		bedroomLight:   device.NewLight("Bedroom Light"),
		bedroomSensor:  device.NewMotionSensor("Bedroom Sensor"),
	}

	h.c.AddRoom(room.New("Kitchen", h.kitchenLight, h.kitchenThermo, h.kitchenSensor))
	h.c.AddRoom(room.New("Bathroom", h.bathroomLight, h.bathroomSensor))
	h.c.AddRoom(room.New("Bedroom", h.bedroomLight, h.bedroomSensor))
	return h
}

func TestNew_Defaults(t *testing.T) {
	c := New()

	assert.False(t, c.IsNight())
	assert.Equal(t, 21.0, c.OutsideTemperature())
	_, occupied := c.CurrentRoom()
	assert.False(t, occupied)
	assert.Empty(t, c.Log())
	assert.Empty(t, c.Rooms())
}

func TestNew_Options(t *testing.T) {
	l := eventlog.New()
	c := New(WithOutsideTemperature(-3), WithEventLog(l))

	assert.Equal(t, -3.0, c.OutsideTemperature())
	c.Record("hello")
	assert.Equal(t, []string{"hello"}, l.Messages())
}

func TestGetRoom_CaseInsensitive(t *testing.T) {
	h := newHome(t)

	r, ok := h.c.GetRoom("kItChEn")
	require.True(t, ok)
	assert.Equal(t, "Kitchen", r.Name())

	_, ok = h.c.GetRoom("garage")
	assert.False(t, ok)
}

func TestAddRoom_LastWriteWins(t *testing.T) {
	c := New()
	c.AddRoom(room.New("Kitchen"))
	replacement := room.New("KITCHEN", device.NewLight("x"))
	c.AddRoom(replacement)

	rooms := c.Rooms()
	require.Len(t, rooms, 1)
	assert.Same(t, replacement, rooms["kitchen"])
}

func TestRooms_ReturnsCopy(t *testing.T) {
	h := newHome(t)
	m := h.c.Rooms()
	delete(m, "kitchen")

	_, ok := h.c.GetRoom("kitchen")
	assert.True(t, ok)
	assert.Equal(t, []string{"kitchen", "bathroom", "bedroom"}, h.c.RoomKeys())
	assert.Len(t, h.c.RoomList(), 3)
}

func TestLog_IsSnapshot(t *testing.T) {
	h := newHome(t)
	h.c.EnterRoom("Kitchen")

	snapshot := h.c.Log()
	snapshot[0] = "tampered"

	assert.Equal(t, "You entered Kitchen", h.c.Log()[0])
}

func TestSetters_DoNotTouchDevices(t *testing.T) {
	h := newHome(t)
	h.c.EnterRoom("Kitchen")
	before := len(h.c.Log())

	h.c.SetIsNight(true)
	h.c.SetOutsideTemperature(-10)

	assert.True(t, h.c.IsNight())
	assert.Equal(t, -10.0, h.c.OutsideTemperature())
	assert.False(t, h.kitchenLight.IsOn())
	assert.Equal(t, device.ModeIdle, h.kitchenThermo.Mode())
	assert.Len(t, h.c.Log(), before)
}

func TestEntries_TaggedWithStimulus(t *testing.T) {
	h := newHome(t)
	h.c.Record("Outside temperature updated: 3.0°C")
	h.c.SetOutsideTemperature(3)
	h.c.HandleOutsideTemperatureChange()
	h.c.EnterRoom("Kitchen")
	h.c.SetIsNight(true)
	h.c.UpdateLightingBasedOnTime(false)

	entries := h.c.Entries()
	require.NotEmpty(t, entries)

	assert.Equal(t, eventlog.StimulusDriver, entries[0].Stimulus)
	assert.Equal(t, eventlog.StimulusTemperature, entries[1].Stimulus)
	assert.Equal(t, eventlog.StimulusTemperature, entries[2].Stimulus)
	assert.Equal(t, eventlog.StimulusEnterRoom, entries[3].Stimulus)
	assert.Equal(t, eventlog.StimulusTimeOfDay, entries[len(entries)-1].Stimulus)

	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Seq, entries[i-1].Seq)
	}
}

func TestSubscribe(t *testing.T) {
	h := newHome(t)
	var seen []string
	h.c.Subscribe(func(e eventlog.Entry) { seen = append(seen, e.Message) })

	h.c.EnterRoom("Bedroom")

	assert.Equal(t, h.c.Log(), seen)
}

func TestFormatTemperature(t *testing.T) {
	tests := map[float64]string{
		3:     "3.0",
		-4:    "-4.0",
		21.5:  "21.5",
		-4.25: "-4.25",
		0:     "0.0",
		56:    "56.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatTemperature(in), "FormatTemperature(%v)", in)
	}
}

func TestInspect(t *testing.T) {
	h := newHome(t)
	h.c.SetIsNight(true)
	h.c.EnterRoom("Kitchen")

	var statuses []string
	h.c.Inspect(func(rooms []*room.Room) {
		for _, r := range rooms {
			for _, d := range r.Devices() {
				statuses = append(statuses, d.Status())
			}
		}
	})

	assert.Equal(t, []string{
		"Light 'Kitchen Light': ON",
		"Thermostat 'Kitchen Thermostat': mode= IDLE, target=21°C",
		"MotionSensor 'Kitchen Sensor': PRESENCE",
		"Light 'Bathroom Light': OFF",
		"MotionSensor 'Bathroom Sensor': NO PRESENCE",
		"Light 'Bedroom Light': OFF",
		"MotionSensor 'Bedroom Sensor': NO PRESENCE",
	}, statuses)
}
