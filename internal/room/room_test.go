package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/smarthome/internal/device"
)

func TestDevicesOfKind_PreservesOrder(t *testing.T) {
	first := device.NewLight("first")
	sensor := device.NewMotionSensor("pir")
	second := device.NewLight("second")
	r := New("Hall", first, sensor, second)

	lights := r.DevicesOfKind(device.KindLight)
	require.Len(t, lights, 2)
	assert.Same(t, first, lights[0])
	assert.Same(t, second, lights[1])

	assert.Equal(t, []*device.Light{first, second}, r.Lights())
	assert.Equal(t, []*device.MotionSensor{sensor}, r.MotionSensors())
}

func TestDevicesOfKind_EmptyNotNil(t *testing.T) {
	r := New("Closet", device.NewLight("bulb"))

	got := r.DevicesOfKind(device.KindThermostat)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, r.Thermostats())
	assert.Nil(t, r.FirstMotionSensor())
}

func TestFirstMotionSensor(t *testing.T) {
	a := device.NewMotionSensor("a")
	b := device.NewMotionSensor("b")
	r := New("Hall", device.NewLight("l"), a, b)

	assert.Same(t, a, r.FirstMotionSensor())
}

func TestDevices_ReturnsCopy(t *testing.T) {
	r := New("Hall", device.NewLight("l"))
	devs := r.Devices()
	devs[0] = device.NewThermostat("t")

	assert.Equal(t, device.KindLight, r.Devices()[0].Kind())
}

func TestRoomIs(t *testing.T) {
	r := New("Bathroom")
	assert.True(t, r.Is("bathroom"))
	assert.True(t, r.Is("  BATHROOM "))
	assert.False(t, r.Is("bath"))
	assert.Equal(t, "bathroom", r.Key())
}

func TestRegistry_CaseInsensitiveLookup(t *testing.T) {
	reg := NewRegistry()
	kitchen := New("Kitchen")
	reg.Add(kitchen)

	for _, name := range []string{"kitchen", "KITCHEN", "KiTcHeN", " kitchen "} {
		got, ok := reg.Get(name)
		require.True(t, ok, name)
		assert.Same(t, kitchen, got)
	}

	_, ok := reg.Get("garage")
	assert.False(t, ok)
}

func TestRegistry_LastWriteWinsKeepsPosition(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New("Kitchen"))
	reg.Add(New("Bedroom"))
	replacement := New("KITCHEN", device.NewLight("new"))
	reg.Add(replacement)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"kitchen", "bedroom"}, reg.Keys())

	rooms := reg.Rooms()
	require.Len(t, rooms, 2)
	assert.Same(t, replacement, rooms[0])
	assert.Equal(t, "KITCHEN", rooms[0].Name())
}

func TestRegistry_MapIsCopy(t *testing.T) {
	reg := NewRegistry()
	reg.Add(New("Kitchen"))

	m := reg.Map()
	delete(m, "kitchen")

	_, ok := reg.Get("kitchen")
	assert.True(t, ok)
}
