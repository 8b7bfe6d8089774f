package modules

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/smarthome/internal/driver"
)

// HomeModule exposes the home stimuli and state to Lua.
// Functions that can fail return (false|nil, message) instead of raising.
type HomeModule struct {
	drv *driver.Driver
	now func() time.Time
}

// NewHomeModule creates a new home module
func NewHomeModule(drv *driver.Driver, now func() time.Time) *HomeModule {
	return &HomeModule{drv: drv, now: now}
}

// Loader is the module loader for Lua
func (m *HomeModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetFuncs(mod, map[string]lua.LGFunction{
		"enter":        m.enter,
		"day":          m.day,
		"night":        m.night,
		"auto_time":    m.autoTime,
		"outside":      m.outside,
		"status":       m.status,
		"log":          m.log,
		"rooms":        m.rooms,
		"current_room": m.currentRoom,
		"is_night":     m.isNight,
	})

	L.Push(mod)
	return 1
}

// enter(name) -> true | false, err
func (m *HomeModule) enter(L *lua.LState) int {
	name := L.CheckString(1)
	if err := m.drv.Enter(name); err != nil {
		return pushError(L, lua.LFalse, err.Error())
	}
	L.Push(lua.LTrue)
	return 1
}

// day()
func (m *HomeModule) day(L *lua.LState) int {
	m.drv.SetTime(false)
	return 0
}

// night()
func (m *HomeModule) night(L *lua.LState) int {
	m.drv.SetTime(true)
	return 0
}

// auto_time() -> is_night | nil, err
func (m *HomeModule) autoTime(L *lua.LState) int {
	night, err := m.drv.AutoTime(m.now())
	if err != nil {
		return pushError(L, lua.LNil, err.Error())
	}
	L.Push(lua.LBool(night))
	return 1
}

// outside(celsius) -> true | false, err
func (m *HomeModule) outside(L *lua.LState) int {
	celsius := float64(L.CheckNumber(1))
	if err := m.drv.SetOutside(celsius); err != nil {
		return pushError(L, lua.LFalse, err.Error())
	}
	L.Push(lua.LTrue)
	return 1
}

// status() -> {night, temperature, current_room, rooms = {{name, devices = {...}}, ...}}
func (m *HomeModule) status(L *lua.LState) int {
	st := m.drv.Status()

	rooms := L.NewTable()
	for _, r := range st.Rooms {
		entry := L.NewTable()
		L.SetField(entry, "name", lua.LString(r.Name))
		L.SetField(entry, "devices", GoToLuaValue(L, r.Devices))
		rooms.Append(entry)
	}

	result := L.NewTable()
	L.SetField(result, "night", lua.LBool(st.Night))
	L.SetField(result, "temperature", lua.LNumber(st.OutsideTemperature))
	if st.Occupied {
		L.SetField(result, "current_room", lua.LString(st.CurrentRoom))
	}
	L.SetField(result, "rooms", rooms)

	L.Push(result)
	return 1
}

// log() -> {message, ...}
func (m *HomeModule) log(L *lua.LState) int {
	L.Push(GoToLuaValue(L, m.drv.Logs()))
	return 1
}

// rooms() -> {key, ...}
func (m *HomeModule) rooms(L *lua.LState) int {
	L.Push(GoToLuaValue(L, m.drv.Rooms()))
	return 1
}

// current_room() -> name | nil
func (m *HomeModule) currentRoom(L *lua.LState) int {
	name, ok := m.drv.Controller().CurrentRoom()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(name))
	return 1
}

// is_night() -> bool
func (m *HomeModule) isNight(L *lua.LState) int {
	L.Push(lua.LBool(m.drv.Controller().IsNight()))
	return 1
}
