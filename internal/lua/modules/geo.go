package modules

import (
	"time"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/smarthome/internal/geo"
)

const errNoLocation = "no location configured"

// GeoModule provides astronomical functions to Lua
type GeoModule struct {
	calculator *geo.Calculator
	now        func() time.Time
}

// NewGeoModule creates a new geo module. calculator may be nil, in which
// case every function returns nil plus an error message.
func NewGeoModule(calculator *geo.Calculator, now func() time.Time) *GeoModule {
	return &GeoModule{calculator: calculator, now: now}
}

// Loader is the module loader for Lua
func (m *GeoModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "today", L.NewFunction(m.today))
	L.SetField(mod, "is_night", L.NewFunction(m.isNight))

	L.Push(mod)
	return 1
}

// today() -> {dawn, sunrise, noon, sunset, dusk, midnight}
// Returns Unix timestamps for astronomical events
func (m *GeoModule) today(L *lua.LState) int {
	if m.calculator == nil {
		return pushError(L, lua.LNil, errNoLocation)
	}

	times, err := m.calculator.GetTimes(m.now())
	if err != nil {
		log.Error().Err(err).Str("location", m.calculator.Location().Name).Msg("Failed to calculate astronomical times")
		return pushError(L, lua.LNil, err.Error())
	}

	result := L.NewTable()
	L.SetField(result, "dawn", lua.LNumber(times.Dawn.Unix()))
	L.SetField(result, "sunrise", lua.LNumber(times.Sunrise.Unix()))
	L.SetField(result, "noon", lua.LNumber(times.Noon.Unix()))
	L.SetField(result, "sunset", lua.LNumber(times.Sunset.Unix()))
	L.SetField(result, "dusk", lua.LNumber(times.Dusk.Unix()))
	L.SetField(result, "midnight", lua.LNumber(times.Midnight.Unix()))

	log.Debug().
		Str("sunrise", times.Sunrise.Format("15:04")).
		Str("sunset", times.Sunset.Format("15:04")).
		Msg("Astronomical times calculated")

	L.Push(result)
	return 1
}

// is_night(unix?) -> bool
func (m *GeoModule) isNight(L *lua.LState) int {
	if m.calculator == nil {
		return pushError(L, lua.LNil, errNoLocation)
	}

	at := m.now()
	if L.GetTop() >= 1 && L.Get(1) != lua.LNil {
		at = time.Unix(int64(L.CheckNumber(1)), 0)
	}

	night, err := m.calculator.IsNight(at)
	if err != nil {
		return pushError(L, lua.LNil, err.Error())
	}
	L.Push(lua.LBool(night))
	return 1
}
