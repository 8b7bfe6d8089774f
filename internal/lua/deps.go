package lua

import (
	"time"

	"github.com/dokzlo13/smarthome/internal/driver"
	"github.com/dokzlo13/smarthome/internal/geo"
)

// RuntimeDeps groups all dependencies needed by the Lua runtime.
type RuntimeDeps struct {
	Driver  *driver.Driver
	GeoCalc *geo.Calculator  // nil when no location is configured
	Now     func() time.Time // clock for home.auto_time and geo.is_night, defaults to time.Now
}
