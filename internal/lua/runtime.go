// Package lua runs scenario scripts against the home.
package lua

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/smarthome/internal/lua/modules"
)

// Runtime owns a single Lua VM. Scripts run synchronously on the caller's
// goroutine; a Runtime must not be used from more than one goroutine.
type Runtime struct {
	L      *lua.LState
	deps   RuntimeDeps
	closed bool
}

// NewRuntime creates a new Lua runtime with the home, log and geo modules preloaded
func NewRuntime(deps RuntimeDeps) *Runtime {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := &Runtime{
		L:    lua.NewState(),
		deps: deps,
	}
	r.registerModules()
	return r
}

// registerModules registers all Lua modules
func (r *Runtime) registerModules() {
	logModule := modules.NewLogModule()
	r.L.PreloadModule("log", logModule.Loader)

	geoModule := modules.NewGeoModule(r.deps.GeoCalc, r.deps.Now)
	r.L.PreloadModule("geo", geoModule.Loader)

	homeModule := modules.NewHomeModule(r.deps.Driver, r.deps.Now)
	r.L.PreloadModule("home", homeModule.Loader)
}

// RunFile executes a Lua script from disk
func (r *Runtime) RunFile(path string) error {
	if r.closed {
		return ErrRuntimeClosed
	}

	log.Info().Str("path", path).Msg("Running Lua script")
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("failed to execute Lua script %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("Lua script finished")
	return nil
}

// RunString executes Lua source
func (r *Runtime) RunString(src string) error {
	if r.closed {
		return ErrRuntimeClosed
	}

	if err := r.L.DoString(src); err != nil {
		return fmt.Errorf("failed to execute Lua chunk: %w", err)
	}
	return nil
}

// Close closes the Lua state. Further runs return ErrRuntimeClosed.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}
