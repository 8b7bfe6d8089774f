package device

import "fmt"

// Mode is the operating mode of a thermostat
type Mode string

const (
	ModeHeating Mode = "HEATING"
	ModeCooling Mode = "COOLING"
	ModeIdle    Mode = "IDLE"
)

// DefaultTargetTemperature is the target of a freshly created thermostat (°C)
const DefaultTargetTemperature = 21

// Thermostat holds a target temperature and a mode.
// Starts at 21°C, IDLE.
type Thermostat struct {
	name   string
	target int
	mode   Mode
}

// NewThermostat creates an idle thermostat targeting 21°C
func NewThermostat(name string) *Thermostat {
	return &Thermostat{
		name:   name,
		target: DefaultTargetTemperature,
		mode:   ModeIdle,
	}
}

func (t *Thermostat) Name() string           { return t.name }
func (t *Thermostat) Kind() Kind             { return KindThermostat }
func (t *Thermostat) TargetTemperature() int { return t.target }
func (t *Thermostat) Mode() Mode             { return t.mode }

// SetTargetTemperature sets the target in °C
func (t *Thermostat) SetTargetTemperature(celsius int) {
	t.target = celsius
}

func (t *Thermostat) SetHeating() { t.mode = ModeHeating }
func (t *Thermostat) SetCooling() { t.mode = ModeCooling }
func (t *Thermostat) SetIdle()    { t.mode = ModeIdle }

// Status returns e.g. "Thermostat 'Hall': mode= IDLE, target=21°C"
func (t *Thermostat) Status() string {
	return fmt.Sprintf("Thermostat '%s': mode= %s, target=%d°C", t.name, t.mode, t.target)
}
