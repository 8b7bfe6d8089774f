package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // geo.timezone must resolve on hosts without a zone database

	"gopkg.in/yaml.v3"

	"github.com/dokzlo13/smarthome/internal/device"
)

// Config represents the application configuration
type Config struct {
	Log             LogConfig         `yaml:"log"`
	Ledger          LedgerConfig      `yaml:"ledger"`
	Geo             GeoConfig         `yaml:"geo"`
	Temperature     TemperatureConfig `yaml:"temperature"`
	Shell           ShellConfig       `yaml:"shell"`
	Home            HomeConfig        `yaml:"home"`
	Script          string            `yaml:"script"`           // Lua scenario to run instead of the shell
	ShutdownTimeout Duration          `yaml:"shutdown_timeout"` // Upper bound for closing resources
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	Colors  bool   `yaml:"colors"`
	UseJSON bool   `yaml:"json"`
}

// GetLevel returns the configured level, defaulting to info
func (c LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return strings.ToLower(c.Level)
}

// LedgerConfig contains event ledger settings
type LedgerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // SQLite path, ":memory:" keeps the journal for this session only
}

// GeoConfig contains the location used for day/night calculation
type GeoConfig struct {
	Name     string  `yaml:"name"`
	Timezone string  `yaml:"timezone"`
	Lat      float64 `yaml:"lat,omitempty"`
	Lon      float64 `yaml:"lon,omitempty"`
}

// HasLocation reports whether coordinates are configured
func (c GeoConfig) HasLocation() bool {
	return c.Lat != 0 || c.Lon != 0
}

// TemperatureConfig contains outside temperature settings (°C)
type TemperatureConfig struct {
	Initial *float64 `yaml:"initial"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
}

// GetInitial returns the starting outside temperature
func (c TemperatureConfig) GetInitial() float64 {
	if c.Initial == nil {
		return DefaultInitialTemperature
	}
	return *c.Initial
}

// GetMin returns the lowest accepted outside temperature
func (c TemperatureConfig) GetMin() float64 {
	if c.Min == nil {
		return DefaultMinTemperature
	}
	return *c.Min
}

// GetMax returns the highest accepted outside temperature
func (c TemperatureConfig) GetMax() float64 {
	if c.Max == nil {
		return DefaultMaxTemperature
	}
	return *c.Max
}

// ShellConfig contains interactive shell settings
type ShellConfig struct {
	Prompt     string `yaml:"prompt"`
	EchoEvents *bool  `yaml:"echo_events"` // Print "[EVENT] ..." as entries are logged (default: true)
}

// IsEchoEnabled returns whether events are echoed (default: true)
func (c ShellConfig) IsEchoEnabled() bool {
	if c.EchoEvents == nil {
		return true
	}
	return *c.EchoEvents
}

// HomeConfig declares the rooms and their devices
type HomeConfig struct {
	Rooms []RoomConfig `yaml:"rooms"`
}

// RoomConfig declares a single room
type RoomConfig struct {
	Name    string         `yaml:"name"`
	Devices []DeviceConfig `yaml:"devices"`
}

// DeviceConfig declares a single device
type DeviceConfig struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
}

// Defaults
const (
	DefaultInitialTemperature = 21.0
	DefaultMinTemperature     = -89.0
	DefaultMaxTemperature     = 56.0
	DefaultPrompt             = "> "
	DefaultLedgerPath         = ":memory:"
)

// ErrInvalid is returned by Validate for an unusable configuration
var ErrInvalid = errors.New("invalid configuration")

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration: a kitchen, a bedroom and a bathroom
func Default() *Config {
	cfg := &Config{
		Ledger: LedgerConfig{Enabled: true},
		Log:    LogConfig{Colors: true},
		Home:   DefaultHome(),
	}
	applyDefaults(cfg)
	return cfg
}

// DefaultHome returns the built-in home layout
func DefaultHome() HomeConfig {
	return HomeConfig{
		Rooms: []RoomConfig{
			{
				Name: "Kitchen",
				Devices: []DeviceConfig{
					{Kind: "light", Name: "Svet na kuhne"},
					{Kind: "thermostat", Name: "Termostat na kuhne"},
					{Kind: "motion_sensor", Name: "Sensor na kuhne"},
				},
			},
			{
				Name: "Bedroom",
				Devices: []DeviceConfig{
					{Kind: "light", Name: "Svet v spalne"},
					{Kind: "thermostat", Name: "Termostat v spalne"},
					{Kind: "motion_sensor", Name: "Sensor v spalne"},
				},
			},
			{
				Name: "Bathroom",
				Devices: []DeviceConfig{
					{Kind: "light", Name: "Svet v vanne"},
					{Kind: "motion_sensor", Name: "Sensor v vanne"},
				},
			},
		},
	}
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses configuration from YAML, expanding environment variables
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = DefaultLedgerPath
	}
	if cfg.Geo.Timezone == "" {
		cfg.Geo.Timezone = "UTC"
	}
	if cfg.Shell.Prompt == "" {
		cfg.Shell.Prompt = DefaultPrompt
	}
	// An empty layout falls back to the built-in home
	if len(cfg.Home.Rooms) == 0 {
		cfg.Home = DefaultHome()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(5 * time.Second)
	}
}

// Validate checks the temperature range and the home layout
func (c *Config) Validate() error {
	lo, hi := c.Temperature.GetMin(), c.Temperature.GetMax()
	if lo >= hi {
		return fmt.Errorf("%w: temperature.min (%v) must be below temperature.max (%v)", ErrInvalid, lo, hi)
	}
	if initial := c.Temperature.GetInitial(); initial < lo || initial > hi {
		return fmt.Errorf("%w: temperature.initial (%v) outside [%v, %v]", ErrInvalid, initial, lo, hi)
	}
	if _, err := time.LoadLocation(c.Geo.Timezone); err != nil {
		return fmt.Errorf("%w: geo.timezone: %v", ErrInvalid, err)
	}

	for i, r := range c.Home.Rooms {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("%w: home.rooms[%d] has no name", ErrInvalid, i)
		}
		for j, d := range r.Devices {
			if _, err := device.ParseKind(d.Kind); err != nil {
				return fmt.Errorf("%w: home.rooms[%d].devices[%d]: %v", ErrInvalid, i, j, err)
			}
		}
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
