package app

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/config"
	"github.com/dokzlo13/smarthome/internal/controller"
	"github.com/dokzlo13/smarthome/internal/db"
	"github.com/dokzlo13/smarthome/internal/driver"
	"github.com/dokzlo13/smarthome/internal/geo"
	"github.com/dokzlo13/smarthome/internal/home"
	"github.com/dokzlo13/smarthome/internal/ledger"
	luart "github.com/dokzlo13/smarthome/internal/lua"
)

// Services is a container for all application services.
// It manages service initialization order and dependencies.
type Services struct {
	cfg *config.Config

	SessionID string

	// Optional infrastructure, nil when disabled
	DB      *db.DB
	Ledger  *ledger.Ledger
	GeoCalc *geo.Calculator

	Controller *controller.Controller
	Driver     *driver.Driver
	Lua        *luart.Runtime
}

// NewServices creates all services with proper dependency injection.
func NewServices(cfg *config.Config) (*Services, error) {
	s := &Services{
		cfg:       cfg,
		SessionID: uuid.NewString(),
	}

	s.Controller = controller.New(controller.WithOutsideTemperature(cfg.Temperature.GetInitial()))
	if err := home.Install(s.Controller, cfg.Home); err != nil {
		return nil, fmt.Errorf("failed to build home: %w", err)
	}

	opts := []driver.Option{
		driver.WithTemperatureRange(cfg.Temperature.GetMin(), cfg.Temperature.GetMax()),
	}

	// Initialize ledger and mirror every entry into it
	if cfg.Ledger.Enabled {
		database, err := db.Open(cfg.Ledger.Path)
		if err != nil {
			return nil, err
		}
		s.DB = database
		s.Ledger = ledger.New(database.DB, s.SessionID)
		s.Controller.Subscribe(s.Ledger.Observer())
		opts = append(opts, driver.WithHistory(s.Ledger))

		log.Info().Str("path", cfg.Ledger.Path).Str("session", s.SessionID).Msg("Event ledger enabled")
	}

	// Initialize geo calculator
	if cfg.Geo.HasLocation() {
		s.GeoCalc = geo.NewCalculator(geo.Location{
			Name:      cfg.Geo.Name,
			Latitude:  cfg.Geo.Lat,
			Longitude: cfg.Geo.Lon,
			Timezone:  cfg.Geo.Timezone,
		})
		opts = append(opts, driver.WithDaylight(s.GeoCalc))
	} else {
		log.Debug().Msg("No lat/lon configured, automatic day/night is unavailable")
	}

	s.Driver = driver.New(s.Controller, opts...)

	s.Lua = luart.NewRuntime(luart.RuntimeDeps{
		Driver:  s.Driver,
		GeoCalc: s.GeoCalc,
	})

	return s, nil
}

// Close releases all resources.
func (s *Services) Close() error {
	var errs []error
	if s.Lua != nil {
		s.Lua.Close()
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
